package link

import (
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces unique link identifiers.
// Implemented by UUIDv7Generator (production) and the fixed generator
// in internal/testutil (tests).
type IDGenerator interface {
	NewID() string
}

// UUIDv7Generator generates time-sortable UUIDv7 link IDs.
//
// UUIDv7 embeds a timestamp in the most significant bits, so IDs sort
// by creation time and remain unique across the process lifetime.
// Stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// NewID creates a new UUIDv7 as a hyphenated string.
func (g UUIDv7Generator) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Factory creates links and updates their lifecycle status. The
// factory is stateless apart from its injected ID and clock sources;
// it is safe for concurrent use.
type Factory struct {
	ids IDGenerator
	now func() time.Time
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithIDGenerator overrides the link ID source. Used by tests for
// deterministic IDs.
func WithIDGenerator(g IDGenerator) FactoryOption {
	return func(f *Factory) {
		f.ids = g
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) FactoryOption {
	return func(f *Factory) {
		f.now = now
	}
}

// NewFactory creates a Factory. Defaults: UUIDv7 IDs, UTC wall clock.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{
		ids: UUIDv7Generator{},
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create builds a new active link of the given type.
//
// Fails with ErrCodeUnknownType when the type is not in the rule table
// and with ErrCodeMissingIdentifier when either identifier is empty
// after canonicalization. Field-presence validation against entity
// snapshots is a separate concern (Validate); callers that hold
// snapshots should validate before creating.
func (f *Factory) Create(t Type, sourceID, targetID, createdBy string, metadata map[string]string) (Link, error) {
	if !KnownType(t) {
		return Link{}, &ValidationError{Code: ErrCodeUnknownType, Type: t}
	}

	src := CanonicalID(sourceID)
	tgt := CanonicalID(targetID)
	if src == "" || tgt == "" {
		return Link{}, &ValidationError{Code: ErrCodeMissingIdentifier, Type: t}
	}

	var meta map[string]string
	if len(metadata) > 0 {
		meta = make(map[string]string, len(metadata))
		for k, v := range metadata {
			meta[k] = v
		}
	}

	return Link{
		ID:        f.ids.NewID(),
		Type:      t,
		SourceID:  src,
		TargetID:  tgt,
		Status:    StatusActive,
		CreatedBy: createdBy,
		CreatedAt: f.now(),
		Metadata:  meta,
	}, nil
}

// UpdateStatus locates the link by ID in the supplied collection and
// returns a new collection with that link's status and StatusUpdatedAt
// replaced, plus the updated link. The input slice is never mutated.
//
// Re-applying the same status is not an error; the operation is
// idempotent apart from the refreshed timestamp.
func (f *Factory) UpdateStatus(links []Link, id string, status Status) ([]Link, Link, error) {
	for i, l := range links {
		if l.ID != id {
			continue
		}
		out := make([]Link, len(links))
		copy(out, links)
		out[i].Status = status
		out[i].StatusUpdatedAt = f.now()
		return out, out[i], nil
	}
	return nil, Link{}, &NotFoundError{LinkID: id}
}
