package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenderflow/engine/internal/link"
	"github.com/tenderflow/engine/internal/stage"
	"github.com/tenderflow/engine/internal/workflow"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "tenderflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

var testTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func testLink(id string, t link.Type, source, target string) link.Link {
	return link.Link{
		ID:        id,
		Type:      t,
		SourceID:  source,
		TargetID:  target,
		Status:    link.StatusActive,
		CreatedBy: "alice",
		CreatedAt: testTime,
		Metadata:  map[string]string{"procurementId": "proc-1"},
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tenderflow.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestSaveLink_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	in := testLink("link-1", link.PlanToRFQ, "proc-1", "rfq-1")
	require.NoError(t, s.SaveLink(ctx, in))

	links, err := s.Links(ctx)
	require.NoError(t, err)
	require.Len(t, links, 1)

	got := links[0]
	assert.Equal(t, in.ID, got.ID)
	assert.Equal(t, in.Type, got.Type)
	assert.Equal(t, in.SourceID, got.SourceID)
	assert.Equal(t, in.TargetID, got.TargetID)
	assert.Equal(t, in.Status, got.Status)
	assert.Equal(t, in.CreatedBy, got.CreatedBy)
	assert.True(t, in.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, got.StatusUpdatedAt.IsZero())
	assert.Equal(t, in.Metadata, got.Metadata)
}

func TestSaveLink_UpsertUpdatesStatus(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	l := testLink("link-1", link.PlanToRFQ, "proc-1", "rfq-1")
	require.NoError(t, s.SaveLink(ctx, l))

	l.Status = link.StatusArchived
	l.StatusUpdatedAt = testTime.Add(time.Hour)
	require.NoError(t, s.SaveLink(ctx, l))

	links, err := s.Links(ctx)
	require.NoError(t, err)
	require.Len(t, links, 1, "upsert must not duplicate the row")
	assert.Equal(t, link.StatusArchived, links[0].Status)
	assert.True(t, l.StatusUpdatedAt.Equal(links[0].StatusUpdatedAt))
}

func TestLinks_PreservesInsertionOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveLink(ctx, testLink("link-b", link.RFQToSubmission, "rfq-1", "sub-1")))
	require.NoError(t, s.SaveLink(ctx, testLink("link-a", link.PlanToRFQ, "proc-1", "rfq-1")))

	links, err := s.Links(ctx)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "link-b", links[0].ID, "rowid order, not ID order")
	assert.Equal(t, "link-a", links[1].ID)
}

func TestLinks_EmptyTable(t *testing.T) {
	s := openTestStore(t)

	links, err := s.Links(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, links)
	assert.Empty(t, links)
}

func TestLinksForProcurement(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	mine := testLink("link-1", link.PlanToRFQ, "proc-1", "rfq-1")
	bySource := testLink("link-2", link.RFQToSubmission, "proc-1", "sub-1")
	bySource.Metadata = nil
	other := testLink("link-3", link.PlanToRFQ, "proc-2", "rfq-2")
	other.Metadata = map[string]string{"procurementId": "proc-2"}

	require.NoError(t, s.SaveLink(ctx, mine))
	require.NoError(t, s.SaveLink(ctx, bySource))
	require.NoError(t, s.SaveLink(ctx, other))

	scoped, err := s.LinksForProcurement(ctx, "proc-1")
	require.NoError(t, err)
	require.Len(t, scoped, 2)
	assert.Equal(t, "link-1", scoped[0].ID)
	assert.Equal(t, "link-2", scoped[1].ID)
}

func TestSaveState_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	st := workflow.State{
		ProcurementID:  "proc-1",
		CurrentStageID: stage.RFQ,
		BlockingIssues: []string{"no published notice"},
		History: []workflow.Transition{
			{From: stage.Planning, To: stage.Templates, At: testTime},
			{From: stage.Templates, To: stage.RFQ, At: testTime.Add(time.Hour)},
		},
	}
	require.NoError(t, s.SaveState(ctx, st))

	got, found, err := s.LoadState(ctx, "proc-1")
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, stage.RFQ, got.CurrentStageID)
	assert.Equal(t, []string{"no published notice"}, got.BlockingIssues)
	require.Len(t, got.History, 2)
	assert.Equal(t, stage.Planning, got.History[0].From)
	assert.True(t, testTime.Equal(got.History[0].At))
}

func TestSaveState_AppendsOnlyNewTransitions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	st := workflow.State{
		ProcurementID:  "proc-1",
		CurrentStageID: stage.Templates,
		History: []workflow.Transition{
			{From: stage.Planning, To: stage.Templates, At: testTime},
		},
	}
	require.NoError(t, s.SaveState(ctx, st))
	// Saving the same state twice must not duplicate history rows.
	require.NoError(t, s.SaveState(ctx, st))

	st.CurrentStageID = stage.RFQ
	st.History = append(st.History, workflow.Transition{From: stage.Templates, To: stage.RFQ, At: testTime.Add(time.Hour)})
	require.NoError(t, s.SaveState(ctx, st))

	got, found, err := s.LoadState(ctx, "proc-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, got.History, 2)
	assert.Equal(t, stage.RFQ, got.CurrentStageID)
}

func TestLoadState_Unknown(t *testing.T) {
	s := openTestStore(t)

	_, found, err := s.LoadState(context.Background(), "proc-none")
	require.NoError(t, err)
	assert.False(t, found)
}
