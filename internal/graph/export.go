package graph

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tenderflow/engine/internal/link"
)

// Format selects the export rendering.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// Report is a rendered export of a link snapshot.
type Report struct {
	Format      Format    `json:"format"`
	Data        string    `json:"data"`
	Timestamp   time.Time `json:"timestamp"`
	RecordCount int       `json:"record_count"`
}

// csvHeader is the fixed column set of CSV exports.
var csvHeader = []string{"id", "type", "source_id", "target_id", "status", "created_by", "created_at"}

// ExportReport renders the link snapshot in the requested format.
// JSON emits the raw link sequence; CSV emits the fixed seven-column
// table. Unknown formats are a caller error.
//
// The timestamp source is injectable for deterministic report
// envelopes in tests; pass nil for the UTC wall clock.
func ExportReport(links []link.Link, format Format, now func() time.Time) (Report, error) {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(links, "", "  ")
		if err != nil {
			return Report{}, fmt.Errorf("export json: %w", err)
		}
		return Report{
			Format:      FormatJSON,
			Data:        string(data),
			Timestamp:   now(),
			RecordCount: len(links),
		}, nil

	case FormatCSV:
		buf := &bytes.Buffer{}
		w := csv.NewWriter(buf)
		if err := w.Write(csvHeader); err != nil {
			return Report{}, fmt.Errorf("export csv: %w", err)
		}
		for _, l := range links {
			row := []string{
				l.ID,
				string(l.Type),
				l.SourceID,
				l.TargetID,
				string(l.Status),
				l.CreatedBy,
				l.CreatedAt.UTC().Format(time.RFC3339),
			}
			if err := w.Write(row); err != nil {
				return Report{}, fmt.Errorf("export csv: %w", err)
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return Report{}, fmt.Errorf("export csv: %w", err)
		}
		return Report{
			Format:      FormatCSV,
			Data:        buf.String(),
			Timestamp:   now(),
			RecordCount: len(links),
		}, nil
	}

	return Report{}, fmt.Errorf("unsupported export format %q", format)
}
