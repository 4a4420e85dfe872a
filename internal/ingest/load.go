package ingest

import (
	"fmt"
	"time"

	"dealboard/internal/crm"
	"dealboard/internal/workbook"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Options tune a load pass.
type Options struct {
	// Aliases maps renamed export headers to canonical column names.
	Aliases map[string]string
}

// Load reads one or two uploaded files and runs the full pipeline over them.
func Load(paths []string, opts Options) (*crm.Relations, error) {
	tables := make([]workbook.Table, 0, len(paths))
	for _, p := range paths {
		t, err := workbook.ReadFile(p)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return Run(tables, opts)
}

// Run normalizes headers, classifies the tables and extracts the relations.
// Any fatal condition aborts the pass before relations are built.
func Run(tables []workbook.Table, opts Options) (*crm.Relations, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := log.With().Str("run_id", runID).Logger()

	n := NewNormalizer(opts.Aliases)
	normalized := make([]workbook.Table, len(tables))
	for i, t := range tables {
		normalized[i] = t.WithHeaders(n.Columns(t.Headers))
	}

	classified, err := Classify(normalized...)
	if err != nil {
		logger.Error().Err(err).Msg("Classification failed")
		return nil, err
	}

	rel, err := Extract(classified)
	if err != nil {
		logger.Error().Err(err).Msg("Extraction failed")
		return nil, fmt.Errorf("extract %s: %w", classified.Combined.Name, err)
	}
	rel.RunID = runID

	logger.Info().
		Int("deals", len(rel.Deals)).
		Int("tasks", len(rel.Tasks)).
		Int("appointments", len(rel.Appointments)).
		Int("unlinked", len(rel.Unlinked)).
		Int("warnings", len(rel.Warnings)).
		Dur("elapsed", time.Since(start)).
		Msg("Relations extracted")

	return rel, nil
}
