package analytics

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/storeops/salesdash/internal/domain"
	"github.com/storeops/salesdash/internal/ingest"
	"github.com/storeops/salesdash/pkg/logger"
)

// Processor runs the full aggregation pipeline for one uploaded snapshot:
// ingest, partition, and every report table. One synchronous pass; any error
// aborts the run with no partial output.
type Processor struct {
	weekScheme domain.WeekScheme
	parser     *ingest.Parser
	log        zerolog.Logger
}

func NewProcessor(scheme domain.WeekScheme) *Processor {
	return &Processor{
		weekScheme: scheme,
		parser:     ingest.NewParser(scheme),
		log:        logger.Log.With().Str("component", "processor").Logger(),
	}
}

// ProcessFile ingests a CSV/XLSX export from disk and computes all reports.
func (p *Processor) ProcessFile(path string) (*domain.ReportBundle, error) {
	start := time.Now()

	rows, err := p.parser.ParseFile(path)
	if err != nil {
		p.log.Error().Err(err).Str("file", path).Msg("ingestion failed")
		return nil, err
	}

	bundle := p.Process(rows, filepath.Base(path))

	p.log.Info().
		Str("file", bundle.SourceFile).
		Int("raw_rows", bundle.RawRows).
		Int("sales_rows", bundle.SalesRows).
		Int("membership_rows", bundle.MembershipRows).
		Int("current_week", bundle.CurrentWeek).
		Dur("elapsed", time.Since(start)).
		Msg("report bundle generated")

	return bundle, nil
}

// Process computes every report table from already-normalized rows. The
// default category rollup is unfiltered; filtered variants are recomputed on
// demand from the retained sales stream.
func (p *Processor) Process(rows []domain.SaleLine, source string) *domain.ReportBundle {
	sales, memberships := Partition(rows)
	currentWeek := MaxWeek(rows)

	return &domain.ReportBundle{
		RunID:       uuid.NewString(),
		SourceFile:  source,
		GeneratedAt: time.Now().UTC(),
		WeekScheme:  p.weekScheme,

		RawRows:        len(rows),
		SalesRows:      len(sales),
		MembershipRows: len(memberships),
		CurrentWeek:    currentWeek,

		Staff:            ComputeStaffMetrics(sales),
		WeeklyQualifiers: ComputeWeeklyQualifiers(sales, currentWeek),
		DayRollups:       ComputeDayRollups(sales),
		WeekRollups:      ComputeWeekRollups(sales),
		Category:         ComputeCategoryReport(sales, FilterAll, FilterAll),
		Memberships:      ComputeMembershipReport(memberships),

		SalesStream: sales,
	}
}
