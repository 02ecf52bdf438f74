// Package loader orchestrates a load run: truncation, dimension loading or
// read-back, fact generation, and bulk insertion, under the transaction shape
// each mode requires.
package loader

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/medloader/medloader/internal/dimension"
	"github.com/medloader/medloader/internal/fact"
	"github.com/medloader/medloader/internal/platform/db"
)

// TableCount is one line of a load plan or summary.
type TableCount struct {
	Table string
	Rows  int
}

// Summary describes a completed run.
type Summary struct {
	Mode      string
	Records   int
	FactRows  int
	Tables    []TableCount
	Truncated bool
	Elapsed   time.Duration
}

// Runner executes load runs against one pool. Each run carries a fresh run_id
// in its log context.
type Runner struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
	seed int64
}

// NewRunner builds a runner. seed 0 means time-based seeding on every
// generator.
func NewRunner(pool *pgxpool.Pool, log zerolog.Logger, seed int64) *Runner {
	return &Runner{pool: pool, log: log, seed: seed}
}

// Plan returns the per-fact-table row counts a run with the given record
// count will generate. Mortality and inter-consultation tables scale down by
// their fixed fractions, floored.
func Plan(records int) []TableCount {
	return []TableCount{
		{fact.AdmissionTable, records},
		{fact.TriageTable, records},
		{fact.EmergencyTable, records},
		{fact.DischargeDiagnosisTable, records},
		{fact.FloorAdmissionTable, records},
		{fact.MortalityTable, int(math.Floor(float64(records) * fact.MortalityFraction))},
		{fact.AttentionTimeTable, records},
		{fact.TriageWaitTable, records},
		{fact.AssignmentWaitTable, records},
		{fact.InterConsultWaitTable, int(math.Floor(float64(records) * fact.InterConsultFraction))},
	}
}

// FullLoad truncates (unless disabled), loads all fourteen dimensions, and
// loads all ten fact tables, in one transaction. Any failure rolls the whole
// run back.
func (r *Runner) FullLoad(ctx context.Context, records int, truncate bool) (Summary, error) {
	log := r.log.With().Str("run_id", uuid.NewString()).Str("mode", "full").Logger()
	start := time.Now()

	log.Info().Int("records", records).Bool("truncate", truncate).Msg("starting full load")

	var factRows int
	err := db.WithTx(ctx, r.pool, func(ctx context.Context, q db.Executor) error {
		if truncate {
			if err := Truncate(ctx, q, log); err != nil {
				return err
			}
		}

		dims, err := dimension.LoadAll(ctx, q, dimension.NewGenerator(r.seed), log)
		if err != nil {
			return fmt.Errorf("load dimensions: %w", err)
		}

		factRows, err = r.loadFacts(ctx, q, dims, records, log)
		return err
	})
	if err != nil {
		return Summary{}, err
	}

	s := Summary{Mode: "full", Records: records, FactRows: factRows, Tables: Plan(records), Truncated: truncate, Elapsed: time.Since(start)}
	log.Info().Int("fact_rows", factRows).Dur("elapsed", s.Elapsed).Msg("full load complete")
	return s, nil
}

// FactsOnly reads the dimensions back from the database and loads only the
// fact tables. The read-back runs outside any transaction so that
// fallback-generated fecha/horario/referencia_geografica rows persist even if
// the subsequent fact transaction rolls back.
func (r *Runner) FactsOnly(ctx context.Context, records int) (Summary, error) {
	log := r.log.With().Str("run_id", uuid.NewString()).Str("mode", "facts-only").Logger()
	start := time.Now()

	log.Info().Int("records", records).Msg("starting facts-only load")

	var dims *dimension.Bundle
	err := db.WithConn(ctx, r.pool, func(ctx context.Context, q db.Executor) error {
		var err error
		dims, err = dimension.ReadAll(ctx, q, dimension.NewGenerator(r.seed), log)
		return err
	})
	if err != nil {
		return Summary{}, fmt.Errorf("read dimensions: %w", err)
	}

	var factRows int
	err = db.WithTx(ctx, r.pool, func(ctx context.Context, q db.Executor) error {
		var err error
		factRows, err = r.loadFacts(ctx, q, dims, records, log)
		return err
	})
	if err != nil {
		return Summary{}, err
	}

	s := Summary{Mode: "facts-only", Records: records, FactRows: factRows, Tables: Plan(records), Elapsed: time.Since(start)}
	log.Info().Int("fact_rows", factRows).Dur("elapsed", s.Elapsed).Msg("facts-only load complete")
	return s, nil
}

// loadFacts generates and inserts all ten fact tables in their fixed order
// and returns the row total.
func (r *Runner) loadFacts(ctx context.Context, q db.Executor, dims *dimension.Bundle, records int, log zerolog.Logger) (int, error) {
	gen := fact.NewGenerator(r.seed, dims, log)

	mortality := int(math.Floor(float64(records) * fact.MortalityFraction))
	interConsult := int(math.Floor(float64(records) * fact.InterConsultFraction))

	steps := []struct {
		table   string
		columns []string
		rows    [][]any
	}{
		{fact.AdmissionTable, fact.AdmissionColumns, fact.Rows(gen.Admissions(records))},
		{fact.TriageTable, fact.TriageColumns, fact.Rows(gen.Triages(records))},
		{fact.EmergencyTable, fact.EmergencyColumns, fact.Rows(gen.Emergencies(records))},
		{fact.DischargeDiagnosisTable, fact.DischargeDiagnosisColumns, fact.Rows(gen.DischargeDiagnoses(records))},
		{fact.FloorAdmissionTable, fact.FloorAdmissionColumns, fact.Rows(gen.FloorAdmissions(records))},
		{fact.MortalityTable, fact.MortalityColumns, fact.Rows(gen.Mortalities(mortality))},
		{fact.AttentionTimeTable, fact.AttentionTimeColumns, fact.Rows(gen.AttentionTimes(records))},
		{fact.TriageWaitTable, fact.TriageWaitColumns, fact.Rows(gen.TriageWaits(records))},
		{fact.AssignmentWaitTable, fact.AssignmentWaitColumns, fact.Rows(gen.AssignmentWaits(records))},
		{fact.InterConsultWaitTable, fact.InterConsultWaitColumns, fact.Rows(gen.InterConsultWaits(interConsult))},
	}

	total := 0
	for _, s := range steps {
		if err := db.BatchInsert(ctx, q, log, s.table, s.columns, s.rows, db.DefaultBatchSize); err != nil {
			return 0, err
		}
		total += len(s.rows)
	}

	log.Info().Int("fact_rows", total).Msg("all fact tables loaded")
	return total, nil
}
