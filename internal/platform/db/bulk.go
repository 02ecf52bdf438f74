package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultBatchSize is the number of rows per multi-row INSERT.
const DefaultBatchSize = 1000

// BatchInsert partitions rows into batches and submits one parameterized
// multi-row INSERT per batch, in row order. Positional parameters are laid
// out row-major, one per cell, so the column order of the statement is the
// column order of the destination table. A failing batch aborts the
// remainder and returns the underlying error with the batch's position;
// rollback is the caller's transaction responsibility.
func BatchInsert(ctx context.Context, q Executor, log zerolog.Logger, table string, columns []string, rows [][]any, batchSize int) error {
	if len(rows) == 0 {
		log.Debug().Str("table", table).Msg("no rows to insert")
		return nil
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	totalBatches := (len(rows) + batchSize - 1) / batchSize

	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[i:end]
		current := i/batchSize + 1

		sql, params := buildInsert(table, columns, batch)
		if _, err := q.Exec(ctx, sql, params...); err != nil {
			return fmt.Errorf("insert batch %d/%d into %s: %w", current, totalBatches, table, err)
		}

		log.Info().
			Str("table", table).
			Int("batch", current).
			Int("batches", totalBatches).
			Int("rows_done", end).
			Int("rows_total", len(rows)).
			Msg("batch inserted")
	}

	return nil
}

// buildInsert renders one multi-row INSERT statement plus its flattened
// parameter list for a batch.
func buildInsert(table string, columns []string, batch [][]any) (string, []any) {
	var sb strings.Builder
	params := make([]any, 0, len(batch)*len(columns))

	sb.WriteString("INSERT INTO ")
	sb.WriteString(table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(columns, ", "))
	sb.WriteString(") VALUES ")

	n := 1
	for r, row := range batch {
		if r > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for c, cell := range row {
			if c > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", n)
			n++
			params = append(params, cell)
		}
		sb.WriteString(")")
	}

	return sb.String(), params
}
