package db

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// recordingExecutor captures every Exec call.
type recordingExecutor struct {
	sqls   []string
	params [][]any
	err    error
}

func (r *recordingExecutor) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.sqls = append(r.sqls, sql)
	r.params = append(r.params, args)
	return pgconn.CommandTag{}, r.err
}

func (r *recordingExecutor) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (r *recordingExecutor) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func TestBuildInsert_SingleRow(t *testing.T) {
	sql, params := buildInsert("sexo", []string{"id_sexo", "sexo"}, [][]any{{true, "Masculino"}})

	want := "INSERT INTO sexo (id_sexo, sexo) VALUES ($1, $2)"
	if sql != want {
		t.Errorf("expected %q, got %q", want, sql)
	}
	if len(params) != 2 || params[0] != true || params[1] != "Masculino" {
		t.Errorf("unexpected params %v", params)
	}
}

func TestBuildInsert_RowMajorNumbering(t *testing.T) {
	sql, params := buildInsert("fecha", []string{"a", "b"}, [][]any{{1, 2}, {3, 4}, {5, 6}})

	want := "INSERT INTO fecha (a, b) VALUES ($1, $2), ($3, $4), ($5, $6)"
	if sql != want {
		t.Errorf("expected %q, got %q", want, sql)
	}
	for i, p := range params {
		if p != i+1 {
			t.Fatalf("expected row-major param order, got %v", params)
		}
	}
}

func TestBatchInsert_PartitionsRows(t *testing.T) {
	rows := make([][]any, 25)
	for i := range rows {
		rows[i] = []any{i}
	}
	rec := &recordingExecutor{}

	err := BatchInsert(context.Background(), rec, zerolog.Nop(), "t", []string{"c"}, rows, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.sqls) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(rec.sqls))
	}
	if len(rec.params[0]) != 10 || len(rec.params[1]) != 10 || len(rec.params[2]) != 5 {
		t.Errorf("unexpected batch sizes: %d, %d, %d",
			len(rec.params[0]), len(rec.params[1]), len(rec.params[2]))
	}
	// Row order is preserved across batches.
	if rec.params[2][0] != 20 {
		t.Errorf("expected final batch to start at row 20, got %v", rec.params[2][0])
	}
}

func TestBatchInsert_EmptyRowsNoop(t *testing.T) {
	rec := &recordingExecutor{}
	if err := BatchInsert(context.Background(), rec, zerolog.Nop(), "t", []string{"c"}, nil, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.sqls) != 0 {
		t.Errorf("expected no statements for empty input, got %d", len(rec.sqls))
	}
}

func TestBatchInsert_ZeroBatchSizeUsesDefault(t *testing.T) {
	rows := make([][]any, DefaultBatchSize+1)
	for i := range rows {
		rows[i] = []any{i}
	}
	rec := &recordingExecutor{}

	if err := BatchInsert(context.Background(), rec, zerolog.Nop(), "t", []string{"c"}, rows, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.sqls) != 2 {
		t.Errorf("expected 2 batches at default size, got %d", len(rec.sqls))
	}
}

func TestBatchInsert_ErrorNamesBatch(t *testing.T) {
	rec := &recordingExecutor{err: context.DeadlineExceeded}
	rows := [][]any{{1}, {2}}

	err := BatchInsert(context.Background(), rec, zerolog.Nop(), "fact_os_admision", []string{"c"}, rows, 1)
	if err == nil {
		t.Fatal("expected error")
	}
	want := "insert batch 1/2 into fact_os_admision"
	if got := err.Error(); len(got) < len(want) || got[:len(want)] != want {
		t.Errorf("expected error prefix %q, got %q", want, got)
	}
}
