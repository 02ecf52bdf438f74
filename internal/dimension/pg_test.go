package dimension

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/medloader/medloader/internal/platform/db"
)

func fullBundle(t *testing.T) *Bundle {
	t.Helper()
	return NewGenerator(1).Bundle()
}

func TestValidateMandatory_EmptySexo(t *testing.T) {
	b := fullBundle(t)
	b.Sexes = nil

	err := validateMandatory(b)
	if err == nil {
		t.Fatal("expected an error for an empty sexo dimension")
	}
	var empty EmptyError
	if !errors.As(err, &empty) {
		t.Fatalf("got %T (%v), want EmptyError", err, err)
	}
	if empty.Name != "sexo" {
		t.Errorf("EmptyError.Name = %q, want %q", empty.Name, "sexo")
	}
	if !strings.Contains(err.Error(), "--facts-only") {
		t.Errorf("error %q does not point at the facts-only flag", err)
	}
}

func TestValidateMandatory_EachDimension(t *testing.T) {
	clear := map[string]func(*Bundle){
		"sexo":                 func(b *Bundle) { b.Sexes = nil },
		"edad":                 func(b *Bundle) { b.AgeBands = nil },
		"procedencia":          func(b *Bundle) { b.Origins = nil },
		"clasificacion_triage": func(b *Bundle) { b.TriageClasses = nil },
		"cie10":                func(b *Bundle) { b.Diagnoses = nil },
		"destino":              func(b *Bundle) { b.Destinations = nil },
		"dia_semana":           func(b *Bundle) { b.WeekDays = nil },
	}
	for name, wipe := range clear {
		b := fullBundle(t)
		wipe(b)
		var empty EmptyError
		if err := validateMandatory(b); !errors.As(err, &empty) || empty.Name != name {
			t.Errorf("%s emptied: got %v, want EmptyError{Name:%q}", name, err, name)
		}
	}
}

func TestValidateMandatory_FullBundle(t *testing.T) {
	if err := validateMandatory(fullBundle(t)); err != nil {
		t.Fatalf("fully populated bundle rejected: %v", err)
	}
}

// emptyRows is a pgx.Rows with no result rows.
type emptyRows struct{}

func (emptyRows) Close()                                       {}
func (emptyRows) Err() error                                   { return nil }
func (emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (emptyRows) Next() bool                                   { return false }
func (emptyRows) Scan(dest ...any) error                       { return errors.New("no rows") }
func (emptyRows) Values() ([]any, error)                       { return nil, errors.New("no rows") }
func (emptyRows) RawValues() [][]byte                          { return nil }
func (emptyRows) Conn() *pgx.Conn                              { return nil }

// emptyTableExecutor answers every query with zero rows and records the SQL
// of every statement it executes, like a freshly migrated database would.
type emptyTableExecutor struct {
	execs []string
}

func (e *emptyTableExecutor) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	e.execs = append(e.execs, sql)
	return pgconn.CommandTag{}, nil
}

func (e *emptyTableExecutor) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return emptyRows{}, nil
}

func (e *emptyTableExecutor) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

var _ db.Executor = (*emptyTableExecutor)(nil)

func TestReadDates_EmptyTableGeneratesAndPersists(t *testing.T) {
	exec := &emptyTableExecutor{}
	gen := NewGenerator(1)

	dates, err := readDates(context.Background(), exec, gen, zerolog.Nop())
	if err != nil {
		t.Fatalf("readDates: %v", err)
	}
	want := gen.Dates()
	if len(dates) != len(want) {
		t.Fatalf("got %d dates, want %d", len(dates), len(want))
	}
	if dates[0] != want[0] || dates[len(dates)-1] != want[len(want)-1] {
		t.Errorf("date range %s..%s, want %s..%s",
			dates[0], dates[len(dates)-1], want[0], want[len(want)-1])
	}

	// 2192 rows at a batch size of 1000 means three INSERT statements.
	if len(exec.execs) != 3 {
		t.Fatalf("recorded %d statements, want 3", len(exec.execs))
	}
	for i, sql := range exec.execs {
		if !strings.HasPrefix(sql, "INSERT INTO fecha (fecha) VALUES") {
			t.Errorf("statement %d = %q, want an INSERT into fecha", i, sql)
		}
	}
}

func TestReadAll_EmptyDatabase(t *testing.T) {
	exec := &emptyTableExecutor{}

	_, err := ReadAll(context.Background(), exec, NewGenerator(1), zerolog.Nop())
	var empty EmptyError
	if !errors.As(err, &empty) {
		t.Fatalf("got %v, want EmptyError", err)
	}
	// sexo is the first mandatory dimension checked.
	if empty.Name != "sexo" {
		t.Errorf("EmptyError.Name = %q, want %q", empty.Name, "sexo")
	}

	// The optional dimensions were generated and persisted on the way.
	var fecha, horario, geo int
	for _, sql := range exec.execs {
		switch {
		case strings.HasPrefix(sql, "INSERT INTO fecha"):
			fecha++
		case strings.HasPrefix(sql, "INSERT INTO horario"):
			horario++
		case strings.Contains(sql, "INSERT INTO referencia_geografica"):
			geo++
		}
	}
	if fecha != 3 {
		t.Errorf("fecha insert batches = %d, want 3", fecha)
	}
	if horario != 1 {
		t.Errorf("horario insert batches = %d, want 1", horario)
	}
	if geo != DefaultGeoCount {
		t.Errorf("referencia_geografica inserts = %d, want %d", geo, DefaultGeoCount)
	}
}
