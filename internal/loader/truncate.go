package loader

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medloader/medloader/internal/platform/db"
)

// Truncation order: facts before dimensions, each list alphabetical. The
// replica replication role suspends FK triggers so the dimension truncates
// do not fail on fact rows still being dropped in the same statement batch.
var factTables = []string{
	"fact_os_admision",
	"fact_os_diagnosticos_alta",
	"fact_os_emergencia",
	"fact_os_espera_interconsulta",
	"fact_os_ingresos_piso",
	"fact_os_mortalidad_emergencia",
	"fact_os_tiempo_atencion",
	"fact_os_tiempo_espera_asignacion",
	"fact_os_tiempo_espera_triage",
	"fact_os_triage",
}

var dimensionTables = []string{
	"atencion_cancelada",
	"cie10",
	"clasificacion_triage",
	"destino",
	"dia_semana",
	"edad",
	"fecha",
	"horario",
	"procedencia",
	"referencia_geografica",
	"sexo",
	"snomed",
	"tiene_diagnostico",
	"tiene_motivo_consulta",
}

// Truncate empties every fact and dimension table. Fact tables restart their
// identity sequences; dimension tables keep theirs because dimension keys are
// always supplied explicitly.
func Truncate(ctx context.Context, q db.Executor, log zerolog.Logger) error {
	log.Info().Msg("truncating existing data")

	if _, err := q.Exec(ctx, "SET session_replication_role = replica"); err != nil {
		return fmt.Errorf("disable fk triggers: %w", err)
	}

	for _, table := range factTables {
		if _, err := q.Exec(ctx, "TRUNCATE TABLE "+table+" RESTART IDENTITY CASCADE"); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	for _, table := range dimensionTables {
		if _, err := q.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}

	if _, err := q.Exec(ctx, "SET session_replication_role = DEFAULT"); err != nil {
		return fmt.Errorf("restore fk triggers: %w", err)
	}

	log.Info().Int("tables", len(factTables)+len(dimensionTables)).Msg("all tables truncated")
	return nil
}
