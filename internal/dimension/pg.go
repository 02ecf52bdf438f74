package dimension

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medloader/medloader/internal/clock"
	"github.com/medloader/medloader/internal/platform/db"
)

// Batch sizes for the two large dimensions.
const (
	dateBatchSize = 1000
	slotBatchSize = 500
)

// LoadAll generates every dimension and inserts it, returning the bundle the
// fact generators consume. Runs inside whatever transaction q belongs to.
func LoadAll(ctx context.Context, q db.Executor, gen *Generator, log zerolog.Logger) (*Bundle, error) {
	b := &Bundle{}
	var err error

	b.CancelledStates = gen.CancelledStates()
	for _, r := range b.CancelledStates {
		if _, err = q.Exec(ctx,
			`INSERT INTO atencion_cancelada (is_cancelado, cancelado) VALUES ($1, $2)`,
			r.IsCancelled, r.Label); err != nil {
			return nil, fmt.Errorf("load atencion_cancelada: %w", err)
		}
	}
	log.Info().Int("rows", len(b.CancelledStates)).Msg("loaded atencion_cancelada")

	b.Sexes = gen.Sexes()
	for _, r := range b.Sexes {
		if _, err = q.Exec(ctx,
			`INSERT INTO sexo (id_sexo, sexo) VALUES ($1, $2)`,
			r.ID, r.Name); err != nil {
			return nil, fmt.Errorf("load sexo: %w", err)
		}
	}
	log.Info().Int("rows", len(b.Sexes)).Msg("loaded sexo")

	b.DiagnosisFlags = gen.DiagnosisFlags()
	for _, r := range b.DiagnosisFlags {
		if _, err = q.Exec(ctx,
			`INSERT INTO tiene_diagnostico (has_diagnostico, tiene_diagnostico) VALUES ($1, $2)`,
			r.Has, r.Label); err != nil {
			return nil, fmt.Errorf("load tiene_diagnostico: %w", err)
		}
	}
	log.Info().Int("rows", len(b.DiagnosisFlags)).Msg("loaded tiene_diagnostico")

	b.ReasonFlags = gen.ReasonFlags()
	for _, r := range b.ReasonFlags {
		if _, err = q.Exec(ctx,
			`INSERT INTO tiene_motivo_consulta (has_motivo_con, tiene_motivo_consulta) VALUES ($1, $2)`,
			r.Has, r.Label); err != nil {
			return nil, fmt.Errorf("load tiene_motivo_consulta: %w", err)
		}
	}
	log.Info().Int("rows", len(b.ReasonFlags)).Msg("loaded tiene_motivo_consulta")

	b.TriageClasses = gen.TriageClasses()
	for _, r := range b.TriageClasses {
		if _, err = q.Exec(ctx,
			`INSERT INTO clasificacion_triage (id_clas_triage, color_triage) VALUES ($1, $2)`,
			r.ID, r.Color); err != nil {
			return nil, fmt.Errorf("load clasificacion_triage: %w", err)
		}
	}
	log.Info().Int("rows", len(b.TriageClasses)).Msg("loaded clasificacion_triage")

	b.WeekDays = gen.WeekDays()
	for _, r := range b.WeekDays {
		if _, err = q.Exec(ctx,
			`INSERT INTO dia_semana (id_dia_sem, dia_semana) VALUES ($1, $2)`,
			r.ID, r.Name); err != nil {
			return nil, fmt.Errorf("load dia_semana: %w", err)
		}
	}
	log.Info().Int("rows", len(b.WeekDays)).Msg("loaded dia_semana")

	b.AgeBands = gen.AgeBands()
	for _, r := range b.AgeBands {
		if _, err = q.Exec(ctx,
			`INSERT INTO edad (id_rango_sinadi, rango_sinadi) VALUES ($1, $2)`,
			r.ID, r.Label); err != nil {
			return nil, fmt.Errorf("load edad: %w", err)
		}
	}
	log.Info().Int("rows", len(b.AgeBands)).Msg("loaded edad")

	b.Origins = gen.Origins()
	for _, r := range b.Origins {
		if _, err = q.Exec(ctx,
			`INSERT INTO procedencia (id_procedencia, procedencia) VALUES ($1, $2)`,
			r.ID, r.Name); err != nil {
			return nil, fmt.Errorf("load procedencia: %w", err)
		}
	}
	log.Info().Int("rows", len(b.Origins)).Msg("loaded procedencia")

	b.Destinations = gen.Destinations()
	for _, r := range b.Destinations {
		if _, err = q.Exec(ctx, `
			INSERT INTO destino (id_destino, destino, id_servicio_destino, servicio_destino,
				id_prestacion_destino, prestacion_destino)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			r.ID, r.Name, r.ServiceID, r.Service, r.BenefitID, r.Benefit); err != nil {
			return nil, fmt.Errorf("load destino: %w", err)
		}
	}
	log.Info().Int("rows", len(b.Destinations)).Msg("loaded destino")

	if b.Dates, err = loadDates(ctx, q, gen, log); err != nil {
		return nil, err
	}
	if b.TimeSlots, err = loadTimeSlots(ctx, q, gen, log); err != nil {
		return nil, err
	}

	b.Diagnoses = gen.DiagnosisCodes(DefaultDiagnosisCount)
	for _, r := range b.Diagnoses {
		if _, err = q.Exec(ctx, `
			INSERT INTO cie10 (id_codigo_cie10, codigo_cie10, descripcion_codigo,
				id_capitulo, capitulo, descripcion_capitulo, id_grupo, grupo, descripcion_grupo,
				id_categoria, categoria, descripcion_categoria, id_sub_categoria, sub_categoria,
				descripcion_sub_categoria)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			r.ID, r.Code, r.Description,
			r.ChapterID, r.Chapter, r.ChapterDescription,
			r.GroupID, r.Group, r.GroupDescription,
			r.CategoryID, r.Category, r.CategoryDescription,
			r.SubcategoryID, r.Subcategory, r.SubcategoryDescription); err != nil {
			return nil, fmt.Errorf("load cie10: %w", err)
		}
	}
	log.Info().Int("rows", len(b.Diagnoses)).Msg("loaded cie10")

	b.SnomedCodes = gen.SnomedCodes(DefaultSnomedCount)
	for _, r := range b.SnomedCodes {
		if _, err = q.Exec(ctx,
			`INSERT INTO snomed (id_snomed, snomed) VALUES ($1, $2)`,
			r.ID, r.Term); err != nil {
			return nil, fmt.Errorf("load snomed: %w", err)
		}
	}
	log.Info().Int("rows", len(b.SnomedCodes)).Msg("loaded snomed")

	if b.GeoRefs, err = loadGeoRefs(ctx, q, gen, log); err != nil {
		return nil, err
	}

	return b, nil
}

func loadDates(ctx context.Context, q db.Executor, gen *Generator, log zerolog.Logger) ([]clock.Date, error) {
	dates := gen.Dates()
	rows := make([][]any, len(dates))
	for i, d := range dates {
		rows[i] = []any{d.String()}
	}
	if err := db.BatchInsert(ctx, q, log, "fecha", []string{"fecha"}, rows, dateBatchSize); err != nil {
		return nil, fmt.Errorf("load fecha: %w", err)
	}
	log.Info().Int("rows", len(dates)).Msg("loaded fecha")
	return dates, nil
}

func loadTimeSlots(ctx context.Context, q db.Executor, gen *Generator, log zerolog.Logger) ([]clock.TimeOfDay, error) {
	slots := gen.TimeSlots()
	rows := make([][]any, len(slots))
	for i, s := range slots {
		rows[i] = []any{s.String()}
	}
	if err := db.BatchInsert(ctx, q, log, "horario", []string{"horarios"}, rows, slotBatchSize); err != nil {
		return nil, fmt.Errorf("load horario: %w", err)
	}
	log.Info().Int("rows", len(slots)).Msg("loaded horario")
	return slots, nil
}

func loadGeoRefs(ctx context.Context, q db.Executor, gen *Generator, log zerolog.Logger) ([]GeoReference, error) {
	refs := gen.GeoRefs(DefaultGeoCount)
	for _, r := range refs {
		if _, err := q.Exec(ctx, `
			INSERT INTO referencia_geografica (latitud, longitud, cod_postal, zona_postal,
				id_barrio, barrio, id_ciudad, ciudad, id_departamento, departamento,
				direccion_obtenida, observaciones)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			r.Lat, r.Lon, r.PostalCode, r.PostalZone,
			r.BarrioID, r.Barrio, r.CityID, r.City,
			r.DepartmentID, r.Department, r.Address, r.Notes); err != nil {
			return nil, fmt.Errorf("load referencia_geografica: %w", err)
		}
	}
	log.Info().Int("rows", len(refs)).Msg("loaded referencia_geografica")
	return refs, nil
}

// ReadAll reads the dimensions a facts-only run needs, in fixed key order.
// fecha, horario and referencia_geografica may legitimately be empty at read
// time; those are generated and persisted on the spot so later reads see
// them. Every other empty dimension is a fatal precondition violation
// reported as an EmptyError.
func ReadAll(ctx context.Context, q db.Executor, gen *Generator, log zerolog.Logger) (*Bundle, error) {
	b := &Bundle{}

	rows, err := q.Query(ctx, `SELECT id_sexo, sexo FROM sexo ORDER BY id_sexo`)
	if err != nil {
		return nil, fmt.Errorf("read sexo: %w", err)
	}
	for rows.Next() {
		var r Sex
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sexo: %w", err)
		}
		b.Sexes = append(b.Sexes, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read sexo: %w", err)
	}
	log.Info().Int("rows", len(b.Sexes)).Msg("read sexo")

	rows, err = q.Query(ctx, `SELECT id_rango_sinadi, rango_sinadi FROM edad ORDER BY id_rango_sinadi`)
	if err != nil {
		return nil, fmt.Errorf("read edad: %w", err)
	}
	for rows.Next() {
		var r AgeBand
		if err := rows.Scan(&r.ID, &r.Label); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan edad: %w", err)
		}
		b.AgeBands = append(b.AgeBands, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read edad: %w", err)
	}
	log.Info().Int("rows", len(b.AgeBands)).Msg("read edad")

	rows, err = q.Query(ctx, `SELECT id_procedencia, procedencia FROM procedencia ORDER BY id_procedencia`)
	if err != nil {
		return nil, fmt.Errorf("read procedencia: %w", err)
	}
	for rows.Next() {
		var r Origin
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan procedencia: %w", err)
		}
		b.Origins = append(b.Origins, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read procedencia: %w", err)
	}
	log.Info().Int("rows", len(b.Origins)).Msg("read procedencia")

	rows, err = q.Query(ctx, `SELECT id_clas_triage, color_triage FROM clasificacion_triage ORDER BY id_clas_triage`)
	if err != nil {
		return nil, fmt.Errorf("read clasificacion_triage: %w", err)
	}
	for rows.Next() {
		var r TriageClass
		if err := rows.Scan(&r.ID, &r.Color); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan clasificacion_triage: %w", err)
		}
		b.TriageClasses = append(b.TriageClasses, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read clasificacion_triage: %w", err)
	}
	log.Info().Int("rows", len(b.TriageClasses)).Msg("read clasificacion_triage")

	rows, err = q.Query(ctx, `SELECT id_codigo_cie10, codigo_cie10 FROM cie10 ORDER BY id_codigo_cie10`)
	if err != nil {
		return nil, fmt.Errorf("read cie10: %w", err)
	}
	for rows.Next() {
		var r DiagnosisCode
		if err := rows.Scan(&r.ID, &r.Code); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan cie10: %w", err)
		}
		b.Diagnoses = append(b.Diagnoses, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read cie10: %w", err)
	}
	log.Info().Int("rows", len(b.Diagnoses)).Msg("read cie10")

	rows, err = q.Query(ctx, `SELECT id_servicio_destino, destino, servicio_destino FROM destino ORDER BY id_servicio_destino`)
	if err != nil {
		return nil, fmt.Errorf("read destino: %w", err)
	}
	for rows.Next() {
		var r Destination
		if err := rows.Scan(&r.ServiceID, &r.Name, &r.Service); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan destino: %w", err)
		}
		b.Destinations = append(b.Destinations, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read destino: %w", err)
	}
	log.Info().Int("rows", len(b.Destinations)).Msg("read destino")

	if b.Dates, err = readDates(ctx, q, gen, log); err != nil {
		return nil, err
	}
	if b.TimeSlots, err = readTimeSlots(ctx, q, gen, log); err != nil {
		return nil, err
	}
	if b.GeoRefs, err = readGeoRefs(ctx, q, gen, log); err != nil {
		return nil, err
	}

	rows, err = q.Query(ctx, `SELECT id_dia_sem, dia_semana FROM dia_semana ORDER BY id_dia_sem`)
	if err != nil {
		return nil, fmt.Errorf("read dia_semana: %w", err)
	}
	for rows.Next() {
		var r WeekDay
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan dia_semana: %w", err)
		}
		b.WeekDays = append(b.WeekDays, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read dia_semana: %w", err)
	}
	log.Info().Int("rows", len(b.WeekDays)).Msg("read dia_semana")

	if err := validateMandatory(b); err != nil {
		return nil, err
	}
	return b, nil
}

func readDates(ctx context.Context, q db.Executor, gen *Generator, log zerolog.Logger) ([]clock.Date, error) {
	rows, err := q.Query(ctx, `SELECT fecha::text FROM fecha ORDER BY fecha`)
	if err != nil {
		return nil, fmt.Errorf("read fecha: %w", err)
	}
	var dates []clock.Date
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan fecha: %w", err)
		}
		d, err := clock.ParseDate(s)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("read fecha: %w", err)
		}
		dates = append(dates, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read fecha: %w", err)
	}

	if len(dates) == 0 {
		log.Warn().Msg("fecha is empty, generating and persisting")
		return loadDates(ctx, q, gen, log)
	}
	log.Info().Int("rows", len(dates)).Msg("read fecha")
	return dates, nil
}

func readTimeSlots(ctx context.Context, q db.Executor, gen *Generator, log zerolog.Logger) ([]clock.TimeOfDay, error) {
	rows, err := q.Query(ctx, `SELECT horarios::text FROM horario ORDER BY horarios`)
	if err != nil {
		return nil, fmt.Errorf("read horario: %w", err)
	}
	var slots []clock.TimeOfDay
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan horario: %w", err)
		}
		t, err := clock.ParseTimeOfDay(s)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("read horario: %w", err)
		}
		slots = append(slots, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read horario: %w", err)
	}

	if len(slots) == 0 {
		log.Warn().Msg("horario is empty, generating and persisting")
		return loadTimeSlots(ctx, q, gen, log)
	}
	log.Info().Int("rows", len(slots)).Msg("read horario")
	return slots, nil
}

func readGeoRefs(ctx context.Context, q db.Executor, gen *Generator, log zerolog.Logger) ([]GeoReference, error) {
	rows, err := q.Query(ctx, `SELECT latitud, longitud FROM referencia_geografica ORDER BY latitud, longitud`)
	if err != nil {
		return nil, fmt.Errorf("read referencia_geografica: %w", err)
	}
	var refs []GeoReference
	for rows.Next() {
		var r GeoReference
		if err := rows.Scan(&r.Lat, &r.Lon); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan referencia_geografica: %w", err)
		}
		refs = append(refs, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read referencia_geografica: %w", err)
	}

	if len(refs) == 0 {
		log.Warn().Msg("referencia_geografica is empty, generating and persisting")
		return loadGeoRefs(ctx, q, gen, log)
	}
	log.Info().Int("rows", len(refs)).Msg("read referencia_geografica")
	return refs, nil
}

func validateMandatory(b *Bundle) error {
	checks := []struct {
		name  string
		count int
	}{
		{"sexo", len(b.Sexes)},
		{"edad", len(b.AgeBands)},
		{"procedencia", len(b.Origins)},
		{"clasificacion_triage", len(b.TriageClasses)},
		{"cie10", len(b.Diagnoses)},
		{"destino", len(b.Destinations)},
		{"dia_semana", len(b.WeekDays)},
	}
	for _, c := range checks {
		if c.count == 0 {
			return EmptyError{Name: c.name}
		}
	}
	return nil
}
