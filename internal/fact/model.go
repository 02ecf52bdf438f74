// Package fact derives the ten fact-table row sets of the emergency star
// schema. Each generator samples dimension references, embeds their keys by
// value, and walks a forward-in-time event chain whose computed timestamps
// are snapped back onto the run's fecha/horario dimensions.
package fact

import (
	"github.com/medloader/medloader/internal/clock"
)

// Destination table names.
const (
	AdmissionTable          = "fact_os_admision"
	TriageTable             = "fact_os_triage"
	EmergencyTable          = "fact_os_emergencia"
	DischargeDiagnosisTable = "fact_os_diagnosticos_alta"
	FloorAdmissionTable     = "fact_os_ingresos_piso"
	MortalityTable          = "fact_os_mortalidad_emergencia"
	AttentionTimeTable      = "fact_os_tiempo_atencion"
	TriageWaitTable         = "fact_os_tiempo_espera_triage"
	AssignmentWaitTable     = "fact_os_tiempo_espera_asignacion"
	InterConsultWaitTable   = "fact_os_espera_interconsulta"
)

// Column lists are load-bearing: the bulk loader supplies positional
// parameters in exactly this order, and Values() on each row type must stay
// aligned with them.

var AdmissionColumns = []string{
	"id_os", "id_sexo", "id_edad", "id_procedencia", "id_clas_triage_llegada",
	"id_cie10", "fecha_llegada", "horario_llegada", "id_dia_semana", "latitud", "longitud",
}

// AdmissionRow is one fact_os_admision record: a single arrival snapshot.
type AdmissionRow struct {
	IDOS        int64
	SexID       bool
	AgeID       int
	OriginID    int
	TriageID    int
	CIE10ID     *int
	ArrivalDate clock.Date
	ArrivalTime clock.TimeOfDay
	WeekdayID   int
	Lat         float64
	Lon         float64
}

func (r AdmissionRow) Values() []any {
	return []any{
		r.IDOS, r.SexID, r.AgeID, r.OriginID, r.TriageID,
		intPtr(r.CIE10ID), r.ArrivalDate.String(), r.ArrivalTime.String(), r.WeekdayID, r.Lat, r.Lon,
	}
}

var TriageColumns = []string{
	"id_os", "id_sexo", "id_edad", "id_procedencia", "id_clas_triage",
	"id_cie10", "id_dia_semana", "fecha_triage", "horario_triage", "latitud", "longitud",
}

// TriageRow is one standalone fact_os_triage record.
type TriageRow struct {
	IDOS       int64
	SexID      bool
	AgeID      int
	OriginID   int
	TriageID   int
	CIE10ID    *int
	WeekdayID  int
	TriageDate clock.Date
	TriageTime clock.TimeOfDay
	Lat        float64
	Lon        float64
}

func (r TriageRow) Values() []any {
	return []any{
		r.IDOS, r.SexID, r.AgeID, r.OriginID, r.TriageID,
		intPtr(r.CIE10ID), r.WeekdayID, r.TriageDate.String(), r.TriageTime.String(), r.Lat, r.Lon,
	}
}

var EmergencyColumns = []string{
	"id_os", "id_sexo", "id_edad", "id_procedencia", "id_clas_triage",
	"id_cie10", "id_dia_semana", "fecha_atencion", "horario_atencion", "latitud", "longitud",
}

// EmergencyRow is one fact_os_emergencia record.
type EmergencyRow struct {
	IDOS          int64
	SexID         bool
	AgeID         int
	OriginID      int
	TriageID      int
	CIE10ID       *int
	WeekdayID     int
	AttentionDate clock.Date
	AttentionTime clock.TimeOfDay
	Lat           float64
	Lon           float64
}

func (r EmergencyRow) Values() []any {
	return []any{
		r.IDOS, r.SexID, r.AgeID, r.OriginID, r.TriageID,
		intPtr(r.CIE10ID), r.WeekdayID, r.AttentionDate.String(), r.AttentionTime.String(), r.Lat, r.Lon,
	}
}

var DischargeDiagnosisColumns = []string{
	"id_os", "id_sexo", "id_edad", "id_procedencia", "id_clas_triage", "id_cie10",
	"fecha_llegada", "id_dia_llegada", "horario_llegada",
	"fecha_alta", "id_dia_alta", "horario_alta", "latitud", "longitud",
}

// DischargeDiagnosisRow is one fact_os_diagnosticos_alta record. The
// discharge stage is optional; its fields are nil when absent.
type DischargeDiagnosisRow struct {
	IDOS             int64
	SexID            bool
	AgeID            int
	OriginID         int
	TriageID         int
	CIE10ID          int
	ArrivalDate      clock.Date
	ArrivalWeekdayID int
	ArrivalTime      clock.TimeOfDay
	DischargeDate    *clock.Date
	DischargeWeekday *int
	DischargeTime    *clock.TimeOfDay
	Lat              float64
	Lon              float64
}

func (r DischargeDiagnosisRow) Values() []any {
	return []any{
		r.IDOS, r.SexID, r.AgeID, r.OriginID, r.TriageID, r.CIE10ID,
		r.ArrivalDate.String(), r.ArrivalWeekdayID, r.ArrivalTime.String(),
		datePtr(r.DischargeDate), intPtr(r.DischargeWeekday), timePtr(r.DischargeTime), r.Lat, r.Lon,
	}
}

var FloorAdmissionColumns = []string{
	"id_os", "id_sexo", "id_edad", "id_procedencia", "id_clas_triage",
	"id_servicio_destino", "fecha_llegada", "id_dia_llegada", "horario_llegada",
	"latitud", "longitud",
}

// FloorAdmissionRow is one fact_os_ingresos_piso record. The destination is
// restricted to hospitalization-coded services when any match the keyword
// filter.
type FloorAdmissionRow struct {
	IDOS             int64
	SexID            bool
	AgeID            int
	OriginID         int
	TriageID         int
	ServiceID        int
	ArrivalDate      clock.Date
	ArrivalWeekdayID int
	ArrivalTime      clock.TimeOfDay
	Lat              float64
	Lon              float64
}

func (r FloorAdmissionRow) Values() []any {
	return []any{
		r.IDOS, r.SexID, r.AgeID, r.OriginID, r.TriageID,
		r.ServiceID, r.ArrivalDate.String(), r.ArrivalWeekdayID, r.ArrivalTime.String(),
		r.Lat, r.Lon,
	}
}

var MortalityColumns = []string{
	"id_os", "id_sexo", "id_edad", "id_procedencia", "id_clas_triage",
	"id_cie10", "id_ultimo_lugar_asignado", "fecha_llegada", "id_dia_llegada",
	"horario_llegada", "latitud", "longitud",
}

// MortalityRow is one fact_os_mortalidad_emergencia record. Triage is
// restricted to the most severe classes; the last assigned place is the
// death-coded destination service, resolved once per run.
type MortalityRow struct {
	IDOS             int64
	SexID            bool
	AgeID            int
	OriginID         int
	TriageID         int
	CIE10ID          *int
	LastPlaceID      *int
	ArrivalDate      clock.Date
	ArrivalWeekdayID int
	ArrivalTime      clock.TimeOfDay
	Lat              float64
	Lon              float64
}

func (r MortalityRow) Values() []any {
	return []any{
		r.IDOS, r.SexID, r.AgeID, r.OriginID, r.TriageID,
		intPtr(r.CIE10ID), intPtr(r.LastPlaceID), r.ArrivalDate.String(), r.ArrivalWeekdayID,
		r.ArrivalTime.String(), r.Lat, r.Lon,
	}
}

var AttentionTimeColumns = []string{
	"id_os", "id_sexo", "id_edad", "id_procedencia", "id_clas_triage", "id_cie10",
	"fecha_llegada", "id_dia_llegada", "horario_llegada",
	"fecha_salida", "id_dia_salida", "horario_salida", "tiempo_total_atencion",
}

// AttentionTimeRow is one fact_os_tiempo_atencion record. When the exit stage
// is absent the total duration is the fixed zero duration, not NULL.
type AttentionTimeRow struct {
	IDOS             int64
	SexID            bool
	AgeID            int
	OriginID         int
	TriageID         int
	CIE10ID          *int
	ArrivalDate      clock.Date
	ArrivalWeekdayID int
	ArrivalTime      clock.TimeOfDay
	ExitDate         *clock.Date
	ExitWeekday      *int
	ExitTime         *clock.TimeOfDay
	TotalTime        string
}

func (r AttentionTimeRow) Values() []any {
	return []any{
		r.IDOS, r.SexID, r.AgeID, r.OriginID, r.TriageID, intPtr(r.CIE10ID),
		r.ArrivalDate.String(), r.ArrivalWeekdayID, r.ArrivalTime.String(),
		datePtr(r.ExitDate), intPtr(r.ExitWeekday), timePtr(r.ExitTime), r.TotalTime,
	}
}

var TriageWaitColumns = []string{
	"id_os", "id_sexo", "id_edad", "id_procedencia", "id_clas_triage",
	"fecha_llegada", "id_dia_llegada", "horario_llegada",
	"fecha_triage", "id_dia_triage", "horario_triage", "tiempo_espera_triage",
}

// TriageWaitRow is one fact_os_tiempo_espera_triage record.
type TriageWaitRow struct {
	IDOS             int64
	SexID            bool
	AgeID            int
	OriginID         int
	TriageID         int
	ArrivalDate      clock.Date
	ArrivalWeekdayID int
	ArrivalTime      clock.TimeOfDay
	TriageDate       *clock.Date
	TriageWeekday    *int
	TriageTime       *clock.TimeOfDay
	WaitTime         string
}

func (r TriageWaitRow) Values() []any {
	return []any{
		r.IDOS, r.SexID, r.AgeID, r.OriginID, r.TriageID,
		r.ArrivalDate.String(), r.ArrivalWeekdayID, r.ArrivalTime.String(),
		datePtr(r.TriageDate), intPtr(r.TriageWeekday), timePtr(r.TriageTime), r.WaitTime,
	}
}

var AssignmentWaitColumns = []string{
	"id_os", "id_sexo", "id_edad", "id_procedencia", "id_clas_triage",
	"fecha_triage", "id_dia_triage", "horario_triage",
	"fecha_asignacion", "id_dia_asignacion", "horario_asignacion", "tiempo_espera_asignacion",
}

// AssignmentWaitRow is one fact_os_tiempo_espera_asignacion record. The chain
// starts from a sampled triage timestamp, not from arrival.
type AssignmentWaitRow struct {
	IDOS              int64
	SexID             bool
	AgeID             int
	OriginID          int
	TriageID          int
	TriageDate        clock.Date
	TriageWeekdayID   int
	TriageTime        clock.TimeOfDay
	AssignmentDate    *clock.Date
	AssignmentWeekday *int
	AssignmentTime    *clock.TimeOfDay
	WaitTime          string
}

func (r AssignmentWaitRow) Values() []any {
	return []any{
		r.IDOS, r.SexID, r.AgeID, r.OriginID, r.TriageID,
		r.TriageDate.String(), r.TriageWeekdayID, r.TriageTime.String(),
		datePtr(r.AssignmentDate), intPtr(r.AssignmentWeekday), timePtr(r.AssignmentTime), r.WaitTime,
	}
}

var InterConsultWaitColumns = []string{
	"id_os", "id_sexo", "id_edad", "id_procedencia", "id_clas_triage",
	"fecha_llegada", "id_dia_llegada", "horario_llegada",
	"fecha_solicitud", "id_dia_solicitud", "horario_solicitud",
	"fecha_escritura", "id_dia_escritura", "horario_escritura", "tiempo_espera_interconsulta",
}

// InterConsultWaitRow is one fact_os_espera_interconsulta record. The request
// stage is always present; the write-up stage is optional.
type InterConsultWaitRow struct {
	IDOS              int64
	SexID             bool
	AgeID             int
	OriginID          int
	TriageID          int
	ArrivalDate       clock.Date
	ArrivalWeekdayID  int
	ArrivalTime       clock.TimeOfDay
	RequestDate       clock.Date
	RequestWeekdayID  int
	RequestTime       clock.TimeOfDay
	WriteUpDate       *clock.Date
	WriteUpWeekday    *int
	WriteUpTime       *clock.TimeOfDay
	WaitTime          string
}

func (r InterConsultWaitRow) Values() []any {
	return []any{
		r.IDOS, r.SexID, r.AgeID, r.OriginID, r.TriageID,
		r.ArrivalDate.String(), r.ArrivalWeekdayID, r.ArrivalTime.String(),
		r.RequestDate.String(), r.RequestWeekdayID, r.RequestTime.String(),
		datePtr(r.WriteUpDate), intPtr(r.WriteUpWeekday), timePtr(r.WriteUpTime), r.WaitTime,
	}
}

// Rows flattens typed fact rows into the loader's cell matrix.
func Rows[T interface{ Values() []any }](rows []T) [][]any {
	out := make([][]any, len(rows))
	for i, r := range rows {
		out[i] = r.Values()
	}
	return out
}

// Pointer fields hold the absence marker as nil; these helpers keep a typed
// nil out of the driver's parameter list.

func intPtr(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func datePtr(p *clock.Date) any {
	if p == nil {
		return nil
	}
	return p.String()
}

func timePtr(p *clock.TimeOfDay) any {
	if p == nil {
		return nil
	}
	return p.String()
}
