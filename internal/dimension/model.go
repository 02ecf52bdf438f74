// Package dimension generates, persists, and reads back the fourteen lookup
// dimensions of the emergency-department star schema. Fact generators consume
// a Bundle and never know whether it was freshly generated or read back from
// the database.
package dimension

import (
	"fmt"

	"github.com/medloader/medloader/internal/clock"
)

// CancelledState is one row of atencion_cancelada.
type CancelledState struct {
	IsCancelled bool
	Label       string
}

// Sex is one row of sexo. The surrogate key is a boolean in the destination
// schema (false = female, true = male).
type Sex struct {
	ID   bool
	Name string
}

// DiagnosisFlag is one row of tiene_diagnostico.
type DiagnosisFlag struct {
	Has   bool
	Label string
}

// ReasonFlag is one row of tiene_motivo_consulta.
type ReasonFlag struct {
	Has   bool
	Label string
}

// TriageClass is one row of clasificacion_triage, ordered by severity
// descending (1 = most severe).
type TriageClass struct {
	ID    int
	Color string
}

// WeekDay is one row of dia_semana under the Sunday-is-0 convention.
type WeekDay struct {
	ID   int
	Name string
}

// AgeBand is one row of edad (SINADI five-year age bands).
type AgeBand struct {
	ID    int
	Label string
}

// Origin is one row of procedencia.
type Origin struct {
	ID   int
	Name string
}

// Destination is one row of destino. Service and benefit share the
// destination's surrogate key in the source schema.
type Destination struct {
	ID        int
	Name      string
	ServiceID int
	Service   string
	BenefitID int
	Benefit   string
}

// DiagnosisCode is one row of cie10. Codes are randomized within fixed
// chapters; only ID and Code are guaranteed populated in read-back mode.
type DiagnosisCode struct {
	ID                     int
	Code                   string
	Description            string
	ChapterID              int
	Chapter                string
	ChapterDescription     string
	GroupID                int
	Group                  string
	GroupDescription       string
	CategoryID             int
	Category               string
	CategoryDescription    string
	SubcategoryID          int
	Subcategory            string
	SubcategoryDescription string
}

// SnomedCode is one row of snomed, in the pipe-delimited `id|term|` wire form.
type SnomedCode struct {
	ID   int
	Term string
}

// GeoReference is one row of referencia_geografica.
type GeoReference struct {
	Lat          float64
	Lon          float64
	PostalCode   int
	PostalZone   int
	BarrioID     int
	Barrio       string
	CityID       int
	City         string
	DepartmentID int
	Department   string
	Address      string
	Notes        *string
}

// Bundle holds every dimension of a run. All collections are non-empty once
// the bundle is handed to a fact generator; Dates and TimeSlots are ordered
// ascending.
type Bundle struct {
	CancelledStates []CancelledState
	Sexes           []Sex
	DiagnosisFlags  []DiagnosisFlag
	ReasonFlags     []ReasonFlag
	TriageClasses   []TriageClass
	WeekDays        []WeekDay
	AgeBands        []AgeBand
	Origins         []Origin
	Destinations    []Destination
	Dates           []clock.Date
	TimeSlots       []clock.TimeOfDay
	Diagnoses       []DiagnosisCode
	SnomedCodes     []SnomedCode
	GeoRefs         []GeoReference
}

// EmptyError reports a mandatory dimension found empty during facts-only
// read-back. Those dimensions must be populated by a prior full load.
type EmptyError struct {
	Name string
}

func (e EmptyError) Error() string {
	return fmt.Sprintf("required dimension %q is empty: load it first or run without --facts-only", e.Name)
}
