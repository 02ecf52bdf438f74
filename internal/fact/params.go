package fact

// Stage describes one optional downstream step of an event chain: the
// probability that it happens at all and the uniform offset added to the
// previous stage's clock when it does. Offsets are minutes.
type Stage struct {
	Presence  float64
	MinOffset int
	MaxOffset int
}

// Params collects every tunable probability of the ten generators. Defaults
// reproduce the source distributions; tests override single fields to force
// a branch.
type Params struct {
	// Diagnosis-code sampling probability per generator.
	AdmissionDiagnosis float64
	TriageDiagnosis    float64
	EmergencyDiagnosis float64
	AttentionDiagnosis float64
	MortalityDiagnosis float64

	// Downstream stages.
	Discharge      Stage // discharge after arrival (hours offset, stored as minutes)
	Exit           Stage // exit after arrival
	TriageStage    Stage // triage after arrival
	Assignment     Stage // assignment after triage
	ConsultRequest Stage // inter-consultation request after arrival, always present
	ConsultWriteUp Stage // write-up after request
}

// DefaultParams returns the source distributions.
func DefaultParams() Params {
	return Params{
		AdmissionDiagnosis: 0.5,
		TriageDiagnosis:    0.7,
		EmergencyDiagnosis: 0.8,
		AttentionDiagnosis: 0.7,
		MortalityDiagnosis: 0.8,

		Discharge:      Stage{Presence: 0.9, MinOffset: 2 * 60, MaxOffset: 48 * 60},
		Exit:           Stage{Presence: 0.95, MinOffset: 30, MaxOffset: 1440},
		TriageStage:    Stage{Presence: 0.98, MinOffset: 5, MaxOffset: 120},
		Assignment:     Stage{Presence: 0.92, MinOffset: 10, MaxOffset: 240},
		ConsultRequest: Stage{Presence: 1.0, MinOffset: 1 * 60, MaxOffset: 6 * 60},
		ConsultWriteUp: Stage{Presence: 0.85, MinOffset: 30, MaxOffset: 240},
	}
}

// ZeroDuration marks a duration whose spanning stage never happened.
const ZeroDuration = "00:00:00"

// Fractions of the requested record count generated for the two reduced
// tables.
const (
	MortalityFraction    = 0.02
	InterConsultFraction = 0.3
)

// Keyword filters applied to destination names, case-insensitively, as
// substring matches. They must be reapplied identically whenever the destino
// catalog changes.
var (
	hospitalizationKeywords = []string{"PASE", "INTERNACION", "CTI", "UCI", "CIRUGIA", "CLINICA"}
	deathKeywords           = []string{"DEFUNCION", "FALLEC", "MUERTE", "OBITO"}
)
