package dimension

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/medloader/medloader/internal/clock"
)

// Generator produces dimension collections from the static catalogs. Every
// invocation is idempotent in shape (same row counts) but randomized fields
// differ unless the same seed is reused.
type Generator struct {
	rng   *rand.Rand
	faker *gofakeit.Faker
}

// NewGenerator returns a generator seeded for reproducibility. If seed is 0 a
// time-based seed is chosen.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		rng:   rand.New(rand.NewSource(seed)),
		faker: gofakeit.New(uint64(seed)),
	}
}

func (g *Generator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}

// CancelledStates returns the two atencion_cancelada rows.
func (g *Generator) CancelledStates() []CancelledState {
	return []CancelledState{
		{IsCancelled: false, Label: "No cancelado"},
		{IsCancelled: true, Label: "Cancelado"},
	}
}

// Sexes returns the two sexo rows.
func (g *Generator) Sexes() []Sex {
	return []Sex{
		{ID: false, Name: "Femenino"},
		{ID: true, Name: "Masculino"},
	}
}

// DiagnosisFlags returns the two tiene_diagnostico rows.
func (g *Generator) DiagnosisFlags() []DiagnosisFlag {
	return []DiagnosisFlag{
		{Has: false, Label: "Sin diagnóstico"},
		{Has: true, Label: "Con diagnóstico"},
	}
}

// ReasonFlags returns the two tiene_motivo_consulta rows.
func (g *Generator) ReasonFlags() []ReasonFlag {
	return []ReasonFlag{
		{Has: false, Label: "Sin motivo de consulta"},
		{Has: true, Label: "Con motivo de consulta"},
	}
}

// TriageClasses returns the five triage severity classes, most severe first.
func (g *Generator) TriageClasses() []TriageClass {
	out := make([]TriageClass, len(triageColors))
	for i, color := range triageColors {
		out[i] = TriageClass{ID: i + 1, Color: color}
	}
	return out
}

// WeekDays returns the seven dia_semana rows, Sunday first.
func (g *Generator) WeekDays() []WeekDay {
	out := make([]WeekDay, len(weekDayNames))
	for i, name := range weekDayNames {
		out[i] = WeekDay{ID: i, Name: name}
	}
	return out
}

// AgeBands returns the eighteen SINADI age bands.
func (g *Generator) AgeBands() []AgeBand {
	out := make([]AgeBand, len(ageBandLabels))
	for i, label := range ageBandLabels {
		out[i] = AgeBand{ID: i + 1, Label: label}
	}
	return out
}

// Origins returns the ten procedencia rows.
func (g *Generator) Origins() []Origin {
	out := make([]Origin, len(originNames))
	for i, name := range originNames {
		out[i] = Origin{ID: i + 1, Name: name}
	}
	return out
}

// Destinations returns the twelve destino rows. Service and benefit reuse the
// destination key, as in the source schema.
func (g *Generator) Destinations() []Destination {
	out := make([]Destination, len(destinationEntries))
	for i, e := range destinationEntries {
		id := i + 1
		out[i] = Destination{
			ID: id, Name: e.Name,
			ServiceID: id, Service: e.Service,
			BenefitID: id, Benefit: e.Benefit,
		}
	}
	return out
}

// Dates returns every calendar day from CalendarStart through CalendarEnd,
// ascending.
func (g *Generator) Dates() []clock.Date {
	start := clock.MustParseDate(CalendarStart)
	end := clock.MustParseDate(CalendarEnd)
	var out []clock.Date
	for d := start; !d.After(end); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

// TimeSlots returns the 96 horario rows covering a full day at 15-minute
// granularity, ascending.
func (g *Generator) TimeSlots() []clock.TimeOfDay {
	var out []clock.TimeOfDay
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute += clock.SlotMinutes {
			out = append(out, clock.NewTimeOfDay(hour, minute, 0))
		}
	}
	return out
}

// DiagnosisCodes returns count randomized CIE-10 rows drawn from the fixed
// chapter catalog.
func (g *Generator) DiagnosisCodes(count int) []DiagnosisCode {
	out := make([]DiagnosisCode, count)
	for i := range out {
		letter := g.pick(cie10Letters)
		number := fmt.Sprintf("%02d", g.rng.Intn(100))
		code := fmt.Sprintf("%s%s.%d", letter, number, g.rng.Intn(10))
		chapter := cie10Chapters[g.rng.Intn(len(cie10Chapters))]
		disease := g.pick(diseaseNames)

		out[i] = DiagnosisCode{
			ID:                     i + 1,
			Code:                   code,
			Description:            fmt.Sprintf("%s - %s", disease, code),
			ChapterID:              chapter.ID,
			Chapter:                chapter.Code,
			ChapterDescription:     chapter.Description,
			GroupID:                g.faker.Number(1, 20),
			Group:                  fmt.Sprintf("%s%s-%s%s", letter, number, letter, number),
			GroupDescription:       fmt.Sprintf("Grupo de %s", disease),
			CategoryID:             g.faker.Number(1, 100),
			Category:               letter + number,
			CategoryDescription:    fmt.Sprintf("Categoría %s", disease),
			SubcategoryID:          g.faker.Number(1, 500),
			Subcategory:            code,
			SubcategoryDescription: fmt.Sprintf("%s específica", disease),
		}
	}
	return out
}

// SnomedCodes returns count randomized SNOMED rows in pipe-delimited form.
func (g *Generator) SnomedCodes(count int) []SnomedCode {
	out := make([]SnomedCode, count)
	for i := range out {
		out[i] = SnomedCode{
			ID:   i + 1,
			Term: fmt.Sprintf("%d|%s|", g.faker.Number(100000000, 999999999), g.pick(snomedConditions)),
		}
	}
	return out
}

// GeoRefs returns count geographic references spread over the city catalog,
// with coordinates jittered around each city's center.
func (g *Generator) GeoRefs(count int) []GeoReference {
	const spread = 0.05
	out := make([]GeoReference, count)
	for i := range out {
		cityIdx := g.rng.Intn(len(uruguayanCities))
		city := uruguayanCities[cityIdx]
		barrioIdx := g.rng.Intn(len(city.Barrios))
		barrio := city.Barrios[barrioIdx]

		out[i] = GeoReference{
			Lat:          round6(city.Lat + (g.rng.Float64()-0.5)*spread),
			Lon:          round6(city.Lon + (g.rng.Float64()-0.5)*spread),
			PostalCode:   g.faker.Number(city.PostalCodeMin, city.PostalCodeMax),
			PostalZone:   g.faker.Number(1, 10),
			BarrioID:     barrioIdx + 1,
			Barrio:       barrio,
			CityID:       cityIdx + 1,
			City:         city.Name,
			DepartmentID: cityIdx + 1,
			Department:   city.Department,
			Address:      fmt.Sprintf("%s, %s, %s", g.faker.Street(), barrio, city.Name),
			Notes:        nil,
		}
	}
	return out
}

// Bundle generates every dimension at its default row count.
func (g *Generator) Bundle() *Bundle {
	return &Bundle{
		CancelledStates: g.CancelledStates(),
		Sexes:           g.Sexes(),
		DiagnosisFlags:  g.DiagnosisFlags(),
		ReasonFlags:     g.ReasonFlags(),
		TriageClasses:   g.TriageClasses(),
		WeekDays:        g.WeekDays(),
		AgeBands:        g.AgeBands(),
		Origins:         g.Origins(),
		Destinations:    g.Destinations(),
		Dates:           g.Dates(),
		TimeSlots:       g.TimeSlots(),
		Diagnoses:       g.DiagnosisCodes(DefaultDiagnosisCount),
		SnomedCodes:     g.SnomedCodes(DefaultSnomedCount),
		GeoRefs:         g.GeoRefs(DefaultGeoCount),
	}
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
