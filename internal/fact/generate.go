package fact

import (
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/medloader/medloader/internal/clock"
	"github.com/medloader/medloader/internal/dimension"
)

// Generator produces fact rows from a dimension bundle. Every row samples its
// dimension references independently and with replacement; derived stages
// advance the clock forward and are snapped back onto the fecha/horario
// dimensions through the resolver.
type Generator struct {
	// Params holds the stage probabilities and offset ranges; override
	// fields before generating to force a branch.
	Params Params

	rng  *rand.Rand
	res  *clock.Resolver
	dims *dimension.Bundle
}

// NewGenerator builds a fact generator over the given bundle. If seed is 0 a
// time-based seed is chosen.
func NewGenerator(seed int64, dims *dimension.Bundle, log zerolog.Logger) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	return &Generator{
		Params: DefaultParams(),
		rng:    rng,
		res:    clock.NewResolver(dims.Dates, dims.TimeSlots, rng, log),
		dims:   dims,
	}
}

func pick[T any](rng *rand.Rand, pool []T) T {
	return pool[rng.Intn(len(pool))]
}

func (g *Generator) chance(p float64) bool {
	return g.rng.Float64() < p
}

// idOS draws the synthetic large-integer identifier. Collisions are permitted
// and not deduplicated.
func (g *Generator) idOS() int64 {
	return 100000 + g.rng.Int63n(999999999-100000+1)
}

// offset samples a uniform advance within the stage's range, in minutes.
func (g *Generator) offset(s Stage) int {
	return s.MinOffset + g.rng.Intn(s.MaxOffset-s.MinOffset+1)
}

// start samples an initial timestamp straight from the dimensions, so it is
// valid by construction.
func (g *Generator) start() (clock.Date, clock.TimeOfDay) {
	return pick(g.rng, g.dims.Dates), pick(g.rng, g.dims.TimeSlots)
}

// advance moves the chain forward by minutes and conforms the raw result to
// the run's dimensions.
func (g *Generator) advance(d clock.Date, t clock.TimeOfDay, minutes int) (clock.Date, clock.TimeOfDay) {
	rd, rt := clock.Advance(d, t, minutes)
	return g.res.ResolveDate(rd), g.res.ResolveTime(rt)
}

// diagnosisID samples a CIE-10 key with probability p, nil otherwise.
func (g *Generator) diagnosisID(p float64) *int {
	if !g.chance(p) {
		return nil
	}
	id := pick(g.rng, g.dims.Diagnoses).ID
	return &id
}

func matchesAny(name string, keywords []string) bool {
	upper := strings.ToUpper(name)
	for _, kw := range keywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}

// hospitalizationDestinations filters the destino set down to
// hospitalization-coded entries, falling back to the full set when nothing
// matches.
func hospitalizationDestinations(all []dimension.Destination) []dimension.Destination {
	var out []dimension.Destination
	for _, d := range all {
		if matchesAny(d.Name, hospitalizationKeywords) {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		return all
	}
	return out
}

// deathDestination finds the death-coded destino entry, resolved once and
// reused for every mortality row. Nil when the catalog has none.
func deathDestination(all []dimension.Destination) *dimension.Destination {
	for _, d := range all {
		if matchesAny(d.Name, deathKeywords) {
			dd := d
			return &dd
		}
	}
	return nil
}

// severeTriageClasses returns the two most severe classes (the triage
// dimension is ordered severity-first), or the full set when fewer exist.
func severeTriageClasses(all []dimension.TriageClass) []dimension.TriageClass {
	if len(all) >= 2 {
		return all[:2]
	}
	return all
}

// Admissions generates count arrival-snapshot rows.
func (g *Generator) Admissions(count int) []AdmissionRow {
	rows := make([]AdmissionRow, count)
	for i := range rows {
		date, tod := g.start()
		geo := pick(g.rng, g.dims.GeoRefs)
		rows[i] = AdmissionRow{
			IDOS:        g.idOS(),
			SexID:       pick(g.rng, g.dims.Sexes).ID,
			AgeID:       pick(g.rng, g.dims.AgeBands).ID,
			OriginID:    pick(g.rng, g.dims.Origins).ID,
			TriageID:    pick(g.rng, g.dims.TriageClasses).ID,
			CIE10ID:     g.diagnosisID(g.Params.AdmissionDiagnosis),
			ArrivalDate: date,
			ArrivalTime: tod,
			WeekdayID:   date.Weekday(),
			Lat:         geo.Lat,
			Lon:         geo.Lon,
		}
	}
	return rows
}

// Triages generates count standalone triage rows.
func (g *Generator) Triages(count int) []TriageRow {
	rows := make([]TriageRow, count)
	for i := range rows {
		date, tod := g.start()
		geo := pick(g.rng, g.dims.GeoRefs)
		rows[i] = TriageRow{
			IDOS:       g.idOS(),
			SexID:      pick(g.rng, g.dims.Sexes).ID,
			AgeID:      pick(g.rng, g.dims.AgeBands).ID,
			OriginID:   pick(g.rng, g.dims.Origins).ID,
			TriageID:   pick(g.rng, g.dims.TriageClasses).ID,
			CIE10ID:    g.diagnosisID(g.Params.TriageDiagnosis),
			WeekdayID:  date.Weekday(),
			TriageDate: date,
			TriageTime: tod,
			Lat:        geo.Lat,
			Lon:        geo.Lon,
		}
	}
	return rows
}

// Emergencies generates count emergency-attention rows.
func (g *Generator) Emergencies(count int) []EmergencyRow {
	rows := make([]EmergencyRow, count)
	for i := range rows {
		date, tod := g.start()
		geo := pick(g.rng, g.dims.GeoRefs)
		rows[i] = EmergencyRow{
			IDOS:          g.idOS(),
			SexID:         pick(g.rng, g.dims.Sexes).ID,
			AgeID:         pick(g.rng, g.dims.AgeBands).ID,
			OriginID:      pick(g.rng, g.dims.Origins).ID,
			TriageID:      pick(g.rng, g.dims.TriageClasses).ID,
			CIE10ID:       g.diagnosisID(g.Params.EmergencyDiagnosis),
			WeekdayID:     date.Weekday(),
			AttentionDate: date,
			AttentionTime: tod,
			Lat:           geo.Lat,
			Lon:           geo.Lon,
		}
	}
	return rows
}

// DischargeDiagnoses generates count arrival→discharge chains. The diagnosis
// key is always sampled; the discharge stage is probabilistic.
func (g *Generator) DischargeDiagnoses(count int) []DischargeDiagnosisRow {
	rows := make([]DischargeDiagnosisRow, count)
	for i := range rows {
		arrivalDate, arrivalTime := g.start()
		geo := pick(g.rng, g.dims.GeoRefs)

		row := DischargeDiagnosisRow{
			IDOS:             g.idOS(),
			SexID:            pick(g.rng, g.dims.Sexes).ID,
			AgeID:            pick(g.rng, g.dims.AgeBands).ID,
			OriginID:         pick(g.rng, g.dims.Origins).ID,
			TriageID:         pick(g.rng, g.dims.TriageClasses).ID,
			CIE10ID:          pick(g.rng, g.dims.Diagnoses).ID,
			ArrivalDate:      arrivalDate,
			ArrivalWeekdayID: arrivalDate.Weekday(),
			ArrivalTime:      arrivalTime,
			Lat:              geo.Lat,
			Lon:              geo.Lon,
		}

		if g.chance(g.Params.Discharge.Presence) {
			d, t := g.advance(arrivalDate, arrivalTime, g.offset(g.Params.Discharge))
			wd := d.Weekday()
			row.DischargeDate = &d
			row.DischargeWeekday = &wd
			row.DischargeTime = &t
		}

		rows[i] = row
	}
	return rows
}

// FloorAdmissions generates count floor-admission rows against the
// hospitalization-coded destination subset.
func (g *Generator) FloorAdmissions(count int) []FloorAdmissionRow {
	destinations := hospitalizationDestinations(g.dims.Destinations)

	rows := make([]FloorAdmissionRow, count)
	for i := range rows {
		date, tod := g.start()
		geo := pick(g.rng, g.dims.GeoRefs)
		rows[i] = FloorAdmissionRow{
			IDOS:             g.idOS(),
			SexID:            pick(g.rng, g.dims.Sexes).ID,
			AgeID:            pick(g.rng, g.dims.AgeBands).ID,
			OriginID:         pick(g.rng, g.dims.Origins).ID,
			TriageID:         pick(g.rng, g.dims.TriageClasses).ID,
			ServiceID:        pick(g.rng, destinations).ServiceID,
			ArrivalDate:      date,
			ArrivalWeekdayID: date.Weekday(),
			ArrivalTime:      tod,
			Lat:              geo.Lat,
			Lon:              geo.Lon,
		}
	}
	return rows
}

// Mortalities generates count mortality rows restricted to the most severe
// triage classes.
func (g *Generator) Mortalities(count int) []MortalityRow {
	severe := severeTriageClasses(g.dims.TriageClasses)

	var lastPlace *int
	if dd := deathDestination(g.dims.Destinations); dd != nil {
		id := dd.ServiceID
		lastPlace = &id
	}

	rows := make([]MortalityRow, count)
	for i := range rows {
		date, tod := g.start()
		geo := pick(g.rng, g.dims.GeoRefs)
		rows[i] = MortalityRow{
			IDOS:             g.idOS(),
			SexID:            pick(g.rng, g.dims.Sexes).ID,
			AgeID:            pick(g.rng, g.dims.AgeBands).ID,
			OriginID:         pick(g.rng, g.dims.Origins).ID,
			TriageID:         pick(g.rng, severe).ID,
			CIE10ID:          g.diagnosisID(g.Params.MortalityDiagnosis),
			LastPlaceID:      lastPlace,
			ArrivalDate:      date,
			ArrivalWeekdayID: date.Weekday(),
			ArrivalTime:      tod,
			Lat:              geo.Lat,
			Lon:              geo.Lon,
		}
	}
	return rows
}

// AttentionTimes generates count arrival→exit chains with a total attention
// duration.
func (g *Generator) AttentionTimes(count int) []AttentionTimeRow {
	rows := make([]AttentionTimeRow, count)
	for i := range rows {
		arrivalDate, arrivalTime := g.start()

		row := AttentionTimeRow{
			IDOS:             g.idOS(),
			SexID:            pick(g.rng, g.dims.Sexes).ID,
			AgeID:            pick(g.rng, g.dims.AgeBands).ID,
			OriginID:         pick(g.rng, g.dims.Origins).ID,
			TriageID:         pick(g.rng, g.dims.TriageClasses).ID,
			CIE10ID:          g.diagnosisID(g.Params.AttentionDiagnosis),
			ArrivalDate:      arrivalDate,
			ArrivalWeekdayID: arrivalDate.Weekday(),
			ArrivalTime:      arrivalTime,
			TotalTime:        ZeroDuration,
		}

		if g.chance(g.Params.Exit.Presence) {
			d, t := g.advance(arrivalDate, arrivalTime, g.offset(g.Params.Exit))
			wd := d.Weekday()
			row.ExitDate = &d
			row.ExitWeekday = &wd
			row.ExitTime = &t
			row.TotalTime = clock.Interval(arrivalDate, arrivalTime, d, t)
		}

		rows[i] = row
	}
	return rows
}

// TriageWaits generates count arrival→triage chains with the triage wait
// duration.
func (g *Generator) TriageWaits(count int) []TriageWaitRow {
	rows := make([]TriageWaitRow, count)
	for i := range rows {
		arrivalDate, arrivalTime := g.start()

		row := TriageWaitRow{
			IDOS:             g.idOS(),
			SexID:            pick(g.rng, g.dims.Sexes).ID,
			AgeID:            pick(g.rng, g.dims.AgeBands).ID,
			OriginID:         pick(g.rng, g.dims.Origins).ID,
			TriageID:         pick(g.rng, g.dims.TriageClasses).ID,
			ArrivalDate:      arrivalDate,
			ArrivalWeekdayID: arrivalDate.Weekday(),
			ArrivalTime:      arrivalTime,
			WaitTime:         ZeroDuration,
		}

		if g.chance(g.Params.TriageStage.Presence) {
			d, t := g.advance(arrivalDate, arrivalTime, g.offset(g.Params.TriageStage))
			wd := d.Weekday()
			row.TriageDate = &d
			row.TriageWeekday = &wd
			row.TriageTime = &t
			row.WaitTime = clock.Interval(arrivalDate, arrivalTime, d, t)
		}

		rows[i] = row
	}
	return rows
}

// AssignmentWaits generates count triage→assignment chains. The chain starts
// from a sampled triage timestamp, not from arrival.
func (g *Generator) AssignmentWaits(count int) []AssignmentWaitRow {
	rows := make([]AssignmentWaitRow, count)
	for i := range rows {
		triageDate, triageTime := g.start()

		row := AssignmentWaitRow{
			IDOS:            g.idOS(),
			SexID:           pick(g.rng, g.dims.Sexes).ID,
			AgeID:           pick(g.rng, g.dims.AgeBands).ID,
			OriginID:        pick(g.rng, g.dims.Origins).ID,
			TriageID:        pick(g.rng, g.dims.TriageClasses).ID,
			TriageDate:      triageDate,
			TriageWeekdayID: triageDate.Weekday(),
			TriageTime:      triageTime,
			WaitTime:        ZeroDuration,
		}

		if g.chance(g.Params.Assignment.Presence) {
			d, t := g.advance(triageDate, triageTime, g.offset(g.Params.Assignment))
			wd := d.Weekday()
			row.AssignmentDate = &d
			row.AssignmentWeekday = &wd
			row.AssignmentTime = &t
			row.WaitTime = clock.Interval(triageDate, triageTime, d, t)
		}

		rows[i] = row
	}
	return rows
}

// InterConsultWaits generates count arrival→request→write-up chains. The
// request stage is unconditional; only the write-up stage carries a presence
// probability, and the wait duration spans request→write-up.
func (g *Generator) InterConsultWaits(count int) []InterConsultWaitRow {
	rows := make([]InterConsultWaitRow, count)
	for i := range rows {
		arrivalDate, arrivalTime := g.start()
		requestDate, requestTime := g.advance(arrivalDate, arrivalTime, g.offset(g.Params.ConsultRequest))

		row := InterConsultWaitRow{
			IDOS:             g.idOS(),
			SexID:            pick(g.rng, g.dims.Sexes).ID,
			AgeID:            pick(g.rng, g.dims.AgeBands).ID,
			OriginID:         pick(g.rng, g.dims.Origins).ID,
			TriageID:         pick(g.rng, g.dims.TriageClasses).ID,
			ArrivalDate:      arrivalDate,
			ArrivalWeekdayID: arrivalDate.Weekday(),
			ArrivalTime:      arrivalTime,
			RequestDate:      requestDate,
			RequestWeekdayID: requestDate.Weekday(),
			RequestTime:      requestTime,
			WaitTime:         ZeroDuration,
		}

		if g.chance(g.Params.ConsultWriteUp.Presence) {
			d, t := g.advance(requestDate, requestTime, g.offset(g.Params.ConsultWriteUp))
			wd := d.Weekday()
			row.WriteUpDate = &d
			row.WriteUpWeekday = &wd
			row.WriteUpTime = &t
			row.WaitTime = clock.Interval(requestDate, requestTime, d, t)
		}

		rows[i] = row
	}
	return rows
}
