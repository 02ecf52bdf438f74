package dimension

import (
	"strings"
	"testing"
)

func TestGenerator_FixedCatalogCounts(t *testing.T) {
	g := NewGenerator(1)

	cases := []struct {
		name string
		got  int
		want int
	}{
		{"atencion_cancelada", len(g.CancelledStates()), 2},
		{"sexo", len(g.Sexes()), 2},
		{"tiene_diagnostico", len(g.DiagnosisFlags()), 2},
		{"tiene_motivo_consulta", len(g.ReasonFlags()), 2},
		{"clasificacion_triage", len(g.TriageClasses()), 5},
		{"dia_semana", len(g.WeekDays()), 7},
		{"edad", len(g.AgeBands()), 18},
		{"procedencia", len(g.Origins()), 10},
		{"destino", len(g.Destinations()), 12},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("%s: expected %d rows, got %d", c.name, c.want, c.got)
		}
	}
}

func TestGenerator_TimeSlots(t *testing.T) {
	g := NewGenerator(1)
	slots := g.TimeSlots()

	if len(slots) != 96 {
		t.Fatalf("expected 96 slots, got %d", len(slots))
	}
	if slots[0].String() != "00:00:00" {
		t.Errorf("expected first slot 00:00:00, got %s", slots[0].String())
	}
	if slots[95].String() != "23:45:00" {
		t.Errorf("expected last slot 23:45:00, got %s", slots[95].String())
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].SecondsSinceMidnight()-slots[i-1].SecondsSinceMidnight() != 15*60 {
			t.Fatalf("slots not 15 minutes apart at index %d", i)
		}
	}
}

func TestGenerator_Dates(t *testing.T) {
	g := NewGenerator(1)
	dates := g.Dates()

	// 2020-01-01 through 2025-12-31: 2020 and 2024 are leap years.
	want := 366 + 365 + 365 + 365 + 366 + 365
	if len(dates) != want {
		t.Fatalf("expected %d dates, got %d", want, len(dates))
	}
	if dates[0].String() != CalendarStart {
		t.Errorf("expected first date %s, got %s", CalendarStart, dates[0].String())
	}
	if dates[len(dates)-1].String() != CalendarEnd {
		t.Errorf("expected last date %s, got %s", CalendarEnd, dates[len(dates)-1].String())
	}
	for i := 1; i < len(dates); i++ {
		if dates[i].DaysSince(dates[i-1]) != 1 {
			t.Fatalf("dates not consecutive at index %d", i)
		}
	}
}

func TestGenerator_WeekDaysSundayFirst(t *testing.T) {
	g := NewGenerator(1)
	days := g.WeekDays()

	if days[0].ID != 0 || days[0].Name != "Domingo" {
		t.Errorf("expected id 0 Domingo first, got id %d %s", days[0].ID, days[0].Name)
	}
	if days[6].ID != 6 || days[6].Name != "Sábado" {
		t.Errorf("expected id 6 Sábado last, got id %d %s", days[6].ID, days[6].Name)
	}
}

func TestGenerator_TriageClassesSeverityFirst(t *testing.T) {
	g := NewGenerator(1)
	classes := g.TriageClasses()

	if classes[0].Color != "Rojo" || classes[1].Color != "Naranja" {
		t.Errorf("expected Rojo, Naranja leading, got %s, %s", classes[0].Color, classes[1].Color)
	}
	for i, c := range classes {
		if c.ID != i+1 {
			t.Errorf("expected sequential ids from 1, got %d at index %d", c.ID, i)
		}
	}
}

func TestGenerator_DestinationsKeysAligned(t *testing.T) {
	g := NewGenerator(1)
	for _, d := range g.Destinations() {
		if d.ServiceID != d.ID || d.BenefitID != d.ID {
			t.Errorf("destination %q: expected service/benefit ids to reuse %d, got %d/%d",
				d.Name, d.ID, d.ServiceID, d.BenefitID)
		}
	}
}

func TestGenerator_DiagnosisCodes(t *testing.T) {
	g := NewGenerator(1)
	codes := g.DiagnosisCodes(DefaultDiagnosisCount)

	if len(codes) != DefaultDiagnosisCount {
		t.Fatalf("expected %d codes, got %d", DefaultDiagnosisCount, len(codes))
	}
	for i, c := range codes {
		if c.ID != i+1 {
			t.Fatalf("expected sequential ids from 1, got %d at index %d", c.ID, i)
		}
		// Shape: letter, two digits, dot, digit, e.g. J15.2.
		if len(c.Code) != 5 || c.Code[3] != '.' {
			t.Errorf("unexpected code shape %q", c.Code)
		}
		if !strings.HasSuffix(c.Description, c.Code) {
			t.Errorf("description %q does not end with code %q", c.Description, c.Code)
		}
	}
}

func TestGenerator_SnomedCodesPipeDelimited(t *testing.T) {
	g := NewGenerator(1)
	codes := g.SnomedCodes(DefaultSnomedCount)

	if len(codes) != DefaultSnomedCount {
		t.Fatalf("expected %d codes, got %d", DefaultSnomedCount, len(codes))
	}
	for _, c := range codes {
		parts := strings.Split(c.Term, "|")
		if len(parts) != 3 || parts[2] != "" {
			t.Errorf("expected concept|term| form, got %q", c.Term)
		}
	}
}

func TestGenerator_GeoRefs(t *testing.T) {
	g := NewGenerator(1)
	refs := g.GeoRefs(DefaultGeoCount)

	if len(refs) != DefaultGeoCount {
		t.Fatalf("expected %d refs, got %d", DefaultGeoCount, len(refs))
	}
	for _, r := range refs {
		// Uruguay sits roughly between -30 and -35 latitude, -53 and -59
		// longitude; jitter stays well inside a degree of the city centers.
		if r.Lat > -30 || r.Lat < -36 {
			t.Errorf("latitude %f outside expected range", r.Lat)
		}
		if r.Lon > -53 || r.Lon < -59 {
			t.Errorf("longitude %f outside expected range", r.Lon)
		}
		if r.City == "" || r.Barrio == "" || r.Department == "" {
			t.Errorf("empty location names in %+v", r)
		}
	}
}

func TestGenerator_SameSeedSameOutput(t *testing.T) {
	a := NewGenerator(42).DiagnosisCodes(10)
	b := NewGenerator(42).DiagnosisCodes(10)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different codes at index %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestEmptyError_Message(t *testing.T) {
	err := EmptyError{Name: "sexo"}
	if !strings.Contains(err.Error(), "sexo") || !strings.Contains(err.Error(), "--facts-only") {
		t.Errorf("unexpected message %q", err.Error())
	}
}
