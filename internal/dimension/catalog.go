package dimension

// Static catalogs backing the generated dimensions. Generation logic stays
// catalog-agnostic: changing a list here changes the data, not the algorithm.

// Calendar window covered by the fecha dimension.
const (
	CalendarStart = "2020-01-01"
	CalendarEnd   = "2025-12-31"
)

// Default row counts for the randomized dimensions.
const (
	DefaultDiagnosisCount = 100
	DefaultSnomedCount    = 50
	DefaultGeoCount       = 50
)

var triageColors = []string{"Rojo", "Naranja", "Amarillo", "Verde", "Azul"}

var weekDayNames = []string{
	"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado",
}

var ageBandLabels = []string{
	"0-4 años", "5-9 años", "10-14 años", "15-19 años", "20-24 años",
	"25-29 años", "30-34 años", "35-39 años", "40-44 años", "45-49 años",
	"50-54 años", "55-59 años", "60-64 años", "65-69 años", "70-74 años",
	"75-79 años", "80-84 años", "85+ años",
}

var originNames = []string{
	"Domicilio", "Vía pública", "Lugar de trabajo", "Institución educativa",
	"Centro de salud", "Otro hospital", "Ambulancia SAME", "Traslado privado",
	"Policía", "Otro",
}

type destinationEntry struct {
	Name    string
	Service string
	Benefit string
}

var destinationEntries = []destinationEntry{
	{"Alta médica", "Domicilio", "Alta"},
	{"Internación", "Clínica médica", "Internación"},
	{"Internación", "Cirugía", "Internación"},
	{"Internación", "Pediatría", "Internación"},
	{"Internación", "Obstetricia", "Internación"},
	{"Cuidados intensivos", "UCI Adultos", "Cuidados críticos"},
	{"Cuidados intensivos", "UTI Pediátrica", "Cuidados críticos"},
	{"Quirófano", "Cirugía de urgencia", "Intervención quirúrgica"},
	{"Traslado", "Otro centro", "Derivación"},
	{"Observación", "Emergencia", "Observación"},
	{"Fuga", "N/A", "Retiro voluntario"},
	{"Fallecimiento", "Emergencia", "Defunción"},
}

type chapterEntry struct {
	ID          int
	Code        string
	Description string
}

var cie10Chapters = []chapterEntry{
	{1, "A00-B99", "Enfermedades infecciosas y parasitarias"},
	{2, "C00-D48", "Neoplasias"},
	{3, "E00-E90", "Enfermedades endocrinas, nutricionales y metabólicas"},
	{4, "I00-I99", "Enfermedades del sistema circulatorio"},
	{5, "J00-J99", "Enfermedades del sistema respiratorio"},
	{6, "K00-K93", "Enfermedades del sistema digestivo"},
	{7, "M00-M99", "Enfermedades del sistema musculoesquelético"},
	{8, "N00-N99", "Enfermedades del sistema genitourinario"},
	{9, "R00-R99", "Síntomas, signos y hallazgos anormales"},
	{10, "S00-T98", "Traumatismos, envenenamientos"},
}

var cie10Letters = []string{"A", "B", "C", "E", "I", "J", "K", "M", "N", "R", "S", "T"}

var diseaseNames = []string{
	"Gastroenteritis aguda", "Hipertensión arterial", "Diabetes mellitus tipo 2",
	"Infección respiratoria aguda", "Neumonía", "Asma bronquial",
	"Traumatismo craneoencefálico", "Fractura de miembro", "Herida cortante",
	"Infección urinaria", "Cefalea", "Dolor abdominal",
	"Síndrome febril", "Intoxicación", "Quemadura",
	"Angina de pecho", "Infarto agudo de miocardio", "Arritmia cardíaca",
	"Crisis hipertensiva", "Accidente cerebrovascular",
}

var snomedConditions = []string{
	"Dolor torácico", "Disnea", "Fiebre", "Cefalea intensa",
	"Náuseas y vómitos", "Dolor abdominal agudo", "Mareos",
	"Palpitaciones", "Pérdida de conciencia", "Convulsiones",
	"Traumatismo", "Hemorragia", "Dificultad respiratoria",
	"Hipoglucemia", "Hiperglucemia", "Shock", "Sepsis",
}

type cityEntry struct {
	Name          string
	Department    string
	Lat           float64
	Lon           float64
	Barrios       []string
	PostalCodeMin int
	PostalCodeMax int
}

var uruguayanCities = []cityEntry{
	{
		Name: "Montevideo", Department: "Montevideo",
		Lat: -34.9011, Lon: -56.1645,
		Barrios: []string{
			"Centro", "Ciudad Vieja", "Pocitos", "Punta Carretas", "Carrasco",
			"Malvín", "Buceo", "Cordón", "Parque Rodó", "Tres Cruces",
		},
		PostalCodeMin: 11000, PostalCodeMax: 11900,
	},
	{
		Name: "Salto", Department: "Salto",
		Lat: -31.3833, Lon: -57.9667,
		Barrios: []string{
			"Centro", "Barrio Sur", "La Caballada", "Cerrito", "Villa Universal",
		},
		PostalCodeMin: 50000, PostalCodeMax: 50999,
	},
	{
		Name: "Paysandú", Department: "Paysandú",
		Lat: -32.3217, Lon: -58.0756,
		Barrios: []string{
			"Centro", "Barrio Anglo", "Parque Tecnológico", "La Española", "Porvenir",
		},
		PostalCodeMin: 60000, PostalCodeMax: 60999,
	},
	{
		Name: "Maldonado", Department: "Maldonado",
		Lat: -34.9000, Lon: -54.9500,
		Barrios: []string{
			"Centro", "San Fernando", "Parque del Plata", "El Jagüel", "Pinares",
		},
		PostalCodeMin: 20000, PostalCodeMax: 20999,
	},
	{
		Name: "Rivera", Department: "Rivera",
		Lat: -30.9000, Lon: -55.5500,
		Barrios: []string{
			"Centro", "Cuareim", "Mandubí", "La Pedrera", "Barrio Artigas",
		},
		PostalCodeMin: 40000, PostalCodeMax: 40999,
	},
	{
		Name: "Tacuarembó", Department: "Tacuarembó",
		Lat: -31.7167, Lon: -55.9833,
		Barrios: []string{
			"Centro", "Barrio Ferrocarril", "Barrio Yacuy", "La Tahona", "Iporá",
		},
		PostalCodeMin: 45000, PostalCodeMax: 45999,
	},
}
