package resort

// Region is the area a resort belongs to (Italian regions plus neighbouring countries).
type Region string

// Known regions.
const (
	Lombardia  Region = "lombardia"
	Piemonte   Region = "piemonte"
	ValleAosta Region = "valle_aosta"
	Trentino   Region = "trentino"
	Veneto     Region = "veneto"
	Friuli     Region = "friuli"
	Emilia     Region = "emilia"
	Toscana    Region = "toscana"
	Abruzzo    Region = "abruzzo"
	Svizzera   Region = "svizzera"
	Francia    Region = "francia"
	Austria    Region = "austria"
)

var regionLabels = map[Region]string{
	Lombardia:  "Lombardia",
	Piemonte:   "Piemonte",
	ValleAosta: "Valle d'Aosta",
	Trentino:   "Trentino-Alto Adige",
	Veneto:     "Veneto",
	Friuli:     "Friuli Venezia Giulia",
	Emilia:     "Emilia-Romagna",
	Toscana:    "Toscana",
	Abruzzo:    "Abruzzo",
	Svizzera:   "Svizzera",
	Francia:    "Francia",
	Austria:    "Austria",
}

// IsValid checks if the region is one of the known values.
func (r Region) IsValid() bool {
	_, ok := regionLabels[r]
	return ok
}

// Label returns the display name, or the raw code for unknown regions.
func (r Region) Label() string {
	if l, ok := regionLabels[r]; ok {
		return l
	}
	return string(r)
}
