package models

// Place is a geocoding suggestion for the album location field. Lat/Lon are
// kept as strings exactly as the upstream service returns them.
type Place struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Lat   string `json:"lat"`
	Lon   string `json:"lon"`
}
