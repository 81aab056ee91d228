package models

import "time"

// Functie represents a job role shown on the career map
type Functie struct {
	ID             int64     `json:"id"`
	Titel          string    `json:"titel"`
	Beschrijving   *string   `json:"beschrijving"`
	Benodigd       *string   `json:"benodigd"`
	Opleiding      *string   `json:"opleiding"`
	Cursus         *string   `json:"cursus"`
	VervolgFunctie *string   `json:"vervolg_functie"`
	Locatie        *string   `json:"locatie"`
	Lat            *float64  `json:"lat"`
	Lng            *float64  `json:"lng"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FunctieFilter narrows a functie listing. Empty fields are ignored.
type FunctieFilter struct {
	Opleiding string
	Locatie   string
}

// FunctieColumn is a writable column of the functies table
type FunctieColumn string

// Writable functie columns
const (
	FunctieTitel          FunctieColumn = "titel"
	FunctieBeschrijving   FunctieColumn = "beschrijving"
	FunctieBenodigd       FunctieColumn = "benodigd"
	FunctieOpleiding      FunctieColumn = "opleiding"
	FunctieCursus         FunctieColumn = "cursus"
	FunctieVervolgFunctie FunctieColumn = "vervolg_functie"
	FunctieLocatie        FunctieColumn = "locatie"
	FunctieLat            FunctieColumn = "lat"
	FunctieLng            FunctieColumn = "lng"
)

// FunctieColumns lists the writable columns in table order.
// Column names used in SQL text must come from this list only.
var FunctieColumns = []FunctieColumn{
	FunctieTitel,
	FunctieBeschrijving,
	FunctieBenodigd,
	FunctieOpleiding,
	FunctieCursus,
	FunctieVervolgFunctie,
	FunctieLocatie,
	FunctieLat,
	FunctieLng,
}

// FunctieFields holds normalized values for a create or update.
// A key that is present with a nil value writes NULL.
type FunctieFields map[FunctieColumn]any
