package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Measurement is the canonical unit for an ingredient quantity.
type Measurement int

const (
	Grams       Measurement = 1
	Pieces      Measurement = 2
	Milliliters Measurement = 3
)

// AllowedMeasurements is the list surfaced in validation errors.
var AllowedMeasurements = []string{"g/г (grams)", "шт/pieces (pieces)", "ml/мл (milliliters)"}

var measurementSynonyms = map[string]Measurement{
	"g": Grams, "г": Grams, "gram": Grams, "grams": Grams,
	"грамм": Grams, "граммы": Grams, "1": Grams,

	"шт": Pieces, "piece": Pieces, "pieces": Pieces, "pcs": Pieces,
	"pc": Pieces, "штука": Pieces, "штуки": Pieces, "2": Pieces,

	"ml": Milliliters, "мл": Milliliters, "milliliter": Milliliters,
	"milliliters": Milliliters, "миллилитр": Milliliters,
	"миллилитры": Milliliters, "3": Milliliters,
}

var measurementNames = map[string]Measurement{
	"GRAMS":       Grams,
	"PIECES":      Pieces,
	"MILLILITERS": Milliliters,
}

// InvalidMeasurementError reports a value that maps to no unit.
type InvalidMeasurementError struct {
	Value   string
	Allowed []string
}

func (e *InvalidMeasurementError) Error() string {
	return fmt.Sprintf("invalid measurement value: %q, allowed values: %s", e.Value, strings.Join(e.Allowed, ", "))
}

// MeasurementFromInt matches an ordinal unit code.
func MeasurementFromInt(v int) (Measurement, error) {
	switch Measurement(v) {
	case Grams, Pieces, Milliliters:
		return Measurement(v), nil
	}
	return 0, &InvalidMeasurementError{Value: strconv.Itoa(v), Allowed: AllowedMeasurements}
}

// MeasurementFromString matches a free-form unit string against the synonym
// table, falling back to the canonical unit name.
func MeasurementFromString(v string) (Measurement, error) {
	normalized := strings.ToLower(strings.TrimSpace(v))
	if m, ok := measurementSynonyms[normalized]; ok {
		return m, nil
	}
	if m, ok := measurementNames[strings.ToUpper(strings.TrimSpace(v))]; ok {
		return m, nil
	}
	return 0, &InvalidMeasurementError{Value: v, Allowed: AllowedMeasurements}
}

// Valid reports whether m is one of the three known units.
func (m Measurement) Valid() bool {
	switch m {
	case Grams, Pieces, Milliliters:
		return true
	}
	return false
}

func (m Measurement) String() string {
	switch m {
	case Grams:
		return "GRAMS"
	case Pieces:
		return "PIECES"
	case Milliliters:
		return "MILLILITERS"
	}
	return fmt.Sprintf("Measurement(%d)", int(m))
}

// Label is the short display form used in shaped output.
func (m Measurement) Label() string {
	switch m {
	case Grams:
		return "г"
	case Pieces:
		return "шт"
	case Milliliters:
		return "мл"
	}
	return ""
}

// UnmarshalJSON accepts either an ordinal code or a unit string, so request
// payloads may carry `"measurement": 1` as well as `"measurement": "g"`.
func (m *Measurement) UnmarshalJSON(data []byte) error {
	var code int
	if err := json.Unmarshal(data, &code); err == nil {
		parsed, err := MeasurementFromInt(code)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &InvalidMeasurementError{Value: string(data), Allowed: AllowedMeasurements}
	}
	parsed, err := MeasurementFromString(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
