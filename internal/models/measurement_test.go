package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeasurementFromString(t *testing.T) {
	cases := map[string]Measurement{
		"g":           Grams,
		"г":           Grams,
		"grams":       Grams,
		"Граммы":      Grams,
		"1":           Grams,
		"GRAMS":       Grams,
		"шт":          Pieces,
		"pcs":         Pieces,
		"Pieces":      Pieces,
		"2":           Pieces,
		"ml":          Milliliters,
		"мл":          Milliliters,
		"MILLILITERS": Milliliters,
		"3":           Milliliters,
		"  g  ":       Grams,
	}

	for input, want := range cases {
		got, err := MeasurementFromString(input)
		assert.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestMeasurementFromStringRejectsUnknown(t *testing.T) {
	for _, input := range []string{"", "kg", "liters", "х", "0", "4"} {
		_, err := MeasurementFromString(input)
		var invalid *InvalidMeasurementError
		assert.ErrorAs(t, err, &invalid, "input %q", input)
		assert.Equal(t, input, invalid.Value)
		assert.NotEmpty(t, invalid.Allowed)
	}
}

func TestMeasurementFromInt(t *testing.T) {
	for code, want := range map[int]Measurement{1: Grams, 2: Pieces, 3: Milliliters} {
		got, err := MeasurementFromInt(code)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}

	for _, code := range []int{0, 4, -1, 100} {
		_, err := MeasurementFromInt(code)
		var invalid *InvalidMeasurementError
		assert.ErrorAs(t, err, &invalid, "code %d", code)
	}
}

func TestMeasurementUnmarshalJSON(t *testing.T) {
	type payload struct {
		Measurement Measurement `json:"measurement"`
	}

	var fromNumber payload
	assert.NoError(t, json.Unmarshal([]byte(`{"measurement": 2}`), &fromNumber))
	assert.Equal(t, Pieces, fromNumber.Measurement)

	var fromString payload
	assert.NoError(t, json.Unmarshal([]byte(`{"measurement": "мл"}`), &fromString))
	assert.Equal(t, Milliliters, fromString.Measurement)

	var bad payload
	err := json.Unmarshal([]byte(`{"measurement": "bucket"}`), &bad)
	var invalid *InvalidMeasurementError
	assert.ErrorAs(t, err, &invalid)
}

func TestMeasurementLabels(t *testing.T) {
	assert.Equal(t, "г", Grams.Label())
	assert.Equal(t, "шт", Pieces.Label())
	assert.Equal(t, "мл", Milliliters.Label())
	assert.Equal(t, "", Measurement(9).Label())

	assert.Equal(t, "GRAMS", Grams.String())
	assert.False(t, Measurement(0).Valid())
	assert.True(t, Pieces.Valid())
}
