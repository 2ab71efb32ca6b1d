package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 550.0, Coalesce(nil, 550.0))
	assert.Equal(t, 600.0, Coalesce(Float(600), 550.0))
	assert.Equal(t, 0.0, Coalesce(Float(0), 550.0))
	assert.Equal(t, 2, Coalesce(Int(2), 1))
}

func TestCoalesceString(t *testing.T) {
	assert.Equal(t, "temperate", CoalesceString(nil, "temperate"))
	assert.Equal(t, "temperate", CoalesceString(String(""), "temperate"))
	assert.Equal(t, "warm", CoalesceString(String("warm"), "temperate"))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(0))
	assert.True(t, IsFinite(-12.5))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(1)))
	assert.False(t, IsFinite(math.Inf(-1)))
}

func TestAsFloat(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{1.5, 1.5, true},
		{float32(2), 2, true},
		{3, 3, true},
		{int64(4), 4, true},
		{json.Number("5.25"), 5.25, true},
		{json.Number("x"), 0, false},
		{"6", 0, false},
		{true, 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := AsFloat(tt.in)
		assert.Equal(t, tt.ok, ok, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}
}

func TestCheckQuantity(t *testing.T) {
	assert.NoError(t, CheckQuantity("diesel_l", 0))
	assert.NoError(t, CheckQuantity("diesel_l", 12.5))

	err := CheckQuantity("diesel_l", -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "diesel_l")

	assert.ErrorIs(t, CheckQuantity("heifers", math.NaN()), ErrInvalidInput)
	assert.ErrorIs(t, CheckQuantity("heifers", math.Inf(-1)), ErrInvalidInput)
}
