package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFarmRecord_CheckStructure(t *testing.T) {
	valid := FarmRecord{FarmID: "F1", MilkLitres: Float(1000), CowsMilking: Float(10)}
	assert.NoError(t, valid.CheckStructure())

	tests := []struct {
		name   string
		record FarmRecord
		want   string
	}{
		{"missing id", FarmRecord{FarmID: " ", MilkLitres: Float(1), CowsMilking: Float(1)}, "missing farm_id"},
		{"missing milk", FarmRecord{FarmID: "F", CowsMilking: Float(1)}, "missing milk_litres"},
		{"missing cows", FarmRecord{FarmID: "F", MilkLitres: Float(1)}, "missing cows_milking"},
		{
			"parse error",
			FarmRecord{FarmID: "F", MilkLitres: Float(1), CowsMilking: Float(1), ParseErrors: []string{"diesel_l: \"abc\""}},
			"diesel_l",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.CheckStructure()
			assert.True(t, errors.Is(err, ErrSkipped))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFarmRecord_Label(t *testing.T) {
	assert.Equal(t, "F7", FarmRecord{FarmID: " F7 "}.Label())
	assert.Equal(t, "row 3", FarmRecord{Row: 2}.Label())
}
