package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLabValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want LabValue
	}{
		{
			name: "already structured",
			in:   LabValue{Result: "13.5", Unit: "g/dL", ReferenceRange: "12.0 - 16.0", Flag: "H"},
			want: LabValue{Result: "13.5", Unit: "g/dL", ReferenceRange: "12.0 - 16.0", Flag: "H"},
		},
		{
			name: "map with missing keys",
			in:   map[string]any{"result": "5.5"},
			want: LabValue{Result: "5.5"},
		},
		{
			name: "string map",
			in:   map[string]string{"result": "7.1", "unit": "mmol/L", "reference_range": "3.9 - 6.1"},
			want: LabValue{Result: "7.1", Unit: "mmol/L", ReferenceRange: "3.9 - 6.1"},
		},
		{
			name: "raw fragment with parenthesised range and flag",
			in:   "13.5 g/dL (12.0 - 16.0) H",
			want: LabValue{Result: "13.5", Unit: "g/dL", ReferenceRange: "12.0 - 16.0", Flag: "H"},
		},
		{
			name: "bare numeric string",
			in:   "250",
			want: LabValue{Result: "250"},
		},
		{
			name: "qualitative value",
			in:   "Yellow",
			want: LabValue{Result: "Yellow"},
		},
		{
			name: "numeric",
			in:   42,
			want: LabValue{Result: "42"},
		},
		{
			name: "nil",
			in:   nil,
			want: LabValue{},
		},
		{
			name: "empty string",
			in:   "   ",
			want: LabValue{},
		},
		{
			name: "nil pointer",
			in:   (*LabValue)(nil),
			want: LabValue{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLabValue(tt.in))
		})
	}
}

func TestNormalizeLabValueSanitizesFlag(t *testing.T) {
	got := NormalizeLabValue(LabValue{Result: "1", Flag: "high"})
	assert.Equal(t, "", got.Flag)

	got = NormalizeLabValue(LabValue{Result: "1", Flag: "l"})
	assert.Equal(t, "L", got.Flag)
}
