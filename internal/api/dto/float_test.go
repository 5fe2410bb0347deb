package dto

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatJSON(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		json string
	}{
		{"negative zero", math.Copysign(0, -1), "-0"},
		{"zero", 0, "0"},
		{"fraction", -117.2, "-117.2"},
		{"denormal", math.SmallestNonzeroFloat64, "5e-324"},
		{"max", math.MaxFloat64, "1.7976931348623157e+308"},
		{"nan", math.NaN(), `"NaN"`},
		{"positive inf", math.Inf(1), `"+Inf"`},
		{"negative inf", math.Inf(-1), `"-Inf"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(Float(tt.v))
			require.NoError(t, err)
			assert.Equal(t, tt.json, string(b))

			var got Float
			require.NoError(t, json.Unmarshal(b, &got))
			assert.Equal(t, math.Float64bits(tt.v), math.Float64bits(float64(got)))
		})
	}
}

func TestFloatUnmarshalRejectsText(t *testing.T) {
	var p CartesianPoint
	require.Error(t, json.Unmarshal([]byte(`{"x":"north","y":0,"z":0}`), &p))

	require.NoError(t, json.Unmarshal([]byte(`{"x":null,"y":1,"z":2}`), &p))
	assert.Equal(t, CartesianPoint{X: 0, Y: 1, Z: 2}, p)
}
