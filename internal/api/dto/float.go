package dto

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Float is a coordinate on the wire. Finite values are plain JSON numbers
// in shortest round-trip form; NaN and ±Inf use the strings "NaN", "+Inf"
// and "-Inf" since JSON numbers cannot express them.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func (f *Float) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		switch s {
		case "NaN":
			*f = Float(math.NaN())
		case "+Inf", "Inf":
			*f = Float(math.Inf(1))
		case "-Inf":
			*f = Float(math.Inf(-1))
		default:
			return fmt.Errorf("coordinate %q is not a number", s)
		}
		return nil
	}

	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("coordinate %s is not a number: %w", b, err)
	}
	*f = Float(v)
	return nil
}
