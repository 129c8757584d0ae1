package model

import (
	"encoding/json"
	"strconv"
)

// GapValue holds a gap attribute of the intervals feed. The upstream
// delivers either a number of seconds, a text like "+1 LAP" or null.
// Numeric strings are converted to numbers, other strings are kept
// verbatim.
type GapValue struct {
	Number *float64
	Text   *string
}

func GapNumber(v float64) GapValue {
	return GapValue{Number: &v}
}

func GapText(s string) GapValue {
	return GapValue{Text: &s}
}

func GapNull() GapValue {
	return GapValue{}
}

func (g GapValue) IsNull() bool {
	return g.Number == nil && g.Text == nil
}

// GapFrom converts a raw JSON value into a GapValue. Strings are
// parsed as numbers first and kept as text when that fails.
func GapFrom(raw any) GapValue {
	switch v := raw.(type) {
	case nil:
		return GapNull()
	case float64:
		return GapNumber(v)
	case int64:
		return GapNumber(float64(v))
	case string:
		if num, err := strconv.ParseFloat(v, 64); err == nil {
			return GapNumber(num)
		}
		return GapText(v)
	default:
		return GapNull()
	}
}

func (g GapValue) MarshalJSON() ([]byte, error) {
	switch {
	case g.Number != nil:
		return json.Marshal(*g.Number)
	case g.Text != nil:
		return json.Marshal(*g.Text)
	default:
		return []byte("null"), nil
	}
}

func (g *GapValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*g = GapFrom(raw)
	return nil
}
