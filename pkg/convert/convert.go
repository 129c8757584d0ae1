package convert

import (
	"fmt"
	"math"
	"time"

	"github.com/openf1db/openf1-ingest-go/pkg/model"
)

// FieldError describes why a raw record was rejected.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
}

func missing(field string) *FieldError {
	return &FieldError{Field: field, Reason: "required attribute missing"}
}

func wrongType(field string, raw any) *FieldError {
	return &FieldError{Field: field, Reason: fmt.Sprintf("unexpected type %T", raw)}
}

// fields provides typed access to the attributes of a raw record.
// The first error is kept, subsequent accessors return zero values.
// Numbers are accepted as int, int64 or float64 since the values
// originate from JSON parsers or test literals.
type fields struct {
	raw map[string]any
	err error
}

func newFields(raw map[string]any) *fields {
	return &fields{raw: raw}
}

func (f *fields) intValue(field string, raw any) int {
	switch v := raw.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if v != math.Trunc(v) {
			f.err = &FieldError{Field: field, Reason: "not an integer"}
			return 0
		}
		return int(v)
	}
	f.err = wrongType(field, raw)
	return 0
}

func (f *fields) floatValue(field string, raw any) float64 {
	switch v := raw.(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	}
	f.err = wrongType(field, raw)
	return 0
}

func (f *fields) timeValue(field string, raw any) time.Time {
	s, ok := raw.(string)
	if !ok {
		f.err = wrongType(field, raw)
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		f.err = &FieldError{Field: field, Reason: fmt.Sprintf("invalid timestamp %q", s)}
		return time.Time{}
	}
	return ts
}

func (f *fields) reqInt(field string) int {
	if f.err != nil {
		return 0
	}
	v, ok := f.raw[field]
	if !ok || v == nil {
		f.err = missing(field)
		return 0
	}
	return f.intValue(field, v)
}

func (f *fields) optInt(field string) *int {
	if f.err != nil {
		return nil
	}
	v, ok := f.raw[field]
	if !ok || v == nil {
		return nil
	}
	ret := f.intValue(field, v)
	if f.err != nil {
		return nil
	}
	return &ret
}

func (f *fields) reqString(field string) string {
	if f.err != nil {
		return ""
	}
	v, ok := f.raw[field]
	if !ok || v == nil {
		f.err = missing(field)
		return ""
	}
	s, ok := v.(string)
	if !ok {
		f.err = wrongType(field, v)
		return ""
	}
	return s
}

func (f *fields) optString(field string) *string {
	if f.err != nil {
		return nil
	}
	v, ok := f.raw[field]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		f.err = wrongType(field, v)
		return nil
	}
	return &s
}

func (f *fields) optFloat(field string) *float64 {
	if f.err != nil {
		return nil
	}
	v, ok := f.raw[field]
	if !ok || v == nil {
		return nil
	}
	ret := f.floatValue(field, v)
	if f.err != nil {
		return nil
	}
	return &ret
}

func (f *fields) optBool(field string) *bool {
	if f.err != nil {
		return nil
	}
	v, ok := f.raw[field]
	if !ok || v == nil {
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		f.err = wrongType(field, v)
		return nil
	}
	return &b
}

func (f *fields) reqTime(field string) time.Time {
	if f.err != nil {
		return time.Time{}
	}
	v, ok := f.raw[field]
	if !ok || v == nil {
		f.err = missing(field)
		return time.Time{}
	}
	return f.timeValue(field, v)
}

func (f *fields) optTime(field string) *time.Time {
	if f.err != nil {
		return nil
	}
	v, ok := f.raw[field]
	if !ok || v == nil {
		return nil
	}
	ret := f.timeValue(field, v)
	if f.err != nil {
		return nil
	}
	return &ret
}

func (f *fields) optIntSlice(field string) []*int {
	if f.err != nil {
		return nil
	}
	v, ok := f.raw[field]
	if !ok || v == nil {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		f.err = wrongType(field, v)
		return nil
	}
	ret := make([]*int, 0, len(items))
	for _, item := range items {
		if item == nil {
			ret = append(ret, nil)
			continue
		}
		num := f.intValue(field, item)
		if f.err != nil {
			return nil
		}
		ret = append(ret, &num)
	}
	return ret
}

func (f *fields) gap(field string) model.GapValue {
	if f.err != nil {
		return model.GapNull()
	}
	return model.GapFrom(f.raw[field])
}
