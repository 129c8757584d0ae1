//nolint:funlen,lll // ok for tests
package convert

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"

	"github.com/openf1db/openf1-ingest-go/pkg/model"
	"github.com/openf1db/openf1-ingest-go/testsupport/basedata"
)

func TestConvertSession(t *testing.T) {
	got, err := ConvertSession(basedata.RawSession())
	assert.NoError(t, err)
	if diff := cmp.Diff(basedata.SampleSession(), got); diff != "" {
		t.Errorf("converted session not correct: %s", diff)
	}
}

func TestConvertSessionInvalid(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(raw map[string]any)
		wantField  string
		wantReason string
	}{
		{
			name:       "missing attribute",
			modify:     func(raw map[string]any) { delete(raw, "location") },
			wantField:  "location",
			wantReason: "required attribute missing",
		},
		{
			name:       "null attribute",
			modify:     func(raw map[string]any) { raw["circuit_key"] = nil },
			wantField:  "circuit_key",
			wantReason: "required attribute missing",
		},
		{
			name:       "wrong type",
			modify:     func(raw map[string]any) { raw["session_key"] = "9472" },
			wantField:  "session_key",
			wantReason: "unexpected type string",
		},
		{
			name:       "fractional number for int attribute",
			modify:     func(raw map[string]any) { raw["year"] = 2024.5 },
			wantField:  "year",
			wantReason: "not an integer",
		},
		{
			name:       "invalid timestamp",
			modify:     func(raw map[string]any) { raw["date_start"] = "yesterday" },
			wantField:  "date_start",
			wantReason: `invalid timestamp "yesterday"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := basedata.RawSession()
			tt.modify(raw)
			got, err := ConvertSession(raw)
			assert.Nil(t, got)
			var fieldErr *FieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("expected FieldError, got %v", err)
			}
			assert.Equal(t, tt.wantField, fieldErr.Field)
			assert.Equal(t, tt.wantReason, fieldErr.Reason)
		})
	}
}

// timestamps arrive with both offset notations, depending on the endpoint
func TestConvertTimestampWithOffset(t *testing.T) {
	raw := basedata.RawPosition(1, 4, "2024-03-02T15:00:00+00:00")
	got, err := ConvertPosition(raw)
	assert.NoError(t, err)
	assert.True(t, got.Date.Equal(basedata.TestTime()))
}

func TestConvertDriver(t *testing.T) {
	got, err := ConvertDriver(basedata.RawDriver(1))
	assert.NoError(t, err)
	if diff := cmp.Diff(basedata.SampleDriver(1), got); diff != "" {
		t.Errorf("converted driver not correct: %s", diff)
	}
}

func TestConvertDriverMinimal(t *testing.T) {
	got, err := ConvertDriver(map[string]any{
		"session_key":   int64(basedata.SessionKey),
		"driver_number": int64(44),
	})
	assert.NoError(t, err)
	want := &model.Driver{SessionKey: basedata.SessionKey, DriverNumber: 44}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("converted driver not correct: %s", diff)
	}
}

func TestConvertLap(t *testing.T) {
	got, err := ConvertLap(basedata.RawLap(1, 5))
	assert.NoError(t, err)
	want := &model.Lap{
		SessionKey:      basedata.SessionKey,
		MeetingKey:      lo.ToPtr(basedata.MeetingKey),
		DriverNumber:    1,
		LapNumber:       5,
		DateStart:       lo.ToPtr(time.Date(2024, 3, 2, 15, 4, 0, 0, time.UTC)),
		LapDuration:     lo.ToPtr(95.213),
		IsPitOutLap:     lo.ToPtr(false),
		StintNumber:     lo.ToPtr(1),
		DurationSector1: lo.ToPtr(30.123),
		DurationSector2: lo.ToPtr(32.045),
		DurationSector3: lo.ToPtr(33.045),
		I1Speed:         lo.ToPtr(292),
		I2Speed:         lo.ToPtr(315),
		StSpeed:         lo.ToPtr(301),
		SegmentsSector1: []*int{lo.ToPtr(2049), lo.ToPtr(2049), nil},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("converted lap not correct: %s", diff)
	}
}

func TestConvertLapMissingLapNumber(t *testing.T) {
	raw := basedata.RawLap(1, 5)
	delete(raw, "lap_number")
	got, err := ConvertLap(raw)
	assert.Nil(t, got)
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected FieldError, got %v", err)
	}
	assert.Equal(t, "lap_number", fieldErr.Field)
}

func TestConvertIntervalGaps(t *testing.T) {
	tests := []struct {
		name string
		gap  any
		want model.GapValue
	}{
		{name: "seconds", gap: 12.82, want: model.GapNumber(12.82)},
		{name: "numeric text", gap: "1.234", want: model.GapNumber(1.234)},
		{name: "lapped", gap: "+1 LAP", want: model.GapText("+1 LAP")},
		{name: "leader", gap: nil, want: model.GapNull()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := basedata.RawInterval(1, tt.gap, nil, "2024-03-02T15:10:00Z")
			got, err := ConvertInterval(raw)
			assert.NoError(t, err)
			if diff := cmp.Diff(tt.want, got.GapToLeader); diff != "" {
				t.Errorf("gap not correct: %s", diff)
			}
			assert.True(t, got.Interval.IsNull())
		})
	}
}

func TestConvertCarData(t *testing.T) {
	got, err := ConvertCarData(basedata.RawCarData(1, 312, "2024-03-02T15:20:31.123Z"))
	assert.NoError(t, err)
	assert.Equal(t, 312, *got.Speed)
	assert.Equal(t, 10500, *got.RPM)
	assert.Equal(t, 99.0, *got.Throttle)
	assert.True(t, got.Date.Equal(time.Date(2024, 3, 2, 15, 20, 31, 123000000, time.UTC)))
}

func TestConvertWeatherPartial(t *testing.T) {
	got, err := ConvertWeather(map[string]any{
		"session_key":     int64(basedata.SessionKey),
		"date":            "2024-03-02T15:05:00Z",
		"air_temperature": 27.8,
		"rainfall":        int64(0),
	})
	assert.NoError(t, err)
	assert.Equal(t, 27.8, *got.AirTemperature)
	assert.Equal(t, 0, *got.Rainfall)
	assert.Nil(t, got.Humidity)
	assert.Nil(t, got.WindSpeed)
}

func TestConvertRaceControlMissingMessage(t *testing.T) {
	got, err := ConvertRaceControl(map[string]any{
		"session_key": int64(basedata.SessionKey),
		"date":        "2024-03-02T15:05:00Z",
	})
	assert.Nil(t, got)
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected FieldError, got %v", err)
	}
	assert.Equal(t, "message", fieldErr.Field)
}
