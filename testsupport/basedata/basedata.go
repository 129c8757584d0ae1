package basedata

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"

	"github.com/openf1db/openf1-ingest-go/pkg/model"
	"github.com/openf1db/openf1-ingest-go/pkg/repository/docs"
)

// Keys of the sample session (2024 Bahrain Grand Prix).
const (
	SessionKey = 9472
	MeetingKey = 1229
)

func TestTime() time.Time {
	t, _ := time.Parse(time.RFC3339, "2024-03-02T15:00:00Z")
	return t
}

func SampleSession() *model.Session {
	return &model.Session{
		SessionKey:       SessionKey,
		SessionName:      "Race",
		SessionType:      "Race",
		MeetingKey:       MeetingKey,
		Location:         "Sakhir",
		CountryKey:       36,
		CountryCode:      "BRN",
		CountryName:      "Bahrain",
		CircuitKey:       63,
		CircuitShortName: "Sakhir",
		DateStart:        TestTime(),
		DateEnd:          TestTime().Add(2 * time.Hour),
		GmtOffset:        "03:00:00",
		Year:             2024,
	}
}

func SampleDriver(driverNo int) *model.Driver {
	return &model.Driver{
		SessionKey:   SessionKey,
		MeetingKey:   lo.ToPtr(MeetingKey),
		DriverNumber: driverNo,
		FullName:     lo.ToPtr(fmt.Sprintf("Test Driver %d", driverNo)),
		NameAcronym:  lo.ToPtr(fmt.Sprintf("TD%d", driverNo)),
		TeamName:     lo.ToPtr("Test Racing"),
		CountryCode:  lo.ToPtr("NED"),
	}
}

// SampleLaps returns count laps of driver 1 with increasing lap numbers.
func SampleLaps(count int) []*model.Lap {
	ret := make([]*model.Lap, 0, count)
	for i := 0; i < count; i++ {
		ret = append(ret, &model.Lap{
			SessionKey:      SessionKey,
			MeetingKey:      lo.ToPtr(MeetingKey),
			DriverNumber:    1,
			LapNumber:       i + 1,
			DateStart:       lo.ToPtr(TestTime().Add(time.Duration(i) * 95 * time.Second)),
			LapDuration:     lo.ToPtr(95.213),
			DurationSector1: lo.ToPtr(30.123),
			DurationSector2: lo.ToPtr(32.045),
			DurationSector3: lo.ToPtr(33.045),
			I1Speed:         lo.ToPtr(292),
			I2Speed:         lo.ToPtr(315),
			StSpeed:         lo.ToPtr(301),
			StintNumber:     lo.ToPtr(1),
			IsPitOutLap:     lo.ToPtr(false),
		})
	}
	return ret
}

// SamplePositions returns count position changes of driver 1 with
// increasing dates.
func SamplePositions(count int) []*model.Position {
	ret := make([]*model.Position, 0, count)
	for i := 0; i < count; i++ {
		ret = append(ret, &model.Position{
			SessionKey:   SessionKey,
			MeetingKey:   lo.ToPtr(MeetingKey),
			DriverNumber: 1,
			Date:         TestTime().Add(time.Duration(i) * time.Minute),
			Position:     1 + i%20,
		})
	}
	return ret
}

// RawSession is the sample session as delivered by the upstream API.
func RawSession() map[string]any {
	return map[string]any{
		"session_key":        int64(SessionKey),
		"session_name":       "Race",
		"session_type":       "Race",
		"meeting_key":        int64(MeetingKey),
		"location":           "Sakhir",
		"country_key":        int64(36),
		"country_code":       "BRN",
		"country_name":       "Bahrain",
		"circuit_key":        int64(63),
		"circuit_short_name": "Sakhir",
		"date_start":         "2024-03-02T15:00:00Z",
		"date_end":           "2024-03-02T17:00:00Z",
		"gmt_offset":         "03:00:00",
		"year":               int64(2024),
	}
}

func RawDriver(driverNo int) map[string]any {
	return map[string]any{
		"session_key":   int64(SessionKey),
		"meeting_key":   int64(MeetingKey),
		"driver_number": int64(driverNo),
		"full_name":     fmt.Sprintf("Test Driver %d", driverNo),
		"name_acronym":  fmt.Sprintf("TD%d", driverNo),
		"team_name":     "Test Racing",
		"country_code":  "NED",
	}
}

func RawLap(driverNo, lapNo int) map[string]any {
	return map[string]any{
		"session_key":       int64(SessionKey),
		"meeting_key":       int64(MeetingKey),
		"driver_number":     int64(driverNo),
		"lap_number":        int64(lapNo),
		"date_start":        "2024-03-02T15:04:00Z",
		"lap_duration":      95.213,
		"duration_sector_1": 30.123,
		"duration_sector_2": 32.045,
		"duration_sector_3": 33.045,
		"i1_speed":          int64(292),
		"i2_speed":          int64(315),
		"st_speed":          int64(301),
		"segments_sector_1": []any{int64(2049), int64(2049), nil},
		"is_pit_out_lap":    false,
		"stint_number":      int64(1),
	}
}

func RawPosition(driverNo, position int, date string) map[string]any {
	return map[string]any{
		"session_key":   int64(SessionKey),
		"meeting_key":   int64(MeetingKey),
		"driver_number": int64(driverNo),
		"date":          date,
		"position":      int64(position),
	}
}

func RawInterval(driverNo int, gap, interval any, date string) map[string]any {
	return map[string]any{
		"session_key":   int64(SessionKey),
		"meeting_key":   int64(MeetingKey),
		"driver_number": int64(driverNo),
		"date":          date,
		"gap_to_leader": gap,
		"interval":      interval,
	}
}

func RawCarData(driverNo, speed int, date string) map[string]any {
	return map[string]any{
		"session_key":   int64(SessionKey),
		"meeting_key":   int64(MeetingKey),
		"driver_number": int64(driverNo),
		"date":          date,
		"speed":         int64(speed),
		"rpm":           int64(10500),
		"n_gear":        int64(7),
		"throttle":      float64(99),
		"brake":         int64(0),
		"drs":           int64(12),
	}
}

// CreateSampleSession stores the sample session so that dependent test
// entries refer to an existing session.
func CreateSampleSession(db *pgxpool.Pool) *model.Session {
	ctx := context.Background()
	sess := SampleSession()
	writer := docs.NewWriter(db)
	if res := writer.Upsert(ctx, []model.Document{sess}, "session_key"); res.Written == 0 {
		log.Fatalf("createSampleSession: session not stored\n")
	}
	return sess
}
