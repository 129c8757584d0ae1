package model

import "time"

// Lap holds the timing data of a single lap. The segment lists carry
// mini sector states and may contain null entries.
type Lap struct {
	SessionKey      int        `json:"session_key"`
	MeetingKey      *int       `json:"meeting_key"`
	DriverNumber    int        `json:"driver_number"`
	DateStart       *time.Time `json:"date_start"`
	LapNumber       int        `json:"lap_number"`
	LapDuration     *float64   `json:"lap_duration"`
	IsPitOutLap     *bool      `json:"is_pit_out_lap"`
	StintNumber     *int       `json:"stint_number"`
	DurationSector1 *float64   `json:"duration_sector_1"`
	DurationSector2 *float64   `json:"duration_sector_2"`
	DurationSector3 *float64   `json:"duration_sector_3"`
	I1Speed         *int       `json:"i1_speed"`
	I2Speed         *int       `json:"i2_speed"`
	StSpeed         *int       `json:"st_speed"`
	SegmentsSector1 []*int     `json:"segments_sector_1"`
	SegmentsSector2 []*int     `json:"segments_sector_2"`
	SegmentsSector3 []*int     `json:"segments_sector_3"`
	SectorsSector1  *float64   `json:"sectors_sector_1"`
	SectorsSector2  *float64   `json:"sectors_sector_2"`
	SectorsSector3  *float64   `json:"sectors_sector_3"`
}

func (l *Lap) Collection() string {
	return CollectionLaps
}

func (l *Lap) Key() Key {
	return Key{
		SessionKey:   l.SessionKey,
		DriverNumber: &l.DriverNumber,
		LapNumber:    &l.LapNumber,
		Date:         l.DateStart,
	}
}
