package convert

import (
	"github.com/openf1db/openf1-ingest-go/pkg/model"
)

func ConvertLap(raw map[string]any) (*model.Lap, error) {
	f := newFields(raw)
	ret := &model.Lap{
		SessionKey:      f.reqInt("session_key"),
		MeetingKey:      f.optInt("meeting_key"),
		DriverNumber:    f.reqInt("driver_number"),
		DateStart:       f.optTime("date_start"),
		LapNumber:       f.reqInt("lap_number"),
		LapDuration:     f.optFloat("lap_duration"),
		IsPitOutLap:     f.optBool("is_pit_out_lap"),
		StintNumber:     f.optInt("stint_number"),
		DurationSector1: f.optFloat("duration_sector_1"),
		DurationSector2: f.optFloat("duration_sector_2"),
		DurationSector3: f.optFloat("duration_sector_3"),
		I1Speed:         f.optInt("i1_speed"),
		I2Speed:         f.optInt("i2_speed"),
		StSpeed:         f.optInt("st_speed"),
		SegmentsSector1: f.optIntSlice("segments_sector_1"),
		SegmentsSector2: f.optIntSlice("segments_sector_2"),
		SegmentsSector3: f.optIntSlice("segments_sector_3"),
		SectorsSector1:  f.optFloat("sectors_sector_1"),
		SectorsSector2:  f.optFloat("sectors_sector_2"),
		SectorsSector3:  f.optFloat("sectors_sector_3"),
	}
	if f.err != nil {
		return nil, f.err
	}
	return ret, nil
}

func ConvertPosition(raw map[string]any) (*model.Position, error) {
	f := newFields(raw)
	ret := &model.Position{
		SessionKey:   f.reqInt("session_key"),
		MeetingKey:   f.optInt("meeting_key"),
		DriverNumber: f.reqInt("driver_number"),
		Date:         f.reqTime("date"),
		Position:     f.reqInt("position"),
	}
	if f.err != nil {
		return nil, f.err
	}
	return ret, nil
}

func ConvertInterval(raw map[string]any) (*model.Interval, error) {
	f := newFields(raw)
	ret := &model.Interval{
		SessionKey:   f.reqInt("session_key"),
		MeetingKey:   f.optInt("meeting_key"),
		DriverNumber: f.reqInt("driver_number"),
		Date:         f.reqTime("date"),
		GapToLeader:  f.gap("gap_to_leader"),
		Interval:     f.gap("interval"),
	}
	if f.err != nil {
		return nil, f.err
	}
	return ret, nil
}
