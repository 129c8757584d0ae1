package convert

import (
	"github.com/openf1db/openf1-ingest-go/pkg/model"
)

func ConvertWeather(raw map[string]any) (*model.Weather, error) {
	f := newFields(raw)
	ret := &model.Weather{
		SessionKey:       f.reqInt("session_key"),
		Date:             f.reqTime("date"),
		AirTemperature:   f.optFloat("air_temperature"),
		Humidity:         f.optFloat("humidity"),
		Pressure:         f.optFloat("pressure"),
		Rainfall:         f.optInt("rainfall"),
		TrackTemperature: f.optFloat("track_temperature"),
		WindDirection:    f.optInt("wind_direction"),
		WindSpeed:        f.optFloat("wind_speed"),
	}
	if f.err != nil {
		return nil, f.err
	}
	return ret, nil
}

func ConvertRaceControl(raw map[string]any) (*model.RaceControl, error) {
	f := newFields(raw)
	ret := &model.RaceControl{
		SessionKey:   f.reqInt("session_key"),
		Date:         f.reqTime("date"),
		LapNumber:    f.optInt("lap_number"),
		Message:      f.reqString("message"),
		Flag:         f.optString("flag"),
		Scope:        f.optString("scope"),
		Sector:       f.optInt("sector"),
		DriverNumber: f.optInt("driver_number"),
	}
	if f.err != nil {
		return nil, f.err
	}
	return ret, nil
}

func ConvertPitStop(raw map[string]any) (*model.PitStop, error) {
	f := newFields(raw)
	ret := &model.PitStop{
		SessionKey:   f.reqInt("session_key"),
		DriverNumber: f.reqInt("driver_number"),
		Date:         f.reqTime("date"),
		LapNumber:    f.reqInt("lap_number"),
		PitDuration:  f.optFloat("pit_duration"),
	}
	if f.err != nil {
		return nil, f.err
	}
	return ret, nil
}

func ConvertTeamRadio(raw map[string]any) (*model.TeamRadio, error) {
	f := newFields(raw)
	ret := &model.TeamRadio{
		SessionKey:   f.reqInt("session_key"),
		DriverNumber: f.reqInt("driver_number"),
		Date:         f.reqTime("date"),
		RecordingURL: f.reqString("recording_url"),
	}
	if f.err != nil {
		return nil, f.err
	}
	return ret, nil
}
