package model

import "time"

type (
	// Weather holds the track conditions at a point in time.
	Weather struct {
		SessionKey       int       `json:"session_key"`
		Date             time.Time `json:"date"`
		AirTemperature   *float64  `json:"air_temperature"`
		Humidity         *float64  `json:"humidity"`
		Pressure         *float64  `json:"pressure"`
		Rainfall         *int      `json:"rainfall"`
		TrackTemperature *float64  `json:"track_temperature"`
		WindDirection    *int      `json:"wind_direction"`
		WindSpeed        *float64  `json:"wind_speed"`
	}

	// RaceControl holds a message issued by race control (flags,
	// incident notes, safety car).
	RaceControl struct {
		SessionKey   int       `json:"session_key"`
		Date         time.Time `json:"date"`
		LapNumber    *int      `json:"lap_number"`
		Message      string    `json:"message"`
		Flag         *string   `json:"flag"`
		Scope        *string   `json:"scope"`
		Sector       *int      `json:"sector"`
		DriverNumber *int      `json:"driver_number"`
	}

	// PitStop holds the data of a single pit stop.
	PitStop struct {
		SessionKey   int       `json:"session_key"`
		DriverNumber int       `json:"driver_number"`
		Date         time.Time `json:"date"`
		LapNumber    int       `json:"lap_number"`
		PitDuration  *float64  `json:"pit_duration"`
	}

	// TeamRadio holds a link to a radio exchange recording.
	TeamRadio struct {
		SessionKey   int       `json:"session_key"`
		DriverNumber int       `json:"driver_number"`
		Date         time.Time `json:"date"`
		RecordingURL string    `json:"recording_url"`
	}
)

func (w *Weather) Collection() string {
	return CollectionWeather
}

func (w *Weather) Key() Key {
	return Key{SessionKey: w.SessionKey, Date: &w.Date}
}

func (r *RaceControl) Collection() string {
	return CollectionRaceControl
}

func (r *RaceControl) Key() Key {
	return Key{SessionKey: r.SessionKey, DriverNumber: r.DriverNumber, Date: &r.Date}
}

func (p *PitStop) Collection() string {
	return CollectionPitStops
}

func (p *PitStop) Key() Key {
	return Key{
		SessionKey:   p.SessionKey,
		DriverNumber: &p.DriverNumber,
		LapNumber:    &p.LapNumber,
		Date:         &p.Date,
	}
}

func (t *TeamRadio) Collection() string {
	return CollectionTeamRadio
}

func (t *TeamRadio) Key() Key {
	return Key{SessionKey: t.SessionKey, DriverNumber: &t.DriverNumber, Date: &t.Date}
}
