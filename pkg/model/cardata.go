package model

import "time"

// CarData holds a single telemetry sample of a car. The upstream
// delivers samples at roughly 3.7Hz.
type CarData struct {
	SessionKey   int       `json:"session_key"`
	MeetingKey   *int      `json:"meeting_key"`
	DriverNumber int       `json:"driver_number"`
	Date         time.Time `json:"date"`
	RPM          *int      `json:"rpm"`
	Speed        *int      `json:"speed"`
	NGear        *int      `json:"n_gear"`
	Throttle     *float64  `json:"throttle"`
	Brake        *int      `json:"brake"`
	DRS          *int      `json:"drs"`
}

func (c *CarData) Collection() string {
	return CollectionCarData
}

func (c *CarData) Key() Key {
	return Key{SessionKey: c.SessionKey, DriverNumber: &c.DriverNumber, Date: &c.Date}
}
