package model

import "time"

type (
	// Position describes the classification of a driver at a point
	// in time.
	Position struct {
		SessionKey   int       `json:"session_key"`
		MeetingKey   *int      `json:"meeting_key"`
		DriverNumber int       `json:"driver_number"`
		Date         time.Time `json:"date"`
		Position     int       `json:"position"`
	}

	// Interval describes the gap of a driver to the leader and to the
	// car ahead at a point in time.
	Interval struct {
		SessionKey   int       `json:"session_key"`
		MeetingKey   *int      `json:"meeting_key"`
		DriverNumber int       `json:"driver_number"`
		Date         time.Time `json:"date"`
		GapToLeader  GapValue  `json:"gap_to_leader"`
		Interval     GapValue  `json:"interval"`
	}
)

func (p *Position) Collection() string {
	return CollectionPositions
}

func (p *Position) Key() Key {
	return Key{SessionKey: p.SessionKey, DriverNumber: &p.DriverNumber, Date: &p.Date}
}

func (i *Interval) Collection() string {
	return CollectionIntervals
}

func (i *Interval) Key() Key {
	return Key{SessionKey: i.SessionKey, DriverNumber: &i.DriverNumber, Date: &i.Date}
}
