package model

import "time"

const (
	CollectionSessions    = "sessions"
	CollectionDrivers     = "drivers"
	CollectionLaps        = "laps"
	CollectionPositions   = "positions"
	CollectionIntervals   = "intervals"
	CollectionCarData     = "car_data"
	CollectionWeather     = "weather"
	CollectionRaceControl = "race_control"
	CollectionPitStops    = "pit_stops"
	CollectionTeamRadio   = "team_radio"
)

// Collections lists all known collections in ingestion order.
var Collections = []string{
	CollectionSessions,
	CollectionDrivers,
	CollectionLaps,
	CollectionPositions,
	CollectionIntervals,
	CollectionCarData,
	CollectionWeather,
	CollectionRaceControl,
	CollectionPitStops,
	CollectionTeamRadio,
}

type (
	// Key holds the columns extracted from a document for indexing.
	// SessionKey is present on every document, the others depend on
	// the collection.
	Key struct {
		SessionKey   int
		DriverNumber *int
		LapNumber    *int
		Date         *time.Time
	}

	// Document is implemented by all record types that can be stored
	// in a collection.
	Document interface {
		Collection() string
		Key() Key
	}
)
