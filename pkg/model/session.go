package model

import "time"

// Session describes a single session (practice, qualifying, race) of
// a meeting. All attributes are mandatory in the upstream feed.
type Session struct {
	SessionKey       int       `json:"session_key"`
	SessionName      string    `json:"session_name"`
	SessionType      string    `json:"session_type"`
	MeetingKey       int       `json:"meeting_key"`
	Location         string    `json:"location"`
	CountryKey       int       `json:"country_key"`
	CountryCode      string    `json:"country_code"`
	CountryName      string    `json:"country_name"`
	CircuitKey       int       `json:"circuit_key"`
	CircuitShortName string    `json:"circuit_short_name"`
	DateStart        time.Time `json:"date_start"`
	DateEnd          time.Time `json:"date_end"`
	GmtOffset        string    `json:"gmt_offset"`
	Year             int       `json:"year"`
}

func (s *Session) Collection() string {
	return CollectionSessions
}

func (s *Session) Key() Key {
	return Key{SessionKey: s.SessionKey, Date: &s.DateStart}
}
