package convert

import (
	"github.com/openf1db/openf1-ingest-go/pkg/model"
)

func ConvertSession(raw map[string]any) (*model.Session, error) {
	f := newFields(raw)
	ret := &model.Session{
		SessionKey:       f.reqInt("session_key"),
		SessionName:      f.reqString("session_name"),
		SessionType:      f.reqString("session_type"),
		MeetingKey:       f.reqInt("meeting_key"),
		Location:         f.reqString("location"),
		CountryKey:       f.reqInt("country_key"),
		CountryCode:      f.reqString("country_code"),
		CountryName:      f.reqString("country_name"),
		CircuitKey:       f.reqInt("circuit_key"),
		CircuitShortName: f.reqString("circuit_short_name"),
		DateStart:        f.reqTime("date_start"),
		DateEnd:          f.reqTime("date_end"),
		GmtOffset:        f.reqString("gmt_offset"),
		Year:             f.reqInt("year"),
	}
	if f.err != nil {
		return nil, f.err
	}
	return ret, nil
}

func ConvertDriver(raw map[string]any) (*model.Driver, error) {
	f := newFields(raw)
	ret := &model.Driver{
		SessionKey:    f.reqInt("session_key"),
		MeetingKey:    f.optInt("meeting_key"),
		DriverNumber:  f.reqInt("driver_number"),
		BroadcastName: f.optString("broadcast_name"),
		CountryCode:   f.optString("country_code"),
		FirstName:     f.optString("first_name"),
		FullName:      f.optString("full_name"),
		LastName:      f.optString("last_name"),
		TeamColour:    f.optString("team_colour"),
		TeamName:      f.optString("team_name"),
		NameAcronym:   f.optString("name_acronym"),
		HeadshotURL:   f.optString("headshot_url"),
	}
	if f.err != nil {
		return nil, f.err
	}
	return ret, nil
}
