package model

// Driver describes a session entry of a driver.
type Driver struct {
	SessionKey    int     `json:"session_key"`
	MeetingKey    *int    `json:"meeting_key"`
	DriverNumber  int     `json:"driver_number"`
	BroadcastName *string `json:"broadcast_name"`
	CountryCode   *string `json:"country_code"`
	FirstName     *string `json:"first_name"`
	FullName      *string `json:"full_name"`
	LastName      *string `json:"last_name"`
	TeamColour    *string `json:"team_colour"`
	TeamName      *string `json:"team_name"`
	NameAcronym   *string `json:"name_acronym"`
	HeadshotURL   *string `json:"headshot_url"`
}

func (d *Driver) Collection() string {
	return CollectionDrivers
}

func (d *Driver) Key() Key {
	return Key{SessionKey: d.SessionKey, DriverNumber: &d.DriverNumber}
}
