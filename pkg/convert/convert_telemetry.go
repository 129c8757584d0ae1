package convert

import (
	"github.com/openf1db/openf1-ingest-go/pkg/model"
)

func ConvertCarData(raw map[string]any) (*model.CarData, error) {
	f := newFields(raw)
	ret := &model.CarData{
		SessionKey:   f.reqInt("session_key"),
		MeetingKey:   f.optInt("meeting_key"),
		DriverNumber: f.reqInt("driver_number"),
		Date:         f.reqTime("date"),
		RPM:          f.optInt("rpm"),
		Speed:        f.optInt("speed"),
		NGear:        f.optInt("n_gear"),
		Throttle:     f.optFloat("throttle"),
		Brake:        f.optInt("brake"),
		DRS:          f.optInt("drs"),
	}
	if f.err != nil {
		return nil, f.err
	}
	return ret, nil
}
