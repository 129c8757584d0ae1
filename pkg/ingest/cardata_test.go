//nolint:funlen // ok for tests
package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openf1db/openf1-ingest-go/pkg/model"
	"github.com/openf1db/openf1-ingest-go/pkg/openf1"
	"github.com/openf1db/openf1-ingest-go/testsupport/basedata"
)

func driverListKey() string {
	return requestKey(openf1.EntityDrivers, sessionFilter(basedata.SessionKey))
}

func telemetryKey(driverNo int, speedRange string) string {
	return requestKey(openf1.EntityCarData,
		sessionFilter(basedata.SessionKey), driverFilter(driverNo), speedRange)
}

func TestCarDataFanOut(t *testing.T) {
	responses := map[string][]map[string]any{
		driverListKey(): {
			basedata.RawDriver(1), basedata.RawDriver(16), basedata.RawDriver(81),
		},
		telemetryKey(1, "speed=0"): {
			basedata.RawCarData(1, 0, "2024-03-02T15:20:01Z"),
		},
		telemetryKey(1, "speed>=1&speed<150"): {
			basedata.RawCarData(1, 80, "2024-03-02T15:20:02Z"),
			basedata.RawCarData(1, 120, "2024-03-02T15:20:03Z"),
		},
		telemetryKey(16, "speed>=150&speed<350"): {
			basedata.RawCarData(16, 301, "2024-03-02T15:20:01Z"),
		},
	}
	fetcher := &fakeFetcher{responses: responses}
	writer := newFakeWriter()
	i := NewIngester(fetcher, writer, WithMaxConcurrent(2))

	got := i.CarData(context.Background(), basedata.SessionKey)
	want := Tally{Entity: model.CollectionCarData, Fetched: 4, Valid: 4, Written: 4}
	assert.Equal(t, want, got)
	// one driver list call plus four ranges per driver
	assert.Len(t, fetcher.calls, 1+3*len(speedRanges))
	for _, speedRange := range speedRanges {
		assert.Equal(t, 1, fetcher.called(telemetryKey(81, speedRange)))
	}
}

func TestCarDataConcurrencyBound(t *testing.T) {
	drivers := make([]map[string]any, 0, 6)
	for no := 1; no <= 6; no++ {
		drivers = append(drivers, basedata.RawDriver(no))
	}
	fetcher := &fakeFetcher{
		responses: map[string][]map[string]any{driverListKey(): drivers},
		delay:     2 * time.Millisecond,
	}
	i := NewIngester(fetcher, newFakeWriter(), WithMaxConcurrent(2))

	i.CarData(context.Background(), basedata.SessionKey)
	assert.LessOrEqual(t, fetcher.maxParallel, 2)
	assert.Len(t, fetcher.calls, 1+6*len(speedRanges))
}

func TestCarDataRangeFailure(t *testing.T) {
	fetcher := &fakeFetcher{
		responses: map[string][]map[string]any{
			driverListKey(): {basedata.RawDriver(1)},
			telemetryKey(1, "speed>=350"): {
				basedata.RawCarData(1, 352, "2024-03-02T15:41:09Z"),
			},
		},
		failures: map[string]error{
			telemetryKey(1, "speed=0"): errors.New(
				"fetching car_data: unexpected status 422"),
		},
	}
	writer := newFakeWriter()
	i := NewIngester(fetcher, writer)

	// the failed range is skipped, the others still land
	got := i.CarData(context.Background(), basedata.SessionKey)
	want := Tally{Entity: model.CollectionCarData, Fetched: 1, Valid: 1, Written: 1}
	assert.Equal(t, want, got)
}

func TestCarDataNoDrivers(t *testing.T) {
	fetcher := &fakeFetcher{}
	i := NewIngester(fetcher, newFakeWriter())

	got := i.CarData(context.Background(), basedata.SessionKey)
	assert.Equal(t, Tally{Entity: model.CollectionCarData}, got)
	assert.Len(t, fetcher.calls, 1)
}

func TestCarDataSkipsDriversWithoutNumber(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string][]map[string]any{
		driverListKey(): {
			basedata.RawDriver(1),
			{"session_key": int64(basedata.SessionKey), "full_name": "No Number"},
		},
	}}
	i := NewIngester(fetcher, newFakeWriter())

	i.CarData(context.Background(), basedata.SessionKey)
	assert.Len(t, fetcher.calls, 1+len(speedRanges))
}

func TestCollectDriverNumbers(t *testing.T) {
	got := collectDriverNumbers([]map[string]any{
		{"driver_number": int64(1)},
		{"driver_number": float64(16)},
		{"full_name": "No Number"},
		{"driver_number": "44"},
	})
	assert.Equal(t, []int{1, 16}, got)
}
