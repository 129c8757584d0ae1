package ingest

import (
	"context"
	"sync"

	"github.com/samber/lo"

	"github.com/openf1db/openf1-ingest-go/log"
	"github.com/openf1db/openf1-ingest-go/pkg/convert"
	"github.com/openf1db/openf1-ingest-go/pkg/model"
	"github.com/openf1db/openf1-ingest-go/pkg/openf1"
)

// speedRanges partition the telemetry by speed so that no single request
// exceeds the upstream response size limit. The four ranges are disjoint
// and cover every possible speed value.
var speedRanges = []string{
	"speed=0",
	"speed>=1&speed<150",
	"speed>=150&speed<350",
	"speed>=350",
}

// CarData ingests the car telemetry samples of a session. The entity is
// too large for a single request, so it fans out: one unit of work per
// driver, four speed range fetches within each unit. Driver units run
// concurrently up to maxConcurrent, the ranges of one driver stay
// sequential.
func (i *Ingester) CarData(ctx context.Context, sessionKey int) Tally {
	ret := Tally{Entity: model.CollectionCarData}
	logger := i.log.Named(model.CollectionCarData)
	raw, err := i.fetcher.Fetch(ctx, openf1.EntityDrivers, sessionFilter(sessionKey))
	if err != nil {
		logger.Error("could not fetch driver list", log.ErrorField(err))
		return ret
	}
	driverNumbers := collectDriverNumbers(raw)
	if len(driverNumbers) == 0 {
		logger.Warn("no drivers found, skipping car telemetry")
		return ret
	}
	logger.Info("fetching car telemetry",
		log.Int("drivers", len(driverNumbers)),
		log.Int("workers", i.maxConcurrent))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	sink := newErrorSink(logger, model.CollectionCarData)
	sem := make(chan struct{}, i.maxConcurrent)
	for _, no := range driverNumbers {
		wg.Add(1)
		go func(driverNo int) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()
			part := i.driverTelemetry(ctx, logger, sessionKey, driverNo, sink)
			mu.Lock()
			ret.merge(part)
			mu.Unlock()
		}(no)
	}
	wg.Wait()
	ret.Invalid = sink.errors()
	logger.Info("entity ingested",
		log.Int("fetched", ret.Fetched),
		log.Int("valid", ret.Valid),
		log.Int("invalid", ret.Invalid),
		log.Int("written", ret.Written),
		log.Int("duplicates", ret.Duplicates))
	return ret
}

// driverTelemetry fetches and stores the four speed ranges of one driver.
// A failed range leaves the other ranges usable, upstream answers 422
// when a partition is still too large.
func (i *Ingester) driverTelemetry(
	ctx context.Context,
	logger *log.Logger,
	sessionKey, driverNo int,
	sink *errorSink,
) Tally {
	var ret Tally
	for _, speedRange := range speedRanges {
		raw, err := i.fetcher.Fetch(ctx, openf1.EntityCarData,
			sessionFilter(sessionKey), driverFilter(driverNo), speedRange)
		if err != nil {
			logger.Debug("telemetry range unavailable",
				log.Int("driver", driverNo),
				log.String("range", speedRange),
				log.ErrorField(err))
			continue
		}
		if len(raw) == 0 {
			continue
		}
		ret.Fetched += len(raw)
		valid := convertAll(raw, convert.ConvertCarData, sink)
		ret.Valid += len(valid)
		documents := lo.Map(valid,
			func(item *model.CarData, _ int) model.Document { return item })
		i.storeChunks(ctx, &ret, documents, logger, false)
	}
	if ret.Fetched == 0 {
		logger.Debug("no telemetry for driver", log.Int("driver", driverNo))
	}
	return ret
}

// collectDriverNumbers extracts the driver numbers from raw driver
// documents, items without one are skipped.
func collectDriverNumbers(raw []map[string]any) []int {
	return lo.FilterMap(raw, func(item map[string]any, _ int) (int, bool) {
		switch v := item["driver_number"].(type) {
		case int64:
			return int(v), true
		case float64:
			return int(v), true
		default:
			return 0, false
		}
	})
}
