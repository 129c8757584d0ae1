//nolint:funlen // ok for tests
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openf1db/openf1-ingest-go/pkg/model"
	"github.com/openf1db/openf1-ingest-go/pkg/openf1"
	"github.com/openf1db/openf1-ingest-go/pkg/repository/docs"
	"github.com/openf1db/openf1-ingest-go/testsupport/basedata"
)

// fakeFetcher serves canned responses keyed by "entity?filters". Keys
// without an entry yield an empty result.
type fakeFetcher struct {
	mu          sync.Mutex
	responses   map[string][]map[string]any
	failures    map[string]error
	calls       []string
	delay       time.Duration
	parallel    int
	maxParallel int
}

func requestKey(entity string, filters ...string) string {
	if len(filters) == 0 {
		return entity
	}
	return entity + "?" + strings.Join(filters, "&")
}

func (f *fakeFetcher) Fetch(
	_ context.Context,
	entity string,
	filters ...string,
) ([]map[string]any, error) {
	key := requestKey(entity, filters...)
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.parallel++
	if f.parallel > f.maxParallel {
		f.maxParallel = f.parallel
	}
	f.mu.Unlock()
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	f.parallel--
	f.mu.Unlock()
	if err, ok := f.failures[key]; ok {
		return nil, err
	}
	return f.responses[key], nil
}

func (f *fakeFetcher) called(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	ret := 0
	for _, call := range f.calls {
		if call == key {
			ret++
		}
	}
	return ret
}

// fakeWriter keeps document identities in memory, re-inserted
// identities count as duplicates like the real store.
type fakeWriter struct {
	mu           sync.Mutex
	seen         map[string]bool
	chunkSizes   []int
	byCollection map[string]int
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{seen: map[string]bool{}, byCollection: map[string]int{}}
}

func identity(doc model.Document) string {
	key := doc.Key()
	ret := fmt.Sprintf("%s|%d", doc.Collection(), key.SessionKey)
	if key.DriverNumber != nil {
		ret += fmt.Sprintf("|d%d", *key.DriverNumber)
	}
	if key.LapNumber != nil {
		ret += fmt.Sprintf("|l%d", *key.LapNumber)
	}
	if key.Date != nil {
		ret += "|" + key.Date.Format(time.RFC3339Nano)
	}
	return ret
}

func (w *fakeWriter) Insert(_ context.Context, documents []model.Document) docs.Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.chunkSizes = append(w.chunkSizes, len(documents))
	var res docs.Result
	for _, doc := range documents {
		id := identity(doc)
		if w.seen[id] {
			res.Duplicates++
			continue
		}
		w.seen[id] = true
		w.byCollection[doc.Collection()]++
		res.Written++
	}
	return res
}

func (w *fakeWriter) Upsert(
	_ context.Context,
	documents []model.Document,
	_ string,
) docs.Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	var res docs.Result
	for _, doc := range documents {
		id := identity(doc)
		if !w.seen[id] {
			w.seen[id] = true
			w.byCollection[doc.Collection()]++
		}
		res.Written++
	}
	return res
}

func (w *fakeWriter) stored(collection string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.byCollection[collection]
}

func rawPositions(count int) []map[string]any {
	ret := make([]map[string]any, 0, count)
	for i := 0; i < count; i++ {
		ret = append(ret, basedata.RawPosition(1, i%20+1,
			basedata.TestTime().Add(time.Duration(i)*time.Second).Format(time.RFC3339)))
	}
	return ret
}

func TestIngestChunkedWrites(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string][]map[string]any{
		requestKey(openf1.EntityPosition, sessionFilter(basedata.SessionKey)): rawPositions(12),
	}}
	writer := newFakeWriter()
	i := NewIngester(fetcher, writer, WithChunkSize(5))

	got := i.Positions(context.Background(), basedata.SessionKey)
	want := Tally{Entity: model.CollectionPositions, Fetched: 12, Valid: 12, Written: 12}
	assert.Equal(t, want, got)
	// remainder lands in exactly one final chunk
	assert.Equal(t, []int{5, 5, 2}, writer.chunkSizes)
}

func TestIngestInvalidRecords(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string][]map[string]any{
		requestKey(openf1.EntityDrivers, sessionFilter(basedata.SessionKey)): {
			basedata.RawDriver(1),
			{"session_key": int64(basedata.SessionKey)},
			basedata.RawDriver(16),
			{"session_key": int64(basedata.SessionKey), "driver_number": "44"},
			basedata.RawDriver(81),
		},
	}}
	writer := newFakeWriter()
	i := NewIngester(fetcher, writer)

	got := i.Drivers(context.Background(), basedata.SessionKey)
	want := Tally{
		Entity: model.CollectionDrivers, Fetched: 5, Valid: 3, Invalid: 2, Written: 3,
	}
	assert.Equal(t, want, got)
}

func TestIngestFetchError(t *testing.T) {
	fetcher := &fakeFetcher{failures: map[string]error{
		requestKey(openf1.EntityWeather, sessionFilter(basedata.SessionKey)): errors.New(
			"fetching weather: unexpected status 503"),
	}}
	writer := newFakeWriter()
	i := NewIngester(fetcher, writer)

	got := i.Weather(context.Background(), basedata.SessionKey)
	assert.Equal(t, Tally{Entity: model.CollectionWeather}, got)
	assert.Empty(t, writer.chunkSizes)
}

func TestIngestRerunCountsDuplicates(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string][]map[string]any{
		requestKey(openf1.EntityPosition, sessionFilter(basedata.SessionKey)): rawPositions(3),
	}}
	writer := newFakeWriter()
	i := NewIngester(fetcher, writer)
	ctx := context.Background()

	first := i.Positions(ctx, basedata.SessionKey)
	assert.Equal(t, 3, first.Written)

	second := i.Positions(ctx, basedata.SessionKey)
	want := Tally{
		Entity: model.CollectionPositions, Fetched: 3, Valid: 3, Duplicates: 3,
	}
	assert.Equal(t, want, second)
	assert.Equal(t, 3, writer.stored(model.CollectionPositions))
}

func TestIngestAbortsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fetcher := &fakeFetcher{responses: map[string][]map[string]any{
		requestKey(openf1.EntityPosition, sessionFilter(basedata.SessionKey)): rawPositions(3),
	}}
	writer := newFakeWriter()
	i := NewIngester(fetcher, writer)

	got := i.Positions(ctx, basedata.SessionKey)
	assert.Equal(t, 0, got.Written)
	assert.Empty(t, writer.chunkSizes)
}
