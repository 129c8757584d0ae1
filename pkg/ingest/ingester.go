package ingest

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/openf1db/openf1-ingest-go/log"
	"github.com/openf1db/openf1-ingest-go/pkg/model"
	"github.com/openf1db/openf1-ingest-go/pkg/openf1"
	"github.com/openf1db/openf1-ingest-go/pkg/repository/docs"
)

const (
	defaultChunkSize      = 5000
	defaultMaxConcurrent  = 5
	progressChunkInterval = 5
)

type (
	// Fetcher retrieves the raw documents of one entity from the
	// upstream API.
	Fetcher interface {
		Fetch(ctx context.Context, entity string, filters ...string) (
			[]map[string]any, error)
	}
	// DocWriter stores validated documents in the document store.
	DocWriter interface {
		Insert(ctx context.Context, documents []model.Document) docs.Result
		Upsert(ctx context.Context, documents []model.Document, key string) docs.Result
	}

	Option func(*Ingester)

	// Ingester pulls entity data from the upstream API, validates it and
	// stores it collection by collection.
	Ingester struct {
		fetcher       Fetcher
		writer        DocWriter
		chunkSize     int
		maxConcurrent int
		log           *log.Logger
	}

	// Tally sums up the outcome of one ingested entity.
	Tally struct {
		Entity     string
		Fetched    int
		Valid      int
		Invalid    int
		Written    int
		Duplicates int
	}

	// convertFunc turns one raw upstream item into a storable document.
	convertFunc[E model.Document] func(raw map[string]any) (E, error)

	// entityJob describes one single-fetch entity ingestion.
	entityJob[E model.Document] struct {
		collection string
		entity     string
		conv       convertFunc[E]
		filters    []string
		progress   bool
	}
)

var (
	_ Fetcher   = (*openf1.Client)(nil)
	_ DocWriter = (*docs.Writer)(nil)
)

func NewIngester(fetcher Fetcher, writer DocWriter, opts ...Option) *Ingester {
	ret := &Ingester{
		fetcher:       fetcher,
		writer:        writer,
		chunkSize:     defaultChunkSize,
		maxConcurrent: defaultMaxConcurrent,
		log:           log.Default().Named("ingest"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// WithChunkSize sets the number of documents per write chunk.
func WithChunkSize(size int) Option {
	return func(i *Ingester) {
		if size > 0 {
			i.chunkSize = size
		}
	}
}

// WithMaxConcurrent bounds the concurrent drivers of the telemetry fan-out.
func WithMaxConcurrent(limit int) Option {
	return func(i *Ingester) {
		if limit > 0 {
			i.maxConcurrent = limit
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(i *Ingester) {
		i.log = logger
	}
}

func (t *Tally) merge(other Tally) {
	t.Fetched += other.Fetched
	t.Valid += other.Valid
	t.Invalid += other.Invalid
	t.Written += other.Written
	t.Duplicates += other.Duplicates
}

func sessionFilter(sessionKey int) string {
	return fmt.Sprintf("session_key=%d", sessionKey)
}

func driverFilter(driverNo int) string {
	return fmt.Sprintf("driver_number=%d", driverNo)
}

// convertAll validates raw items, reporting failures to the sink.
func convertAll[E model.Document](
	raw []map[string]any,
	conv convertFunc[E],
	sink *errorSink,
) []E {
	ret := make([]E, 0, len(raw))
	for i := range raw {
		doc, err := conv(raw[i])
		if err != nil {
			sink.record(err)
			continue
		}
		ret = append(ret, doc)
	}
	return ret
}

// ingestEntity is the common shape of all single-fetch entities: one
// upstream fetch, per item validation, chunked writes with the remainder
// flushed exactly once. Fetch errors leave the entity at zero records,
// the run continues.
func ingestEntity[E model.Document](
	ctx context.Context,
	i *Ingester,
	job entityJob[E],
) Tally {
	ret := Tally{Entity: job.collection}
	logger := i.log.Named(job.collection)
	raw, err := i.fetcher.Fetch(ctx, job.entity, job.filters...)
	if err != nil {
		logger.Error("could not fetch entity", log.ErrorField(err))
		return ret
	}
	ret.Fetched = len(raw)
	sink := newErrorSink(logger, job.collection)
	valid := convertAll(raw, job.conv, sink)
	ret.Valid = len(valid)
	ret.Invalid = sink.errors()
	documents := lo.Map(valid, func(item E, _ int) model.Document { return item })
	i.storeChunks(ctx, &ret, documents, logger, job.progress)
	logger.Info("entity ingested",
		log.Int("fetched", ret.Fetched),
		log.Int("valid", ret.Valid),
		log.Int("invalid", ret.Invalid),
		log.Int("written", ret.Written),
		log.Int("duplicates", ret.Duplicates))
	return ret
}

// storeChunks writes the documents in chunks of chunkSize. lo.Chunk hands
// out the remainder as the last (possibly only) chunk.
func (i *Ingester) storeChunks(
	ctx context.Context,
	t *Tally,
	documents []model.Document,
	logger *log.Logger,
	progress bool,
) {
	for no, chunk := range lo.Chunk(documents, i.chunkSize) {
		if ctx.Err() != nil {
			logger.Warn("aborting remaining chunks", log.ErrorField(ctx.Err()))
			return
		}
		res := i.writer.Insert(ctx, chunk)
		t.Written += res.Written
		t.Duplicates += res.Duplicates
		if progress && (no+1)%progressChunkInterval == 0 {
			logger.Info("chunks stored",
				log.Int("chunks", no+1),
				log.Int("written", t.Written))
		}
	}
}
