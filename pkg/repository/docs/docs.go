package docs

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/openf1db/openf1-ingest-go/log"
	"github.com/openf1db/openf1-ingest-go/pkg/model"
	"github.com/openf1db/openf1-ingest-go/pkg/repository"
)

// error messages of failed writes are cut off at this length
const maxErrorLen = 200

type (
	// Result describes the outcome of a write call.
	Result struct {
		Written    int
		Duplicates int
	}

	Option func(*Writer)

	// Writer stores documents in their collection table. Write calls
	// do not return errors. Failures are logged and reported as zero
	// written documents, duplicates are skipped and counted.
	Writer struct {
		conn repository.Querier
		log  *log.Logger
	}
)

func WithLogger(logger *log.Logger) Option {
	return func(w *Writer) {
		w.log = logger
	}
}

func NewWriter(conn repository.Querier, opts ...Option) *Writer {
	ret := &Writer{
		conn: conn,
		log:  log.Default().Named("db.docs"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Insert writes documents into their collection. Documents whose
// identity already exists are skipped. All documents of one call must
// belong to the same collection.
func (w *Writer) Insert(ctx context.Context, documents []model.Document) Result {
	if len(documents) == 0 {
		return Result{}
	}
	collection := documents[0].Collection()
	sql := fmt.Sprintf(`
	insert into %s (session_key, driver_number, lap_number, date, data)
	values ($1,$2,$3,$4,$5)
	on conflict do nothing
	`, collection)

	batch := &pgx.Batch{}
	for _, doc := range documents {
		key := doc.Key()
		batch.Queue(sql, key.SessionKey, key.DriverNumber, key.LapNumber, key.Date, doc)
	}
	written, ok := w.sendBatch(ctx, collection, batch)
	if !ok {
		return Result{}
	}

	duplicates := len(documents) - written
	if duplicates > 0 {
		w.log.Debug("skipped duplicates",
			log.Int("num", duplicates),
			log.String("collection", collection))
	}
	w.log.Info("stored documents",
		log.Int("num", written),
		log.String("collection", collection))
	return Result{Written: written, Duplicates: duplicates}
}

// Upsert writes documents into their collection replacing existing
// entries with the same value in the key column. The result counts
// inserted and modified documents.
func (w *Writer) Upsert(ctx context.Context, documents []model.Document, key string) Result {
	if len(documents) == 0 {
		return Result{}
	}
	collection := documents[0].Collection()
	sql := fmt.Sprintf(`
	insert into %s (session_key, driver_number, lap_number, date, data)
	values ($1,$2,$3,$4,$5)
	on conflict (%s) do update set
		driver_number=excluded.driver_number,
		lap_number=excluded.lap_number,
		date=excluded.date,
		data=excluded.data
	`, collection, key)

	batch := &pgx.Batch{}
	for _, doc := range documents {
		docKey := doc.Key()
		batch.Queue(sql,
			docKey.SessionKey, docKey.DriverNumber, docKey.LapNumber, docKey.Date, doc)
	}
	written, ok := w.sendBatch(ctx, collection, batch)
	if !ok {
		return Result{}
	}

	w.log.Info("stored documents",
		log.Int("num", written),
		log.String("collection", collection))
	return Result{Written: written}
}

// sendBatch executes the batch and sums up the affected rows. On
// error the batch is aborted and nothing is kept since all statements
// run in a single implicit transaction.
func (w *Writer) sendBatch(
	ctx context.Context,
	collection string,
	batch *pgx.Batch,
) (int, bool) {
	br := w.conn.SendBatch(ctx, batch)
	written := 0
	for i := 0; i < batch.Len(); i++ {
		tag, err := br.Exec()
		if err != nil {
			_ = br.Close()
			w.logWriteError(collection, err)
			return 0, false
		}
		written += int(tag.RowsAffected())
	}
	if err := br.Close(); err != nil {
		w.logWriteError(collection, err)
		return 0, false
	}
	return written, true
}

func (w *Writer) logWriteError(collection string, err error) {
	msg := err.Error()
	if len(msg) > maxErrorLen {
		msg = msg[:maxErrorLen] + "... (truncated)"
	}
	w.log.Error("could not store documents",
		log.String("collection", collection),
		log.String("error", msg))
}
