//nolint:funlen,errcheck // ok for this test code
package docs_test

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"

	"github.com/openf1db/openf1-ingest-go/pkg/model"
	"github.com/openf1db/openf1-ingest-go/pkg/repository/docs"
	"github.com/openf1db/openf1-ingest-go/testsupport/basedata"
	"github.com/openf1db/openf1-ingest-go/testsupport/testdb"
)

func toDocs[E model.Document](items []E) []model.Document {
	return lo.Map(items, func(item E, _ int) model.Document { return item })
}

func TestWriterInsert(t *testing.T) {
	pool := testdb.InitTestDb()
	w := docs.NewWriter(pool)
	ctx := context.Background()
	basedata.CreateSampleSession(pool)

	positions := basedata.SamplePositions(3)
	res := w.Insert(ctx, toDocs(positions))
	assert.Equal(t, docs.Result{Written: 3}, res)

	// overlapping write: 3 known, 2 new
	res = w.Insert(ctx, toDocs(basedata.SamplePositions(5)))
	assert.Equal(t, docs.Result{Written: 2, Duplicates: 3}, res)

	var count int
	pool.QueryRow(ctx,
		"select count(*) from positions where session_key=$1",
		basedata.SessionKey).Scan(&count)
	assert.Equal(t, 5, count)
}

func TestWriterInsertEmpty(t *testing.T) {
	w := docs.NewWriter(nil)
	res := w.Insert(context.Background(), []model.Document{})
	assert.Equal(t, docs.Result{}, res)
}

func TestWriterInsertPayload(t *testing.T) {
	pool := testdb.InitTestDb()
	w := docs.NewWriter(pool)
	ctx := context.Background()
	basedata.CreateSampleSession(pool)

	laps := basedata.SampleLaps(1)
	res := w.Insert(ctx, toDocs(laps))
	assert.Equal(t, docs.Result{Written: 1}, res)

	var lapDuration float64
	err := pool.QueryRow(ctx,
		"select (data->>'lap_duration')::float from laps where session_key=$1 and driver_number=$2 and lap_number=$3",
		basedata.SessionKey, 1, 1).Scan(&lapDuration)
	assert.NoError(t, err)
	assert.Equal(t, *laps[0].LapDuration, lapDuration)
}

func TestWriterUpsert(t *testing.T) {
	pool := testdb.InitTestDb()
	w := docs.NewWriter(pool)
	ctx := context.Background()

	sess := basedata.SampleSession()
	res := w.Upsert(ctx, []model.Document{sess}, "session_key")
	assert.Equal(t, docs.Result{Written: 1}, res)

	// same identity with changed payload replaces the entry
	sess.SessionName = "Sprint"
	res = w.Upsert(ctx, []model.Document{sess}, "session_key")
	assert.Equal(t, docs.Result{Written: 1}, res)

	var name string
	var count int
	pool.QueryRow(ctx,
		"select data->>'session_name' from sessions where session_key=$1",
		basedata.SessionKey).Scan(&name)
	pool.QueryRow(ctx, "select count(*) from sessions").Scan(&count)
	assert.Equal(t, "Sprint", name)
	assert.Equal(t, 1, count)
}

func TestWriterInsertAborted(t *testing.T) {
	pool := testdb.InitTestDb()
	w := docs.NewWriter(pool)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := w.Insert(ctx, toDocs(basedata.SamplePositions(2)))
	assert.Equal(t, docs.Result{}, res)

	var count int
	pool.QueryRow(context.Background(), "select count(*) from positions").Scan(&count)
	assert.Equal(t, 0, count)
}
