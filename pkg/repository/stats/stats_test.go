//nolint:funlen,errcheck // ok for this test code
package stats

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/samber/lo"
	"github.com/stephenafamo/bob"
	"gotest.tools/v3/assert"

	"github.com/openf1db/openf1-ingest-go/pkg/model"
	"github.com/openf1db/openf1-ingest-go/pkg/repository/docs"
	"github.com/openf1db/openf1-ingest-go/testsupport/basedata"
	"github.com/openf1db/openf1-ingest-go/testsupport/testdb"
)

func TestCollectionCounts(t *testing.T) {
	pool := testdb.InitTestDb()
	db := bob.NewDB(stdlib.OpenDBFromPool(pool))
	r := NewRepository(db)
	writer := docs.NewWriter(pool)
	ctx := context.Background()

	basedata.CreateSampleSession(pool)
	writer.Insert(ctx, lo.Map(basedata.SampleLaps(3),
		func(item *model.Lap, _ int) model.Document { return item }))
	writer.Insert(ctx, lo.Map(basedata.SamplePositions(2),
		func(item *model.Position, _ int) model.Document { return item }))
	// an entry of another session must not show up in filtered counts
	writer.Insert(ctx, []model.Document{&model.Position{
		SessionKey:   7001,
		DriverNumber: 1,
		Date:         basedata.TestTime(),
		Position:     3,
	}})

	tests := []struct {
		name       string
		sessionKey int
		want       map[string]int64
	}{
		{
			name:       "all sessions",
			sessionKey: 0,
			want:       map[string]int64{"sessions": 1, "laps": 3, "positions": 3},
		},
		{
			name:       "filtered by session",
			sessionKey: basedata.SessionKey,
			want:       map[string]int64{"sessions": 1, "laps": 3, "positions": 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts, err := r.CollectionCounts(ctx, tt.sessionKey)
			assert.NilError(t, err)
			assert.Equal(t, len(counts), len(model.Collections))
			byName := lo.SliceToMap(counts,
				func(c CollectionCount) (string, int64) {
					return c.Collection, c.Documents
				})
			for collection, num := range tt.want {
				assert.Equal(t, byName[collection], num)
			}
			assert.Equal(t, byName["weather"], int64(0))
		})
	}
}
