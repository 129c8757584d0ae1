package stats

import (
	"context"
	"fmt"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/scan"

	"github.com/openf1db/openf1-ingest-go/pkg/model"
)

type (
	// Repository reads document counts back from the store.
	Repository struct {
		conn bob.Executor
	}
	// CollectionCount holds the number of stored documents of one collection.
	CollectionCount struct {
		Collection string
		Documents  int64
	}
	countRow struct {
		Documents int64
	}
)

func NewRepository(conn bob.Executor) *Repository {
	return &Repository{conn: conn}
}

// CollectionCounts returns the number of stored documents per collection in
// ingestion order. A sessionKey > 0 restricts the counts to that session.
// Collection names are taken from model.Collections, never from user input.
func (r *Repository) CollectionCounts(
	ctx context.Context,
	sessionKey int,
) ([]CollectionCount, error) {
	ret := make([]CollectionCount, 0, len(model.Collections))
	for _, c := range model.Collections {
		count, err := r.countDocuments(ctx, c, sessionKey)
		if err != nil {
			return nil, err
		}
		ret = append(ret, CollectionCount{Collection: c, Documents: count})
	}
	return ret, nil
}

//nolint:whitespace // can't make both editor and linter happy
func (r *Repository) countDocuments(
	ctx context.Context,
	collection string,
	sessionKey int,
) (int64, error) {
	var q bob.Query
	if sessionKey > 0 {
		q = psql.RawQuery(
			fmt.Sprintf(`select count(*) as documents from %s where session_key = ?`,
				collection),
			psql.Arg(sessionKey))
	} else {
		q = psql.RawQuery(
			fmt.Sprintf(`select count(*) as documents from %s`, collection))
	}
	res, err := bob.One(ctx, r.conn, q, scan.StructMapper[countRow]())
	if err != nil {
		return 0, err
	}
	return res.Documents, nil
}
