package runs

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/openf1db/openf1-ingest-go/pkg/repository"
)

// Run is the bookkeeping record of one ingestion run.
type Run struct {
	ID         uuid.UUID
	SessionKey int
	Started    time.Time
	Finished   *time.Time
	Counts     map[string]int
}

func Create(ctx context.Context, conn repository.Querier, sessionKey int) (*Run, error) {
	row := conn.QueryRow(ctx, `
	insert into ingest_runs (session_key)
	values ($1)
	returning id, started
	`, sessionKey)
	ret := &Run{SessionKey: sessionKey}
	if err := row.Scan(&ret.ID, &ret.Started); err != nil {
		return nil, err
	}
	return ret, nil
}

// Finish marks the run as done and stores the per collection counts.
func Finish(
	ctx context.Context,
	conn repository.Querier,
	id uuid.UUID,
	counts map[string]int,
) error {
	_, err := conn.Exec(ctx, `
	update ingest_runs set finished=now(), counts=$2 where id=$1
	`, id, counts)
	return err
}

func LoadById(ctx context.Context, conn repository.Querier, id uuid.UUID) (*Run, error) {
	row := conn.QueryRow(ctx, `
	select id, session_key, started, finished, counts from ingest_runs where id=$1
	`, id)
	var run Run
	if err := row.Scan(
		&run.ID, &run.SessionKey, &run.Started, &run.Finished, &run.Counts,
	); err != nil {
		return nil, err
	}
	return &run, nil
}
