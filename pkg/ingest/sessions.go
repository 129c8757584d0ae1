package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/openf1db/openf1-ingest-go/log"
	"github.com/openf1db/openf1-ingest-go/pkg/convert"
	"github.com/openf1db/openf1-ingest-go/pkg/model"
	"github.com/openf1db/openf1-ingest-go/pkg/openf1"
)

// ErrNoSession is returned when the upstream API has no session matching
// the discovery filters.
var ErrNoSession = errors.New("no matching session")

// DiscoverSession fetches all sessions of the given type and year and
// returns the most recent one by date_start. A fetch error or an empty
// result is fatal for the run.
func (i *Ingester) DiscoverSession(
	ctx context.Context,
	year int,
	sessionType string,
) (*model.Session, error) {
	logger := i.log.Named(model.CollectionSessions)
	raw, err := i.fetcher.Fetch(ctx, openf1.EntitySessions,
		fmt.Sprintf("session_type=%s", sessionType),
		fmt.Sprintf("year=%d", year))
	if err != nil {
		return nil, err
	}
	sink := newErrorSink(logger, model.CollectionSessions)
	sessions := convertAll(raw, convert.ConvertSession, sink)
	if len(sessions) == 0 {
		return nil, ErrNoSession
	}
	ret := lo.MaxBy(sessions, func(a, b *model.Session) bool {
		return a.DateStart.After(b.DateStart)
	})
	logger.Info("session selected",
		log.Int("sessionKey", ret.SessionKey),
		log.String("name", ret.SessionName),
		log.String("location", ret.Location),
		log.Time("start", ret.DateStart))
	return ret, nil
}

// StoreSession upserts the session document keyed by session_key, so a
// re-run refreshes the stored session in place.
func (i *Ingester) StoreSession(ctx context.Context, sess *model.Session) Tally {
	ret := Tally{Entity: model.CollectionSessions, Fetched: 1, Valid: 1}
	res := i.writer.Upsert(ctx, []model.Document{sess}, "session_key")
	ret.Written = res.Written
	ret.Duplicates = res.Duplicates
	return ret
}
