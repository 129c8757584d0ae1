package ingest

import (
	"context"

	"github.com/openf1db/openf1-ingest-go/pkg/convert"
	"github.com/openf1db/openf1-ingest-go/pkg/model"
	"github.com/openf1db/openf1-ingest-go/pkg/openf1"
)

func (i *Ingester) Drivers(ctx context.Context, sessionKey int) Tally {
	return ingestEntity(ctx, i, entityJob[*model.Driver]{
		collection: model.CollectionDrivers,
		entity:     openf1.EntityDrivers,
		conv:       convert.ConvertDriver,
		filters:    []string{sessionFilter(sessionKey)},
	})
}

func (i *Ingester) Laps(ctx context.Context, sessionKey int) Tally {
	return ingestEntity(ctx, i, entityJob[*model.Lap]{
		collection: model.CollectionLaps,
		entity:     openf1.EntityLaps,
		conv:       convert.ConvertLap,
		filters:    []string{sessionFilter(sessionKey)},
	})
}

func (i *Ingester) Positions(ctx context.Context, sessionKey int) Tally {
	return ingestEntity(ctx, i, entityJob[*model.Position]{
		collection: model.CollectionPositions,
		entity:     openf1.EntityPosition,
		conv:       convert.ConvertPosition,
		filters:    []string{sessionFilter(sessionKey)},
	})
}

// Intervals is the most voluminous single-fetch entity, progress is
// logged while the chunks are written.
func (i *Ingester) Intervals(ctx context.Context, sessionKey int) Tally {
	return ingestEntity(ctx, i, entityJob[*model.Interval]{
		collection: model.CollectionIntervals,
		entity:     openf1.EntityIntervals,
		conv:       convert.ConvertInterval,
		filters:    []string{sessionFilter(sessionKey)},
		progress:   true,
	})
}

func (i *Ingester) Weather(ctx context.Context, sessionKey int) Tally {
	return ingestEntity(ctx, i, entityJob[*model.Weather]{
		collection: model.CollectionWeather,
		entity:     openf1.EntityWeather,
		conv:       convert.ConvertWeather,
		filters:    []string{sessionFilter(sessionKey)},
	})
}

func (i *Ingester) RaceControl(ctx context.Context, sessionKey int) Tally {
	return ingestEntity(ctx, i, entityJob[*model.RaceControl]{
		collection: model.CollectionRaceControl,
		entity:     openf1.EntityRaceControl,
		conv:       convert.ConvertRaceControl,
		filters:    []string{sessionFilter(sessionKey)},
	})
}

func (i *Ingester) PitStops(ctx context.Context, sessionKey int) Tally {
	return ingestEntity(ctx, i, entityJob[*model.PitStop]{
		collection: model.CollectionPitStops,
		entity:     openf1.EntityPit,
		conv:       convert.ConvertPitStop,
		filters:    []string{sessionFilter(sessionKey)},
	})
}

func (i *Ingester) TeamRadio(ctx context.Context, sessionKey int) Tally {
	return ingestEntity(ctx, i, entityJob[*model.TeamRadio]{
		collection: model.CollectionTeamRadio,
		entity:     openf1.EntityTeamRadio,
		conv:       convert.ConvertTeamRadio,
		filters:    []string{sessionFilter(sessionKey)},
	})
}
