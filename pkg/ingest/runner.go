package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/openf1db/openf1-ingest-go/log"
	"github.com/openf1db/openf1-ingest-go/pkg/model"
	"github.com/openf1db/openf1-ingest-go/pkg/repository"
	"github.com/openf1db/openf1-ingest-go/pkg/repository/runs"
	"github.com/openf1db/openf1-ingest-go/pkg/repository/stats"
)

var (
	tracer = otel.Tracer("openf1-ingest")
	meter  = otel.Meter("openf1-ingest")
)

type (
	RunnerOption func(*Runner)

	// StageSelection enables or disables the optional pipeline stages.
	// Sessions, drivers, laps and positions always run.
	StageSelection struct {
		Intervals   bool
		CarData     bool
		Weather     bool
		RaceControl bool
		PitStops    bool
		TeamRadio   bool
	}

	// Runner orchestrates one complete session ingestion in a fixed
	// order. The stages run strictly sequential, the only concurrency
	// is the telemetry fan-out inside the car_data stage.
	Runner struct {
		ingester    *Ingester
		conn        repository.Querier
		stats       *stats.Repository
		log         *log.Logger
		year        int
		sessionType string
		stages      StageSelection

		documentsWritten metric.Int64Counter
		stageDuration    metric.Float64Histogram
	}

	stage struct {
		collection string
		enabled    bool
		run        func(ctx context.Context) Tally
	}
)

func AllStages() StageSelection {
	return StageSelection{
		Intervals:   true,
		CarData:     true,
		Weather:     true,
		RaceControl: true,
		PitStops:    true,
		TeamRadio:   true,
	}
}

func WithYear(year int) RunnerOption {
	return func(r *Runner) {
		if year > 0 {
			r.year = year
		}
	}
}

func WithSessionType(sessionType string) RunnerOption {
	return func(r *Runner) {
		if sessionType != "" {
			r.sessionType = sessionType
		}
	}
}

func WithStageSelection(sel StageSelection) RunnerOption {
	return func(r *Runner) {
		r.stages = sel
	}
}

// WithStatsRepository enables the document count read back of the final
// summary.
func WithStatsRepository(repo *stats.Repository) RunnerOption {
	return func(r *Runner) {
		r.stats = repo
	}
}

func WithRunnerLogger(logger *log.Logger) RunnerOption {
	return func(r *Runner) {
		r.log = logger
	}
}

// NewRunner creates a session ingestion runner. conn is used for the run
// bookkeeping and may be nil, in which case no ingest_runs record is
// written.
func NewRunner(
	ingester *Ingester,
	conn repository.Querier,
	opts ...RunnerOption,
) *Runner {
	ret := &Runner{
		ingester:    ingester,
		conn:        conn,
		log:         log.Default().Named("ingest"),
		year:        time.Now().Year(),
		sessionType: "Race",
		stages:      AllStages(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	ret.documentsWritten, _ = meter.Int64Counter("ingest_documents",
		metric.WithDescription("documents written per collection"))
	ret.stageDuration, _ = meter.Float64Histogram("ingest_stage",
		metric.WithDescription("duration of one ingest stage"),
		metric.WithUnit("s"))
	return ret
}

// Run ingests the most recent session matching the configured year and
// session type. Only session discovery is fatal, failures of individual
// stages are absorbed and show up as zero counts.
func (r *Runner) Run(ctx context.Context) error {
	runCtx, span := tracer.Start(ctx, "ingest session")
	defer span.End()

	r.log.Info("starting ingest",
		log.Int("year", r.year),
		log.String("sessionType", r.sessionType))
	sess, err := r.ingester.DiscoverSession(runCtx, r.year, r.sessionType)
	if err != nil {
		r.log.Error("session discovery failed",
			log.Int("year", r.year),
			log.String("sessionType", r.sessionType),
			log.ErrorField(err))
		return err
	}
	span.SetAttributes([]attribute.KeyValue{
		attribute.Int("sessionKey", sess.SessionKey),
		attribute.Int("year", r.year),
		attribute.String("sessionType", r.sessionType),
	}...)

	var ingestRun *runs.Run
	if r.conn != nil {
		if ingestRun, err = runs.Create(runCtx, r.conn, sess.SessionKey); err != nil {
			r.log.Warn("could not record ingest run", log.ErrorField(err))
		}
	}

	stages := []stage{
		{collection: model.CollectionSessions, enabled: true,
			run: func(ctx context.Context) Tally {
				return r.ingester.StoreSession(ctx, sess)
			}},
		{collection: model.CollectionDrivers, enabled: true,
			run: func(ctx context.Context) Tally {
				return r.ingester.Drivers(ctx, sess.SessionKey)
			}},
		{collection: model.CollectionLaps, enabled: true,
			run: func(ctx context.Context) Tally {
				return r.ingester.Laps(ctx, sess.SessionKey)
			}},
		{collection: model.CollectionPositions, enabled: true,
			run: func(ctx context.Context) Tally {
				return r.ingester.Positions(ctx, sess.SessionKey)
			}},
		{collection: model.CollectionIntervals, enabled: r.stages.Intervals,
			run: func(ctx context.Context) Tally {
				return r.ingester.Intervals(ctx, sess.SessionKey)
			}},
		{collection: model.CollectionCarData, enabled: r.stages.CarData,
			run: func(ctx context.Context) Tally {
				return r.ingester.CarData(ctx, sess.SessionKey)
			}},
		{collection: model.CollectionWeather, enabled: r.stages.Weather,
			run: func(ctx context.Context) Tally {
				return r.ingester.Weather(ctx, sess.SessionKey)
			}},
		{collection: model.CollectionRaceControl, enabled: r.stages.RaceControl,
			run: func(ctx context.Context) Tally {
				return r.ingester.RaceControl(ctx, sess.SessionKey)
			}},
		{collection: model.CollectionPitStops, enabled: r.stages.PitStops,
			run: func(ctx context.Context) Tally {
				return r.ingester.PitStops(ctx, sess.SessionKey)
			}},
		{collection: model.CollectionTeamRadio, enabled: r.stages.TeamRadio,
			run: func(ctx context.Context) Tally {
				return r.ingester.TeamRadio(ctx, sess.SessionKey)
			}},
	}

	tallies := make([]Tally, 0, len(stages))
	for _, s := range stages {
		if !s.enabled {
			r.log.Debug("stage disabled", log.String("collection", s.collection))
			continue
		}
		if runCtx.Err() != nil {
			r.log.Warn("run canceled, skipping remaining stages",
				log.ErrorField(runCtx.Err()))
			break
		}
		tallies = append(tallies, r.runStage(runCtx, s))
	}

	r.finishRun(runCtx, ingestRun, tallies)
	r.logSummary(runCtx, sess.SessionKey, tallies)
	return nil
}

func (r *Runner) runStage(ctx context.Context, s stage) Tally {
	stageCtx, span := tracer.Start(ctx, fmt.Sprintf("ingest %s", s.collection))
	defer span.End()
	start := time.Now()
	ret := s.run(stageCtx)
	r.stageDuration.Record(stageCtx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("collection", s.collection)))
	r.documentsWritten.Add(stageCtx, int64(ret.Written),
		metric.WithAttributes(attribute.String("collection", s.collection)))
	span.SetAttributes([]attribute.KeyValue{
		attribute.Int("fetched", ret.Fetched),
		attribute.Int("invalid", ret.Invalid),
		attribute.Int("written", ret.Written),
		attribute.Int("duplicates", ret.Duplicates),
	}...)
	return ret
}

// finishRun completes the bookkeeping record even when the run context
// was canceled in between.
func (r *Runner) finishRun(ctx context.Context, ingestRun *runs.Run, tallies []Tally) {
	if ingestRun == nil {
		return
	}
	counts := lo.SliceToMap(tallies, func(t Tally) (string, int) {
		return t.Entity, t.Written
	})
	finishCtx := context.WithoutCancel(ctx)
	if err := runs.Finish(finishCtx, r.conn, ingestRun.ID, counts); err != nil {
		r.log.Warn("could not finish ingest run", log.ErrorField(err))
	}
}

func (r *Runner) logSummary(ctx context.Context, sessionKey int, tallies []Tally) {
	fields := make([]log.Field, 0, len(tallies)+2)
	fields = append(fields, log.Int("sessionKey", sessionKey))
	for _, t := range tallies {
		fields = append(fields, log.Int(t.Entity, t.Written))
	}
	fields = append(fields,
		log.Int("total", lo.SumBy(tallies, func(t Tally) int { return t.Written })))
	r.log.Info("ingest finished", fields...)

	if r.stats == nil {
		return
	}
	counts, err := r.stats.CollectionCounts(ctx, sessionKey)
	if err != nil {
		r.log.Warn("could not read back document counts", log.ErrorField(err))
		return
	}
	countFields := lo.Map(counts, func(c stats.CollectionCount, _ int) log.Field {
		return log.Int64(c.Collection, c.Documents)
	})
	r.log.Info("session documents in store", countFields...)
}
