package ingest

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // by design
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pgx-contrib/pgxtrace"
	"github.com/spf13/cobra"
	"github.com/stephenafamo/bob"
	otlpruntime "go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/openf1db/openf1-ingest-go/log"
	"github.com/openf1db/openf1-ingest-go/pkg/config"
	"github.com/openf1db/openf1-ingest-go/pkg/db/postgres"
	"github.com/openf1db/openf1-ingest-go/pkg/ingest"
	"github.com/openf1db/openf1-ingest-go/pkg/openf1"
	"github.com/openf1db/openf1-ingest-go/pkg/repository/docs"
	"github.com/openf1db/openf1-ingest-go/pkg/repository/stats"
	"github.com/openf1db/openf1-ingest-go/pkg/utils"
)

//nolint:funlen // by design
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "ingests the most recent race session from the OpenF1 API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest()
		},
	}
	cmd.Flags().IntVar(&config.Year,
		"year",
		time.Now().Year(),
		"season in which the session is looked up")
	cmd.Flags().StringVar(&config.SessionType,
		"session-type",
		"Race",
		"session type to ingest")
	cmd.Flags().IntVar(&config.BatchSize,
		"batch-size",
		5000,
		"documents per database write")
	cmd.Flags().IntVar(&config.MaxConcurrent,
		"max-concurrent",
		5,
		"concurrent drivers for the telemetry fetch")
	cmd.Flags().StringVar(&config.APITimeout,
		"api-timeout",
		"2m",
		"timeout for upstream API requests")
	cmd.Flags().BoolVar(&config.WithIntervals,
		"with-intervals",
		true,
		"ingest interval data")
	cmd.Flags().BoolVar(&config.WithCarData,
		"with-car-data",
		true,
		"ingest car telemetry data")
	cmd.Flags().BoolVar(&config.WithWeather,
		"with-weather",
		true,
		"ingest weather data")
	cmd.Flags().BoolVar(&config.WithRaceControl,
		"with-race-control",
		true,
		"ingest race control messages")
	cmd.Flags().BoolVar(&config.WithPitStops,
		"with-pit-stops",
		true,
		"ingest pit stop data")
	cmd.Flags().BoolVar(&config.WithTeamRadio,
		"with-team-radio",
		true,
		"ingest team radio messages")
	cmd.Flags().StringVar(&config.LogLevel,
		"log-level",
		"info",
		"controls the log level (debug, info, warn, error, fatal)")
	cmd.Flags().StringVar(&config.SQLLogLevel,
		"sql-log-level",
		"debug",
		"controls the log level for sql methods")
	cmd.Flags().StringVar(&config.LogFormat,
		"log-format",
		"json",
		"controls the log output format")
	cmd.Flags().StringVar(&config.LogConfig,
		"log-config",
		"",
		"log config file with namespace filter rules")
	cmd.Flags().BoolVar(&config.EnableTelemetry,
		"enable-telemetry",
		false,
		"enables telemetry")
	cmd.Flags().StringVar(&config.TelemetryEndpoint,
		"telemetry-endpoint",
		"localhost:4317",
		"Endpoint that receives open telemetry data")
	cmd.Flags().IntVar(&config.ProfilingPort,
		"profiling-port",
		0,
		"port to use for providing profiling data")
	return cmd
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

//nolint:funlen,cyclop // by design
func runIngest() error {
	var logger *log.Logger
	var sqlLogger *log.Logger
	var telemetry *config.Telemetry

	logLevel := config.LogLevel
	filterRules := ""
	if config.LogConfig != "" {
		logCfg, err := log.LoadConfig(config.LogConfig)
		if err != nil {
			fmt.Fprintln(os.Stderr, "could not read log config:", err)
		} else {
			if logCfg.DefaultLevel != "" {
				logLevel = logCfg.DefaultLevel
			}
			filterRules = logCfg.Filters
		}
	}

	switch config.LogFormat {
	case "json":
		logger = log.New(
			os.Stderr,
			parseLogLevel(logLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
		sqlLogger = log.New(
			os.Stderr,
			parseLogLevel(config.SQLLogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))

	default:
		logger = log.DevLogger(
			os.Stderr,
			parseLogLevel(logLevel, log.DebugLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))

		sqlLogger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.SQLLogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	if filterRules != "" {
		filterOpt, err := log.WithFilters(filterRules)
		if err != nil {
			fmt.Fprintln(os.Stderr, "could not parse log filters:", err)
		} else {
			logger = logger.WithOptions(filterOpt)
		}
	}

	log.ResetDefault(logger)

	log.Debug("Config:",
		log.String("api", config.APIBaseURL),
		log.String("db", config.DB),
		log.Int("year", config.Year),
		log.String("sessionType", config.SessionType),
	)

	if config.ProfilingPort > 0 {
		log.Info("Starting profiling server on port", log.Int("port", config.ProfilingPort))
		go func() {
			//nolint:gosec // by design
			err := http.ListenAndServe(
				fmt.Sprintf("localhost:%d", config.ProfilingPort),
				nil)
			if err != nil {
				log.Error("Profiling server stopped", log.ErrorField(err))
			}
		}()
	}

	waitForRequiredServices()

	pgTracer := pgxtrace.CompositeQueryTracer{
		postgres.NewMyTracer(sqlLogger, log.DebugLevel),
	}

	if config.EnableTelemetry {
		logger.Info("Enabling telemetry")
		var err error
		if telemetry, err = config.SetupTelemetry(context.Background()); err == nil {
			pgTracer = append(pgTracer, postgres.NewOtlpTracer())
		} else {
			logger.Warn("Could not setup telemetry", log.ErrorField(err))
		}
		err = otlpruntime.Start(otlpruntime.WithMinimumReadMemStatsInterval(time.Second))
		if err != nil {
			logger.Warn("Could not start runtime metrics", log.ErrorField(err))
		}
	}

	pgOptions := []postgres.PoolConfigOption{
		postgres.WithTracer(pgTracer),
	}
	log.Info("Starting ingest")
	pool := postgres.InitWithUrl(
		config.DB,
		pgOptions...,
	)
	defer pool.Close()

	apiTimeout, err := time.ParseDuration(config.APITimeout)
	if err != nil {
		log.Warn("Invalid api timeout. Setting default 2m", log.ErrorField(err))
		apiTimeout = 2 * time.Minute
	}
	client := openf1.NewClient(
		openf1.WithBaseURL(config.APIBaseURL),
		openf1.WithTimeout(apiTimeout),
	)
	ingester := ingest.NewIngester(client, docs.NewWriter(pool),
		ingest.WithChunkSize(config.BatchSize),
		ingest.WithMaxConcurrent(config.MaxConcurrent),
	)
	statsRepo := stats.NewRepository(bob.NewDB(stdlib.OpenDBFromPool(pool)))
	runner := ingest.NewRunner(ingester, pool,
		ingest.WithYear(config.Year),
		ingest.WithSessionType(config.SessionType),
		ingest.WithStageSelection(ingest.StageSelection{
			Intervals:   config.WithIntervals,
			CarData:     config.WithCarData,
			Weather:     config.WithWeather,
			RaceControl: config.WithRaceControl,
			PitStops:    config.WithPitStops,
			TeamRadio:   config.WithTeamRadio,
		}),
		ingest.WithStatsRepository(statsRepo),
	)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = runner.Run(ctx)
	if telemetry != nil {
		telemetry.Shutdown()
	}
	if err != nil {
		return err
	}
	log.Info("Ingest terminated")
	return nil
}

func waitForRequiredServices() {
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = 60 * time.Second
	}

	wg := sync.WaitGroup{}
	checkTcp := func(addr string) {
		if err = utils.WaitForTCP(addr, timeout); err != nil {
			log.Fatal("required services not ready", log.ErrorField(err))
		}
		wg.Done()
	}
	checkHttp := func(url string) {
		if err = utils.WaitForHTTPResponse(url, timeout); err != nil {
			log.Fatal("required services not ready", log.ErrorField(err))
		}
		wg.Done()
	}
	if postgresAddr := utils.ExtractFromDBURL(config.DB); postgresAddr != "" {
		wg.Add(1)
		go checkTcp(postgresAddr)
	}
	if config.APIBaseURL != "" {
		wg.Add(1)
		go checkHttp(config.APIBaseURL)
	}
	log.Debug("Waiting for connection checks to return")
	wg.Wait()
	log.Debug("Required services are available")
}
