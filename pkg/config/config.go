package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	DB                 string // connection string for the database
	APIBaseURL         string // base URL of the OpenF1 API
	WaitForServices    string // duration to wait for other services to be ready
	LogLevel           string // sets the log level (zap log level values)
	SQLLogLevel        string // sets the log level for sql subsystem
	LogFormat          string // text vs json
	LogConfig          string // path to log config file
	MigrationSourceUrl string // location of migration files
	EnableTelemetry    bool   // enable telemetry
	TelemetryEndpoint  string // endpoint for telemetry
	ProfilingPort      int    // port for profiling
	Year               int    // season year used for session discovery
	SessionType        string // session type used for session discovery
	SessionKey         int    // session key to filter document counts
	BatchSize          int    // max number of records per database write
	MaxConcurrent      int    // max number of concurrent API requests
	APITimeout         string // timeout for API requests
	WithIntervals      bool   // ingest interval data
	WithCarData        bool   // ingest car telemetry data
	WithWeather        bool   // ingest weather data
	WithRaceControl    bool   // ingest race control messages
	WithPitStops       bool   // ingest pit stop data
	WithTeamRadio      bool   // ingest team radio data
)
