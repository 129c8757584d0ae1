package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
	"moul.io/zapfilter"
)

// Config describes the content of the log config file.
// Filters uses the zapfilter rule syntax, for example
// "debug:ingest.car_data,db.* info:*".
type Config struct {
	DefaultLevel string `yaml:"defaultLevel"`
	Filters      string `yaml:"filters"`
}

func LoadConfig(fn string) (*Config, error) {
	content, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	ret := &Config{}
	if err := yaml.Unmarshal(content, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// WithFilters creates an option that restricts log output to the
// namespaces matched by rules. Loggers using this option should be
// created with DebugLevel since the rules decide what gets through.
func WithFilters(rules string) (Option, error) {
	filter, err := zapfilter.ParseRules(rules)
	if err != nil {
		return nil, err
	}
	return zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapfilter.NewFilteringCore(core, filter)
	}), nil
}
