// Package appconf reads the server and CLI configuration from defaults, an
// optional config file, EDUDASH_* environment variables and bound flags.
package appconf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"edudash.insights.org/internal/logging"
)

// Config holds every setting the application reads at start up.
type Config struct {
	Port        int
	Env         Environment
	ApiKeys     []string
	RateLimit   int
	DatasetPath string
	Verbose     bool
	LogLevel    string
	LogFormat   string
	// Missing is the pipeline missing-value policy: "skip" or "fail".
	Missing        string
	MetricsEnabled bool
}

// Config keys. Nested keys map to EDUDASH_<SECTION>_<KEY> in the environment.
const (
	KeyPort           = "port"
	KeyEnv            = "env"
	KeyApiKeys        = "api_keys"
	KeyRateLimit      = "rate_limit"
	KeyDatasetPath    = "dataset.path"
	KeyDatasetVerbose = "dataset.verbose"
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
	KeyMissing        = "pipeline.missing"
	KeyMetricsEnabled = "metrics.enabled"
)

const EnvPrefix = "EDUDASH"

var ErrInvalidConfig = errors.New("invalid configuration")

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyPort, 4000)
	v.SetDefault(KeyEnv, "development")
	v.SetDefault(KeyApiKeys, []string{"test"})
	v.SetDefault(KeyRateLimit, 100)
	v.SetDefault(KeyDatasetPath, "final_dataset.csv")
	v.SetDefault(KeyDatasetVerbose, false)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "json")
	v.SetDefault(KeyMissing, "skip")
	v.SetDefault(KeyMetricsEnabled, true)
}

// NewViper returns a viper instance with defaults and environment binding in
// place. When configFile is empty an edudash.yaml in the working directory or
// ./configs is read if present.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
		return v, nil
	}

	v.SetConfigName("edudash")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs/")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load reads a validated Config out of v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:           v.GetInt(KeyPort),
		Env:            EnvFlagToEnvironment(v.GetString(KeyEnv)),
		ApiKeys:        splitList(v.GetStringSlice(KeyApiKeys)),
		RateLimit:      v.GetInt(KeyRateLimit),
		DatasetPath:    strings.TrimSpace(v.GetString(KeyDatasetPath)),
		Verbose:        v.GetBool(KeyDatasetVerbose),
		LogLevel:       v.GetString(KeyLogLevel),
		LogFormat:      strings.ToLower(strings.TrimSpace(v.GetString(KeyLogFormat))),
		Missing:        strings.ToLower(strings.TrimSpace(v.GetString(KeyMissing))),
		MetricsEnabled: v.GetBool(KeyMetricsEnabled),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var problems []string

	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("port %d out of range", c.Port))
	}
	if c.DatasetPath == "" {
		problems = append(problems, "dataset.path is empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		problems = append(problems, fmt.Sprintf("log.format %q is not json or text", c.LogFormat))
	}
	if c.Missing != "skip" && c.Missing != "fail" {
		problems = append(problems, fmt.Sprintf("pipeline.missing %q is not skip or fail", c.Missing))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// splitList accepts both list values and comma separated strings, the form
// keys take when they come from the environment.
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
