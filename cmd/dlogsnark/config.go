package main

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envPrefix prefixes every environment variable read by the CLI.
const envPrefix = "DLOGSNARK"

// Config is the CLI configuration.
type Config struct {
	LogLevel  string `mapstructure:"log_level" json:"log_level"`
	LogPretty bool   `mapstructure:"log_pretty" json:"log_pretty"`
	Seed      string `mapstructure:"seed" json:"seed"`
}

// newViper creates a viper instance with defaults and environment bindings.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)
	v.SetDefault("seed", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// bindFlags binds every flag in fs to the key of the same name,
// with dashes replaced by underscores.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		err = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
	return err
}

// GetConfig reads the configuration.
// If path is empty, dlogsnark.json is looked up in the working directory,
// and a missing file is not an error.
func GetConfig(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("dlogsnark")
		v.SetConfigType("json")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	return &cfg, nil
}

// setupLogger configures the global logger, writing to w.
func setupLogger(cfg *Config, w io.Writer) error {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "parse log level %q", cfg.LogLevel)
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogPretty {
		w = zerolog.ConsoleWriter{Out: w}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return nil
}

// parseSeed parses comma-separated 32-bit words, e.g. "0,0,1".
func parseSeed(s string) ([]uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	words := strings.Split(s, ",")
	seed := make([]uint32, len(words))
	for i, w := range words {
		x, err := strconv.ParseUint(strings.TrimSpace(w), 0, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "parse seed word %d", i)
		}
		seed[i] = uint32(x)
	}
	return seed, nil
}

// readArg returns s, or the trimmed contents of the file if s is @path.
func readArg(s string) (string, error) {
	path, ok := strings.CutPrefix(s, "@")
	if !ok {
		return s, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}
	return strings.TrimSpace(string(b)), nil
}
