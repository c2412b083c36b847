// Package settings resolves mcqgen's configuration from flags, MCQGEN_*
// environment variables, the settings file and defaults, in that order.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/mcqgen/internal/events"
	"github.com/abhisek/mcqgen/internal/llm"
	"github.com/abhisek/mcqgen/internal/mcq"
)

// EnvPrefix prefixes every environment override, e.g. MCQGEN_PROVIDER.
const EnvPrefix = "MCQGEN"

// Setting keys. Flags use the same names with dashes.
const (
	KeyProvider = "provider"
	KeyModel    = "model"
	KeyBaseURL  = "base_url"
	KeyLogFile  = "log_file"
	KeyLogLevel = "log_level"
	KeyEventsDB = "events_db"
)

// EventsDisabled as the events_db value turns the request ledger off.
const EventsDisabled = "off"

// Settings is the resolved configuration for one run.
type Settings struct {
	Provider string
	Model    string
	BaseURL  string
	LogFile  string
	LogLevel string
	EventsDB string

	// ConfigFile is the settings file that was consulted. It need not exist.
	ConfigFile string
}

// Load resolves settings. flags may be nil; only flags the user actually
// set override lower layers.
func Load(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	logFile, err := defaultLogFile()
	if err != nil {
		return nil, err
	}
	v.SetDefault(KeyProvider, llm.ProviderPerplexity)
	v.SetDefault(KeyModel, "")
	v.SetDefault(KeyBaseURL, "")
	v.SetDefault(KeyLogFile, logFile)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyEventsDB, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range []string{KeyProvider, KeyModel, KeyBaseURL, KeyLogFile, KeyLogLevel, KeyEventsDB} {
			if f := flags.Lookup(flagName(key)); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", f.Name, err)
				}
			}
		}
	}

	configFile, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read settings %s: %w", configFile, err)
	}

	s := &Settings{
		Provider:   v.GetString(KeyProvider),
		Model:      v.GetString(KeyModel),
		BaseURL:    v.GetString(KeyBaseURL),
		LogFile:    v.GetString(KeyLogFile),
		LogLevel:   v.GetString(KeyLogLevel),
		EventsDB:   v.GetString(KeyEventsDB),
		ConfigFile: configFile,
	}
	if s.EventsDB == "" {
		if s.EventsDB, err = events.DefaultDBPath(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// EventsEnabled reports whether the request ledger should be opened.
func (s *Settings) EventsEnabled() bool {
	return s.EventsDB != "" && !strings.EqualFold(s.EventsDB, EventsDisabled)
}

// LLMConfig builds the provider configuration: API keys and endpoints from
// the environment, provider, model and base URL from the settings.
func (s *Settings) LLMConfig() (llm.Config, error) {
	provider, err := llm.NormalizeProvider(s.Provider)
	if err != nil {
		return llm.Config{}, &mcq.ValidationError{Field: "provider", Message: err.Error()}
	}
	cfg := llm.ConfigFromEnv()
	cfg.Provider = provider
	cfg.SetModel(s.Model)
	cfg.SetBaseURL(s.BaseURL)
	return cfg, nil
}

// SaveModel persists the provider choice to the settings file, keeping any
// other keys already there. It returns the path written.
func SaveModel(provider, model, baseURL string) (string, error) {
	p, err := llm.NormalizeProvider(provider)
	if err != nil {
		return "", &mcq.ValidationError{Field: "provider", Message: err.Error()}
	}

	path, err := ConfigPath()
	if err != nil {
		return "", err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("read settings %s: %w", path, err)
	}
	v.Set(KeyProvider, p)
	v.Set(KeyModel, model)
	v.Set(KeyBaseURL, baseURL)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create settings directory: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("write settings %s: %w", path, err)
	}
	return path, nil
}

// ConfigPath resolves the settings file:
// 1. MCQGEN_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/mcqgen/config.yaml
// 3. ~/.config/mcqgen/config.yaml
func ConfigPath() (string, error) {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "mcqgen", "config.yaml"), nil
}

func defaultLogFile() (string, error) {
	dir, err := xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "mcqgen", "mcqgen.log"), nil
}

func xdgDir(env, fallback string) (string, error) {
	if d := os.Getenv(env); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, fallback), nil
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}
