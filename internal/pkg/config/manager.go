package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "github.com/gitsage/aicommit/internal/pkg/errors"
)

const (
	// EnvFileName is the name of the credential file looked up in the home and working directories.
	EnvFileName = ".env"

	// APIKeyEnv is the environment variable holding the Gemini API key.
	APIKeyEnv = "GEMINI_API_KEY"

	// DefaultModel is the default Gemini model.
	DefaultModel = "gemini-2.0-flash"

	// DefaultEndpoint is Gemini's OpenAI-compatible API base URL.
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/openai/"

	// DefaultTimeout bounds the generation request.
	DefaultTimeout = 60 * time.Second

	// DefaultLanguage is the natural language the commit subject is written in.
	DefaultLanguage = "Japanese"

	// TimeoutEnv sets the generation request timeout.
	TimeoutEnv = "AICOMMIT_TIMEOUT"

	timeoutKey = "provider.timeout"
)

// envBindings maps config keys to the environment variables (and .env keys) that set them.
var envBindings = []struct {
	key string
	env string
}{
	{"provider.api_key", APIKeyEnv},
	{"provider.model", "GEMINI_MODEL"},
	{"provider.endpoint", "GEMINI_ENDPOINT"},
	{timeoutKey, TimeoutEnv},
	{"prompt.language", "AICOMMIT_LANGUAGE"},
	{"ui.color_enabled", "AICOMMIT_COLOR"},
	{"log.verbose", "AICOMMIT_VERBOSE"},
}

// EnvManager loads Config using godotenv and Viper.
// Priority: environment > .env file > defaults.
type EnvManager struct {
	v       *viper.Viper
	homeDir string
	workDir string
}

// NewManager creates a manager that searches the user's home directory and
// then the working directory for a .env file.
func NewManager() (*EnvManager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewManagerWithDirs(homeDir, workDir), nil
}

// NewManagerWithDirs creates a manager with explicit search directories.
func NewManagerWithDirs(homeDir, workDir string) *EnvManager {
	v := viper.New()

	setDefaults(v)
	bindEnvVars(v)

	return &EnvManager{
		v:       v,
		homeDir: homeDir,
		workDir: workDir,
	}
}

// bindEnvVars explicitly binds environment variables for all config keys.
func bindEnvVars(v *viper.Viper) {
	for _, b := range envBindings {
		_ = v.BindEnv(b.key, b.env)
	}
}

// setDefaults sets the default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.model", DefaultModel)
	v.SetDefault("provider.endpoint", DefaultEndpoint)
	v.SetDefault(timeoutKey, DefaultTimeout)

	v.SetDefault("prompt.language", DefaultLanguage)

	v.SetDefault("ui.color_enabled", true)

	v.SetDefault("log.verbose", false)
}

// EnvFilePath returns the .env file that Load would read, or "" when there is none.
// A file in the home directory takes precedence over one in the working directory.
func (m *EnvManager) EnvFilePath() string {
	for _, dir := range []string{m.homeDir, m.workDir} {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, EnvFileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load reads the .env file (if any), applies environment overrides and defaults.
// A missing API key is not an error here; the generator reports it when it is needed.
func (m *EnvManager) Load() (*Config, error) {
	envFile := m.EnvFilePath()
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrInvalidConfig,
				fmt.Sprintf("failed to read %s", envFile))
		}
		if err := m.v.MergeConfigMap(fileLayer(values)); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrInvalidConfig, "failed to merge .env values")
		}
	}

	normalizeTimeout(m.v)

	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInvalidConfig, "failed to unmarshal config")
	}
	cfg.EnvFile = envFile
	cfg.Provider.APIKey = strings.TrimSpace(cfg.Provider.APIKey)

	if cfg.Provider.Timeout <= 0 {
		cfg.Provider.Timeout = DefaultTimeout
	}

	return &cfg, nil
}

// normalizeTimeout reads a bare number as seconds ("30" is 30s) and replaces a
// value that is not a duration with the default.
func normalizeTimeout(v *viper.Viper) {
	raw, ok := v.Get(timeoutKey).(string)
	if !ok {
		return
	}
	raw = strings.TrimSpace(raw)

	if secs, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(secs) && !math.IsInf(secs, 0) {
		v.Set(timeoutKey, time.Duration(secs*float64(time.Second)))
		return
	}
	if _, err := time.ParseDuration(raw); err != nil {
		apperrors.Warn("%s=%q is not a duration, using %s", TimeoutEnv, raw, DefaultTimeout)
		v.Set(timeoutKey, DefaultTimeout)
	}
}

// fileLayer converts recognized .env entries into a nested Viper config map.
// Unrecognized keys are ignored.
func fileLayer(values map[string]string) map[string]interface{} {
	layer := make(map[string]interface{})
	for _, b := range envBindings {
		value, ok := values[b.env]
		if !ok {
			continue
		}
		section, name, _ := strings.Cut(b.key, ".")
		sub, ok := layer[section].(map[string]interface{})
		if !ok {
			sub = make(map[string]interface{})
			layer[section] = sub
		}
		sub[name] = value
	}
	return layer
}
