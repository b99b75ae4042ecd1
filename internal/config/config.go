package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Provider string `mapstructure:"provider" yaml:"provider"`
	Mode     string `mapstructure:"mode" yaml:"mode"`
	OpenAI   struct {
		APIKey      string  `mapstructure:"api_key" yaml:"api_key"`
		Model       string  `mapstructure:"model" yaml:"model"`
		Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
		BaseURL     string  `mapstructure:"base_url" yaml:"base_url"`
	} `mapstructure:"openai" yaml:"openai"`
	UI struct {
		Theme string `mapstructure:"theme" yaml:"theme"`
	} `mapstructure:"ui" yaml:"ui"`
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
		File   string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"log" yaml:"log"`
}

// Options controls where Load looks for settings.
type Options struct {
	// ConfigFile, when set, is the only config file read and must exist.
	ConfigFile string
	// EnvFile is loaded into the process environment first; missing is fine.
	EnvFile string
	// SearchPaths are used when ConfigFile is empty.
	SearchPaths []string
}

func DefaultOptions() Options {
	return Options{
		EnvFile:     ".env",
		SearchPaths: []string{Dir(), "."},
	}
}

// Dir is the per-user configuration directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "assister")
	}
	return filepath.Join(home, ".config", "assister")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", "openai")
	v.SetDefault("mode", "vscode")
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.temperature", 0.4)
	v.SetDefault("openai.base_url", "")
	v.SetDefault("ui.theme", "auto")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
}

// Load merges defaults, the YAML config file, and the environment.
// OPENAI_API_KEY fills openai.api_key; every other key can be overridden
// with ASSISTER_<SECTION>_<KEY>.
func Load(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", opts.EnvFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("assister")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("openai.api_key", "OPENAI_API_KEY", "ASSISTER_OPENAI_API_KEY"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("openai.base_url", "OPENAI_BASE_URL", "ASSISTER_OPENAI_BASE_URL"); err != nil {
		return nil, err
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, p := range opts.SearchPaths {
			v.AddConfigPath(p)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration without touching the
// environment or the filesystem.
func Default() (Config, error) {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode defaults: %w", err)
	}
	return cfg, nil
}

// Masked returns a copy safe to print.
func (c Config) Masked() Config {
	out := c
	out.OpenAI.APIKey = maskKey(c.OpenAI.APIKey)
	return out
}

func maskKey(k string) string {
	switch {
	case k == "":
		return ""
	case len(k) <= 8:
		return "****"
	default:
		return k[:3] + "****" + k[len(k)-4:]
	}
}

func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteDefault writes the default config to path, creating parent
// directories. It refuses to overwrite unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	cfg, err := Default()
	if err != nil {
		return err
	}
	b, err := cfg.YAML()
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
