package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/docmcquery/mcquery-tui/internal/model"
)

type Config struct {
	API       APIConfig        `mapstructure:"api"`
	UI        UIConfig         `mapstructure:"ui"`
	Auth      AuthConfig       `mapstructure:"auth"`
	Log       LogConfig        `mapstructure:"log"`
	Hospitals []model.Hospital `mapstructure:"hospitals"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type UIConfig struct {
	ToastDuration time.Duration `mapstructure:"toast_duration"`
	Browser       string        `mapstructure:"browser"`
}

type AuthConfig struct {
	Password   string        `mapstructure:"password"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// DefaultHospitals is used when the config file lists none.
var DefaultHospitals = []model.Hospital{
	{Value: "general", Label: "General Hospital"},
	{Value: "st-marys", Label: "St. Mary's Medical Center"},
	{Value: "riverside", Label: "Riverside Health"},
	{Value: "university", Label: "University Medical Center"},
}

// Load reads configuration from the optional file at path, MCQUERY_*
// environment variables and defaults, in increasing order of precedence
// for env over file.
func Load(path string) (*Config, error) {
	v := viper.New()
	return LoadWith(v, path)
}

// LoadWith is Load on a caller-provided viper instance, so command-line
// flags bound to v take part in resolution.
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	v.SetEnvPrefix("MCQUERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api.base_url", "http://localhost:5001")
	v.SetDefault("api.timeout", 60*time.Second)
	v.SetDefault("ui.toast_duration", 4*time.Second)
	v.SetDefault("ui.browser", "")
	v.SetDefault("auth.password", "query")
	v.SetDefault("auth.session_ttl", 8*time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(os.TempDir(), "mcquery", "mcquery.log"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if len(cfg.Hospitals) == 0 {
		cfg.Hospitals = append([]model.Hospital(nil), DefaultHospitals...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if c.Auth.Password == "" {
		return fmt.Errorf("auth.password is required")
	}
	seen := make(map[string]bool, len(c.Hospitals))
	for _, h := range c.Hospitals {
		if h.Value == "" || h.Label == "" {
			return fmt.Errorf("hospital entries need both value and label")
		}
		if seen[h.Value] {
			return fmt.Errorf("duplicate hospital value %q", h.Value)
		}
		seen[h.Value] = true
	}
	return nil
}

// Hospital looks up a configured hospital by value.
func (c Config) Hospital(value string) *model.Hospital {
	return model.FindOption(c.Hospitals, value)
}
