package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Content    ContentConfig
	SMTP       SMTPConfig
	Admin      AdminConfig
	Typewriter TypewriterConfig
	Cycler     CyclerConfig
}

// ServerConfig holds HTTP settings. Mode is a gin mode: debug, release or test.
type ServerConfig struct {
	Port string
	Mode string
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// ContentConfig points at an optional portfolio YAML overriding the embedded one.
type ContentConfig struct {
	Path string
}

// SMTPConfig holds contact form mail settings. Mail is disabled unless User
// and Pass are both set.
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

func (s SMTPConfig) Enabled() bool { return s.User != "" && s.Pass != "" }

type AdminConfig struct {
	Username string
	Password string
}

type TypewriterConfig struct {
	TypeInterval   time.Duration `mapstructure:"type_interval"`
	DeleteInterval time.Duration `mapstructure:"delete_interval"`
	Pause          time.Duration
	CursorBlink    time.Duration `mapstructure:"cursor_blink"`
}

type CyclerConfig struct {
	Interval   time.Duration
	StartDelay time.Duration `mapstructure:"start_delay"`
}

// legacyEnv keeps the deployment's existing environment names working.
var legacyEnv = map[string]string{
	"server.port":    "PORT",
	"server.mode":    "GIN_MODE",
	"smtp.host":      "SMTP_HOST",
	"smtp.port":      "SMTP_PORT",
	"smtp.user":      "SMTP_USER",
	"smtp.pass":      "SMTP_PASS",
	"smtp.to":        "TO_EMAIL",
	"admin.username": "ADMIN_USERNAME",
	"admin.password": "ADMIN_PASSWORD",
}

// Load reads configuration from file and env. Env var overrides use prefix
// FOLIO_ (FOLIO_DATABASE_PATH, FOLIO_TYPEWRITER_PAUSE, ...).
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.path", "folio.db")
	v.SetDefault("content.path", "")
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", "587")
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.pass", "")
	v.SetDefault("smtp.to", "")
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "admin123")
	v.SetDefault("typewriter.type_interval", "100ms")
	v.SetDefault("typewriter.delete_interval", "50ms")
	v.SetDefault("typewriter.pause", "2s")
	v.SetDefault("typewriter.cursor_blink", "500ms")
	v.SetDefault("cycler.interval", "2500ms")
	v.SetDefault("cycler.start_delay", "500ms")

	if path := os.Getenv("FOLIO_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("folio")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("FOLIO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, "FOLIO_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.SMTP.To == "" {
		c.SMTP.To = c.SMTP.User
	}
	return c, nil
}
