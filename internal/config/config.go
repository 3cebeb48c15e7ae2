// Package config carga la configuración del servicio: YAML opcional +
// overrides por variables de entorno + defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath es el YAML que se busca si CONFIG_PATH no está seteado.
const DefaultPath = "configs/config.yaml"

type Config struct {
	App struct {
		// dev | staging | prod
		Env     string `yaml:"app_env"`
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
		Commit  string `yaml:"commit"`
	} `yaml:"app"`

	Server struct {
		Addr               string        `yaml:"addr"`
		CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
		ReadTimeout        time.Duration `yaml:"read_timeout"`
		// WriteTimeout cubre la sesión SMTP completa: no conviene bajarlo.
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"` // debug | info | warn | error
	} `yaml:"log"`

	Metrics struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"metrics"`

	Mail struct {
		// TextAlternative agrega text/plain derivado del HTML.
		TextAlternative bool `yaml:"text_alternative"`
		// InsecureSkipVerify no valida el certificado del relay. Los relays los
		// elige quien llama (muchos con certificados propios), por eso va on.
		InsecureSkipVerify bool `yaml:"insecure_skip_verify"`
	} `yaml:"mail"`
}

// Default devuelve la configuración base, usada también cuando no hay YAML.
func Default() *Config {
	var c Config
	c.App.Env = "dev"
	c.App.Name = "mailgate"
	c.Server.Addr = ":3000"
	c.Server.CORSAllowedOrigins = []string{"*"}
	c.Server.ReadTimeout = 10 * time.Second
	c.Server.WriteTimeout = 2 * time.Minute
	c.Server.ShutdownTimeout = 15 * time.Second
	c.Log.Level = "info"
	c.Metrics.Enabled = true
	c.Mail.InsecureSkipVerify = true
	return &c
}

// Load lee path (si existe) sobre los defaults y aplica los overrides de env.
// Un path vacío o inexistente no es error: quedan defaults + env.
func Load(path string) (*Config, error) {
	c := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, c); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			// sin archivo: defaults + env
		default:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	c.applyEnvOverrides()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// PathFromEnv devuelve CONFIG_PATH o DefaultPath.
func PathFromEnv() string {
	if v, ok := getEnvStr("CONFIG_PATH"); ok {
		return v
	}
	return DefaultPath
}

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}
func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}
func getEnvDur(key string) (time.Duration, bool) {
	if s, ok := getEnvStr(key); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(s)); err == nil {
			return d, true
		}
	}
	return 0, false
}
func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

// applyEnvOverrides: pisa config.yaml con variables de entorno.
func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := getEnvStr("SERVICE_VERSION"); ok {
		c.App.Version = v
	}
	if v, ok := getEnvStr("SERVICE_COMMIT"); ok {
		c.App.Commit = v
	}

	// SERVER
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvCSV("SERVER_CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}
	if v, ok := getEnvDur("SERVER_READ_TIMEOUT"); ok {
		c.Server.ReadTimeout = v
	}
	if v, ok := getEnvDur("SERVER_WRITE_TIMEOUT"); ok {
		c.Server.WriteTimeout = v
	}
	if v, ok := getEnvDur("SERVER_SHUTDOWN_TIMEOUT"); ok {
		c.Server.ShutdownTimeout = v
	}

	// LOG / METRICS
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := getEnvBool("METRICS_ENABLED"); ok {
		c.Metrics.Enabled = v
	}

	// MAIL
	if v, ok := getEnvBool("MAIL_TEXT_ALTERNATIVE"); ok {
		c.Mail.TextAlternative = v
	}
	if v, ok := getEnvBool("MAIL_INSECURE_SKIP_VERIFY"); ok {
		c.Mail.InsecureSkipVerify = v
	}
}

// Validate controla lo mínimo para poder arrancar.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("config: server.addr is required")
	}
	switch c.App.Env {
	case "dev", "staging", "prod":
	default:
		return fmt.Errorf("config: invalid app_env %q (dev|staging|prod)", c.App.Env)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return errors.New("config: server timeouts must be >= 0")
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{"*"}
	}
	return nil
}
