package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/ValerySidorin/sdbc/internal/observability"
)

type Config struct {
	Endpoint  string        `yaml:"endpoint"`
	Namespace string        `yaml:"namespace"`
	Database  string        `yaml:"database"`
	Timeout   time.Duration `yaml:"timeout"`

	Auth          AuthConfig           `yaml:"auth"`
	Log           LogConfig            `yaml:"log"`
	Observability observability.Config `yaml:"observability"`
}

type AuthConfig struct {
	// Token skips signin entirely when set.
	Token    string `yaml:"token"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Access   string `yaml:"access"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Type  string `yaml:"type"`
}

func (c *Config) SetDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "http://127.0.0.1:8000"
	}

	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported endpoint scheme: %q", u.Scheme)
	}

	if (c.Namespace == "") != (c.Database == "") {
		return fmt.Errorf("namespace and database must be set together")
	}

	return nil
}
