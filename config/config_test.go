package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: 3000, Timezone: "UTC"},
		Auth:    AuthConfig{SessionSecret: "0123456789abcdef0123", SessionTTL: time.Hour},
		Payroll: PayrollConfig{HoursFloor: 1, JobListLookaheadDays: 15},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]func(c *Config){
		"short secret":   func(c *Config) { c.Auth.SessionSecret = "short" },
		"port zero":      func(c *Config) { c.Server.Port = 0 },
		"port too large": func(c *Config) { c.Server.Port = 70000 },
		"no ttl":         func(c *Config) { c.Auth.SessionTTL = 0 },
		"negative floor": func(c *Config) { c.Payroll.HoursFloor = -1 },
		"bad timezone":   func(c *Config) { c.Server.Timezone = "Mars/Olympus_Mons" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := validConfig()
			mutate(c)
			if err := c.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "cz4r", SSLMode: "disable", Timezone: "UTC"}
	want := "host=db port=5432 user=u password=p dbname=cz4r sslmode=disable TimeZone=UTC"
	if got := c.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
