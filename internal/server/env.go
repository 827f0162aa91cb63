package server

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Env is the environment of `folio serve`.
type Env struct {
	Addr       string `env:"FOLIO_ADDR" env-default:":8080" env-description:"listen address"`
	Config     string `env:"FOLIO_CONFIG" env-default:"folio" env-description:"config name or path"`
	AdminToken string `env:"FOLIO_ADMIN_TOKEN" env-description:"bearer token for /admin/stats; empty disables it"`
	VisitsDB   string `env:"FOLIO_VISITS_DB" env-description:"SQLite visit log path; empty disables tracking"`
	IPSalt     string `env:"FOLIO_IP_SALT" env-description:"salt mixed into hashed client addresses"`
	PDF        bool   `env:"FOLIO_PDF" env-default:"true" env-description:"serve /portfolio.pdf"`
	Workers    int    `env:"FOLIO_WORKERS" env-default:"0" env-description:"browser pool size; 0 picks from CPU count"`
}

// LoadEnv reads Env from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := cleanenv.ReadEnv(&e); err != nil {
		return Env{}, fmt.Errorf("reading environment: %w", err)
	}
	if e.Workers < 0 {
		return Env{}, fmt.Errorf("FOLIO_WORKERS must not be negative, got %d", e.Workers)
	}
	return e, nil
}

// EnvUsage describes the variables LoadEnv reads.
func EnvUsage() string {
	var e Env
	desc, err := cleanenv.GetDescription(&e, nil)
	if err != nil {
		return ""
	}
	return desc
}
