package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverMemoria  = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Banco struct {
	Host            string `envconfig:"HOST" default:"localhost"`
	Porta           uint   `envconfig:"PORT" default:"5432"`
	Nome            string `envconfig:"NAME" default:"apontamentos"`
	Usuario         string `envconfig:"USERNAME"`
	Senha           string `envconfig:"PASSWORD"`
	SecretID        string `envconfig:"SECRET_ID"`
	SSLModeDisabled bool   `envconfig:"SSL_MODE_DISABLE"`
}

type Config struct {
	Porta         string        `envconfig:"PORT" default:"8080"`
	Ambiente      string        `envconfig:"APP_ENV" default:"development"`
	NivelLog      string        `envconfig:"LOG_LEVEL" default:"info"`
	Storage       string        `envconfig:"STORAGE_DRIVER" default:"memory"`
	SQLitePath    string        `envconfig:"SQLITE_PATH" default:"apontamentos.db"`
	DB            Banco         `envconfig:"DB"`
	JWTSecret     string        `envconfig:"JWT_SECRET"`
	JWTTTL        time.Duration `envconfig:"JWT_TTL" default:"24h"`
	AuthRequired  bool          `envconfig:"AUTH_REQUIRED" default:"false"`
	CORSOrigens   []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	WebhookAlerta string        `envconfig:"ALERT_WEBHOOK_URL"`
	LoginPorMin   int           `envconfig:"LOGIN_RATE_PER_MINUTE" default:"10"`
}

// Carregar lê o .env (se existir) e depois as variáveis de ambiente
func Carregar(arquivos ...string) (*Config, error) {
	if err := godotenv.Load(arquivos...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("carregar .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ler variáveis de ambiente: %w", err)
	}
	if err := cfg.Validar(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validar() error {
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	switch c.Storage {
	case DriverMemoria, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("STORAGE_DRIVER inválido: %q (use memory, postgres ou sqlite)", c.Storage)
	}
	if c.AuthRequired && c.JWTSecret == "" {
		return errors.New("AUTH_REQUIRED=true exige JWT_SECRET")
	}
	if c.LoginPorMin < 0 {
		return errors.New("LOGIN_RATE_PER_MINUTE não pode ser negativo")
	}
	return nil
}

func (c *Config) Desenvolvimento() bool {
	return c.Ambiente == "development"
}
