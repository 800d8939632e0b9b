package db

import (
	"context"
	"fmt"

	"github.com/KromaEnergia/api-apontamentos/internal/apontamento"
	"github.com/KromaEnergia/api-apontamentos/internal/cliente"
	"github.com/KromaEnergia/api-apontamentos/internal/config"
	"github.com/KromaEnergia/api-apontamentos/internal/consultor"
	"github.com/KromaEnergia/api-apontamentos/internal/servico"
	"github.com/KromaEnergia/api-apontamentos/internal/setor"
	"github.com/KromaEnergia/api-apontamentos/internal/tiposervico"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormConfig é compartilhado por postgres e sqlite. Sem FKs no schema: referências
// pendentes são tratadas na leitura.
func gormConfig(nivel logger.LogLevel) *gorm.Config {
	return &gorm.Config{
		Logger:                                   logger.Default.LogMode(nivel),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	}
}

// DSNPostgres monta a string de conexão; credenciais vêm do ambiente ou do Secrets Manager
func DSNPostgres(ctx context.Context, b config.Banco) (string, error) {
	username, password, err := retrieveCredentials(ctx, b)
	if err != nil {
		return "", err
	}
	var sslMode string
	if b.SSLModeDisabled {
		sslMode = " sslmode=disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s", b.Host, username, password, b.Nome, b.Porta, sslMode), nil
}

func ConnectDataBase(ctx context.Context, b config.Banco) (*gorm.DB, error) {
	dsn, err := DSNPostgres(ctx, b)
	if err != nil {
		return nil, err
	}
	database, err := gorm.Open(postgres.Open(dsn), gormConfig(logger.Error))
	if err != nil {
		return nil, fmt.Errorf("conectar postgres: %w", err)
	}
	return database, nil
}

func ConnectSQLite(path string) (*gorm.DB, error) {
	database, err := gorm.Open(sqlite.Open(path), gormConfig(logger.Error))
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite %s: %w", path, err)
	}
	return database, nil
}

// GetDB abre o banco do driver configurado e aplica as migrações
func GetDB(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	var (
		database *gorm.DB
		err      error
	)
	switch cfg.Storage {
	case config.DriverPostgres:
		database, err = ConnectDataBase(ctx, cfg.DB)
	case config.DriverSQLite:
		database, err = ConnectSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("driver sem banco relacional: %s", cfg.Storage)
	}
	if err != nil {
		return nil, err
	}
	if err := Migrar(database); err != nil {
		return nil, err
	}
	return database, nil
}

// Migrar cria/atualiza as tabelas de todos os modelos
func Migrar(database *gorm.DB) error {
	if err := database.AutoMigrate(
		&cliente.Cliente{},
		&consultor.Consultor{},
		&tiposervico.TipoServico{},
		&servico.Servico{},
		&setor.Setor{},
		&apontamento.Apontamento{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}
