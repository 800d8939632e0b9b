package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KromaEnergia/api-apontamentos/internal/auth"
	"github.com/KromaEnergia/api-apontamentos/internal/config"
	"github.com/KromaEnergia/api-apontamentos/internal/memoria"
	"github.com/KromaEnergia/api-apontamentos/internal/middleware"
	"github.com/KromaEnergia/api-apontamentos/internal/notificacao"
	"github.com/KromaEnergia/api-apontamentos/internal/servidor"
	"github.com/KromaEnergia/api-apontamentos/internal/utils"
	"github.com/KromaEnergia/api-apontamentos/internal/utils/db"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Carregar()
	if err != nil {
		log.Fatal().Err(err).Msg("erro na configuração")
	}
	configurarLog(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := abrirRepositorios(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage).Msg("erro ao abrir o armazenamento")
	}

	segredo := cfg.JWTSecret
	if segredo == "" {
		// tokens deixam de valer a cada reinício
		segredo, err = utils.GerarSenhaTemporaria()
		if err != nil {
			log.Fatal().Err(err).Msg("erro ao gerar segredo JWT")
		}
		log.Warn().Msg("JWT_SECRET não definida, usando segredo efêmero")
	}
	autenticador, err := auth.NovoAutenticador(segredo, cfg.JWTTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("erro no autenticador")
	}

	handler := servidor.NewRouter(servidor.Dependencias{
		Repos:        repos,
		Auth:         autenticador,
		AuthRequired: cfg.AuthRequired,
		Alerta:       notificacao.NovoWebhook(cfg.WebhookAlerta),
		Metricas:     middleware.NovasMetricas(),
		LimiteLogin:  middleware.NovoLimitePorMinuto(cfg.LoginPorMin),
		CORSOrigens:  cfg.CORSOrigens,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Porta,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("storage", cfg.Storage).Msg("servidor rodando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("erro no servidor")
		}
	}()

	<-ctx.Done()
	desligar, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(desligar); err != nil {
		log.Error().Err(err).Msg("erro ao desligar")
	}
	log.Info().Msg("servidor encerrado")
}

func configurarLog(cfg *config.Config) {
	nivel, err := zerolog.ParseLevel(cfg.NivelLog)
	if err != nil || nivel == zerolog.NoLevel {
		nivel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(nivel)
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.Desenvolvimento() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func abrirRepositorios(ctx context.Context, cfg *config.Config) (servidor.Repositorios, error) {
	if cfg.Storage == config.DriverMemoria {
		return servidor.RepositoriosEmMemoria(memoria.NewStore()), nil
	}
	database, err := db.GetDB(ctx, cfg)
	if err != nil {
		return servidor.Repositorios{}, err
	}
	return servidor.RepositoriosGorm(database), nil
}
