package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/centralviagens/viagens/internal/cep"
	"github.com/centralviagens/viagens/internal/config"
	"github.com/centralviagens/viagens/internal/dashboard"
	httpserver "github.com/centralviagens/viagens/internal/interfaces/http"
	"github.com/centralviagens/viagens/internal/report"
	"github.com/centralviagens/viagens/internal/repository"
	"github.com/centralviagens/viagens/pkg/database"
	"github.com/centralviagens/viagens/pkg/utils"
)

func main() {
	// Local overrides from .env, if present
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting central de viagens",
		zap.Int("port", cfg.Server.Port),
		zap.String("sede", cfg.Sede.Cidade+"/"+cfg.Sede.UF))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("failed to run database migrations", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.Report.OutputDir, 0755); err != nil {
		logger.Fatal("failed to create report output directory", zap.Error(err))
	}

	oficios := repository.NewOficioRepository(db, logger)

	handlers := httpserver.NewHandlers(httpserver.HandlerDeps{
		Estados:   repository.NewEstadoRepository(db, logger),
		Viajantes: repository.NewViajanteRepository(db, logger),
		Veiculos:  repository.NewVeiculoRepository(db, logger),
		Cargos:    repository.NewCargoRepository(db, logger),
		Oficios:   oficios,
		CEP: cep.NewClient(cfg.CEP.BaseURL,
			cep.WithLogger(logger),
			cep.WithHTTPClient(&http.Client{Timeout: cfg.CEP.Timeout})),
		Dashboard: dashboard.NewService(oficios, logger),
		Reports:   report.NewGenerator(cfg.Report.OutputDir, logger),
		Logger:    logger,
	})

	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, handlers, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("http server failed", zap.Error(err))
	}

	logger.Info("server exited")
}
