package main

import (
	"context"
	"math/rand"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/season-pricing-api/infrastructure/database/postgres"
	"github.com/vfg2006/season-pricing-api/infrastructure/loader"
	"github.com/vfg2006/season-pricing-api/infrastructure/report"
	"github.com/vfg2006/season-pricing-api/infrastructure/repository"
	"github.com/vfg2006/season-pricing-api/internal/api"
	"github.com/vfg2006/season-pricing-api/internal/api/handler"
	"github.com/vfg2006/season-pricing-api/internal/config"
	"github.com/vfg2006/season-pricing-api/internal/scheduler"
	"github.com/vfg2006/season-pricing-api/internal/usecases/aggregating"
	"github.com/vfg2006/season-pricing-api/internal/usecases/analyzing"
	"github.com/vfg2006/season-pricing-api/internal/usecases/authenticating"
	"github.com/vfg2006/season-pricing-api/internal/usecases/comparing"
	"github.com/vfg2006/season-pricing-api/internal/usecases/matching"
	"github.com/vfg2006/season-pricing-api/internal/usecases/pricing"
	"github.com/vfg2006/season-pricing-api/internal/usecases/reporting"
	"github.com/vfg2006/season-pricing-api/internal/usecases/season"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	runRepo := repository.NewAnalysisRunRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	inventoryLoader := loader.NewInventoryLoader()
	salesLoader := loader.NewSalesLoader()

	csvWriter := report.NewCSVWriter(cfg.Report.OutputDir)
	excelWriter := report.NewExcelWriter(cfg.Report.OutputDir)

	// Monta o pipeline de análise da temporada
	reporter := reporting.NewService(
		season.NewService(),
		matching.NewService(),
		aggregating.NewService(),
		analyzing.NewService(),
		pricing.NewService(rand.New(rand.NewSource(time.Now().UnixNano()))),
		runRepo,
	)

	comparer := comparing.NewService()

	// Inicializa os agendadores das execuções diária e semanal
	dailyPricingService := scheduler.NewDailyPricingService(
		inventoryLoader,
		salesLoader,
		reporter,
		csvWriter,
		excelWriter,
		cfg,
	)

	weeklyGradingService := scheduler.NewWeeklyGradingService(
		inventoryLoader,
		salesLoader,
		reporter,
		csvWriter,
		excelWriter,
		cfg,
	)

	if err := dailyPricingService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recomendações diárias de preço")
	} else {
		logrus.Info("Agendador de recomendações diárias de preço iniciado com sucesso")
	}

	if err := weeklyGradingService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de notas semanais")
	} else {
		logrus.Info("Agendador de notas semanais iniciado com sucesso")
	}

	analysisServices := handler.AnalysisServices{
		InventoryLoader: inventoryLoader,
		SalesLoader:     salesLoader,
		Reporter:        reporter,
		RunRepo:         runRepo,
		ExcelWriter:     excelWriter,
		DataSources:     cfg.DataSources,
	}

	comparisonServices := handler.ComparisonServices{
		InventoryLoader: inventoryLoader,
		SalesLoader:     salesLoader,
		Comparer:        comparer,
		DataSources:     cfg.DataSources,
	}

	cronServices := handler.CronJobServices{
		DailyPricingService:  dailyPricingService,
		WeeklyGradingService: weeklyGradingService,
	}

	server, err := api.New(
		cfg,
		authenticator,
		analysisServices,
		comparisonServices,
		cronServices,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
