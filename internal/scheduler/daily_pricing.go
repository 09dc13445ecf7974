// Package scheduler contém os serviços de agendamento das execuções de análise
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/season-pricing-api/infrastructure/loader"
	"github.com/vfg2006/season-pricing-api/infrastructure/report"
	"github.com/vfg2006/season-pricing-api/internal/config"
	"github.com/vfg2006/season-pricing-api/internal/usecases/reporting"
	"github.com/vfg2006/season-pricing-api/internal/usecases/season"
)

type DailyPricingConfig struct {
	CronSchedule  string
	SyncEnabled   bool
	InventoryFile string
	SalesDir      string
}

// DailyPricingService roda o fluxo diário de recomendações de preço: carrega
// o snapshot de estoque e as vendas do disco, executa a análise da data
// corrente e grava os relatórios.
type DailyPricingService struct {
	scheduler           *gocron.Scheduler
	inventoryLoader     *loader.InventoryLoader
	salesLoader         *loader.SalesLoader
	reporter            reporting.Reporter
	csvWriter           *report.CSVWriter
	excelWriter         *report.ExcelWriter
	config              DailyPricingConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewDailyPricingService(
	inventoryLoader *loader.InventoryLoader,
	salesLoader *loader.SalesLoader,
	reporter reporting.Reporter,
	csvWriter *report.CSVWriter,
	excelWriter *report.ExcelWriter,
	cfg *config.Config,
) *DailyPricingService {
	pricingConfig := DailyPricingConfig{
		CronSchedule:  cfg.DailyPricingSync.CronSchedule, // Default: 5h da manhã todos os dias
		SyncEnabled:   cfg.DailyPricingSync.Enabled,      // Default: desabilitado
		InventoryFile: cfg.DataSources.InventoryFile,
		SalesDir:      cfg.DataSources.SalesDir,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": pricingConfig.CronSchedule,
	}).Info("Configuração do agendador de recomendações diárias carregada")

	return &DailyPricingService{
		scheduler:       scheduler,
		inventoryLoader: inventoryLoader,
		salesLoader:     salesLoader,
		reporter:        reporter,
		csvWriter:       csvWriter,
		excelWriter:     excelWriter,
		config:          pricingConfig,
	}
}

func (s *DailyPricingService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de recomendações diárias de preço desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de recomendações diárias de preço")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunDailyPricing(); err != nil {
			logrus.WithError(err).Error("Erro na execução diária de recomendações de preço")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recomendações diárias de preço: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de recomendações diárias de preço")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *DailyPricingService) RunDailyPricing() error {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		logrus.Warn("Execução diária de recomendações de preço já está em andamento")
		return nil
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	defer func() {
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
	}()

	return s.runForDate(time.Now())
}

func (s *DailyPricingService) runForDate(referenceDate time.Time) error {
	logrus.WithField("reference_date", referenceDate.Format(time.DateOnly)).
		Info("Iniciando execução diária de recomendações de preço")

	inventory, _, err := s.inventoryLoader.Load(s.config.InventoryFile)
	if err != nil {
		return err
	}

	sales, _, err := s.salesLoader.LoadDir(s.config.SalesDir)
	if err != nil {
		return err
	}

	run, err := s.reporter.RunDaily(inventory, sales, referenceDate)
	if err != nil {
		if season.IsOutOfSeason(err) {
			logrus.WithField("reference_date", referenceDate.Format(time.DateOnly)).
				Info("Fora da temporada promocional; execução diária ignorada")
			return nil
		}
		return err
	}

	if _, err := s.csvWriter.Write(run); err != nil {
		logrus.WithError(err).Error("Erro ao gravar relatório CSV da execução diária")
	}

	if _, err := s.excelWriter.Write(run); err != nil {
		logrus.WithError(err).Error("Erro ao gravar relatório XLSX da execução diária")
	}

	logrus.WithFields(logrus.Fields{
		"run_id":   run.ID,
		"week":     run.Week,
		"products": len(run.Results),
	}).Info("Execução diária de recomendações de preço concluída")

	return nil
}

// TriggerManualSync inicia manualmente uma execução diária
func (s *DailyPricingService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Execução diária já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando execução diária manual de recomendações de preço")
	go func() {
		if err := s.RunDailyPricing(); err != nil {
			logrus.WithError(err).Error("Erro na execução diária manual de recomendações de preço")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *DailyPricingService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
