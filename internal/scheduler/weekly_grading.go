package scheduler

import (
	"context"
	"errors"
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

type WeeklyGradingConfig struct {
	CronSchedule  string
	SyncEnabled   bool
	InventoryFile string
	SalesDir      string
}

// WeeklyGradingService roda o fluxo semanal retrospectivo: avalia a última
// semana concluída da temporada e grava o boletim de notas por produto.
type WeeklyGradingService struct {
	scheduler           *gocron.Scheduler
	inventoryLoader     *loader.InventoryLoader
	salesLoader         *loader.SalesLoader
	reporter            reporting.Reporter
	csvWriter           *report.CSVWriter
	excelWriter         *report.ExcelWriter
	config              WeeklyGradingConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewWeeklyGradingService(
	inventoryLoader *loader.InventoryLoader,
	salesLoader *loader.SalesLoader,
	reporter reporting.Reporter,
	csvWriter *report.CSVWriter,
	excelWriter *report.ExcelWriter,
	cfg *config.Config,
) *WeeklyGradingService {
	gradingConfig := WeeklyGradingConfig{
		CronSchedule:  cfg.WeeklyGradingSync.CronSchedule, // Default: segunda-feira às 6h
		SyncEnabled:   cfg.WeeklyGradingSync.Enabled,      // Default: desabilitado
		InventoryFile: cfg.DataSources.InventoryFile,
		SalesDir:      cfg.DataSources.SalesDir,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": gradingConfig.CronSchedule,
	}).Info("Configuração do agendador de notas semanais carregada")

	return &WeeklyGradingService{
		scheduler:       scheduler,
		inventoryLoader: inventoryLoader,
		salesLoader:     salesLoader,
		reporter:        reporter,
		csvWriter:       csvWriter,
		excelWriter:     excelWriter,
		config:          gradingConfig,
	}
}

func (s *WeeklyGradingService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de notas semanais desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de notas semanais")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunWeeklyGrading(); err != nil {
			logrus.WithError(err).Error("Erro na execução semanal de notas")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar notas semanais: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de notas semanais")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *WeeklyGradingService) RunWeeklyGrading() error {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		logrus.Warn("Execução semanal de notas já está em andamento")
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

func (s *WeeklyGradingService) runForDate(referenceDate time.Time) error {
	logrus.WithField("reference_date", referenceDate.Format(time.DateOnly)).
		Info("Iniciando execução semanal de notas")

	inventory, _, err := s.inventoryLoader.Load(s.config.InventoryFile)
	if err != nil {
		return err
	}

	sales, _, err := s.salesLoader.LoadDir(s.config.SalesDir)
	if err != nil {
		return err
	}

	run, err := s.reporter.RunWeekly(inventory, sales, referenceDate, reporting.WeekLastCompleted)
	if err != nil {
		if season.IsOutOfSeason(err) || errors.Is(err, season.ErrNoCompletedWeek) {
			logrus.WithField("reference_date", referenceDate.Format(time.DateOnly)).
				Info("Nenhuma semana concluída para avaliar; execução semanal ignorada")
			return nil
		}
		return err
	}

	if _, err := s.csvWriter.Write(run); err != nil {
		logrus.WithError(err).Error("Erro ao gravar relatório CSV da execução semanal")
	}

	if _, err := s.excelWriter.Write(run); err != nil {
		logrus.WithError(err).Error("Erro ao gravar relatório XLSX da execução semanal")
	}

	logrus.WithFields(logrus.Fields{
		"run_id":   run.ID,
		"week":     run.Week,
		"products": len(run.Results),
	}).Info("Execução semanal de notas concluída")

	return nil
}

// TriggerManualSync inicia manualmente uma execução semanal
func (s *WeeklyGradingService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Execução semanal já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando execução semanal manual de notas")
	go func() {
		if err := s.RunWeeklyGrading(); err != nil {
			logrus.WithError(err).Error("Erro na execução semanal manual de notas")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *WeeklyGradingService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
