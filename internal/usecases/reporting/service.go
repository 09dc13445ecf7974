package reporting

import (
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/season-pricing-api/infrastructure/repository"
	"github.com/vfg2006/season-pricing-api/internal/domain"
	"github.com/vfg2006/season-pricing-api/internal/usecases/aggregating"
	"github.com/vfg2006/season-pricing-api/internal/usecases/analyzing"
	"github.com/vfg2006/season-pricing-api/internal/usecases/matching"
	"github.com/vfg2006/season-pricing-api/internal/usecases/pricing"
	"github.com/vfg2006/season-pricing-api/internal/usecases/season"
	"github.com/vfg2006/season-pricing-api/pkg/log"
	"github.com/vfg2006/season-pricing-api/pkg/utils"
)

// WeekLastCompleted pede ao fluxo semanal a última semana concluída em vez
// de uma semana explícita.
const WeekLastCompleted = 0

// Reporter orquestra o pipeline completo de análise: associação, agregação,
// estimativa de estoque, nota e (no fluxo diário) recomendação de preço.
type Reporter interface {
	RunDaily(inventory []domain.InventoryRecord, sales []domain.SaleRecord, referenceDate time.Time) (*domain.AnalysisRun, error)
	RunWeekly(inventory []domain.InventoryRecord, sales []domain.SaleRecord, referenceDate time.Time, week int) (*domain.AnalysisRun, error)
}

type Service struct {
	clock      season.Clock
	matcher    matching.Matcher
	aggregator aggregating.Aggregator
	analyzer   analyzing.Analyzer
	pricer     pricing.Decider
	runRepo    repository.AnalysisRunRepository
}

// NewService monta o orquestrador. runRepo pode ser nil: a CLI roda apenas
// sobre arquivos, sem persistir execuções.
func NewService(
	clock season.Clock,
	matcher matching.Matcher,
	aggregator aggregating.Aggregator,
	analyzer analyzing.Analyzer,
	pricer pricing.Decider,
	runRepo repository.AnalysisRunRepository,
) *Service {
	return &Service{
		clock:      clock,
		matcher:    matcher,
		aggregator: aggregator,
		analyzer:   analyzer,
		pricer:     pricer,
		runRepo:    runRepo,
	}
}

// RunDaily executa o fluxo diário: agrega as vendas do início da temporada
// até a data de referência, compara com a meta da semana corrente e produz
// uma recomendação de preço por produto.
func (s *Service) RunDaily(
	inventory []domain.InventoryRecord,
	sales []domain.SaleRecord,
	referenceDate time.Time,
) (*domain.AnalysisRun, error) {
	week, err := s.clock.ResolveWeek(referenceDate)
	if err != nil {
		return nil, err
	}

	from := s.clock.SeasonStart(week.SeasonYear)
	to := referenceDate

	run, err := s.analyze(inventory, sales, week, from, to, true)
	if err != nil {
		return nil, err
	}

	run.Mode = domain.RunModeDaily
	run.ReferenceDate = truncateToDay(referenceDate)

	s.persist(run)
	return run, nil
}

// RunWeekly executa o fluxo semanal retrospectivo: agrega do início da
// temporada até o fim da semana avaliada e atribui a nota de desempenho,
// sem recomendação de preço. Com WeekLastCompleted avalia a última semana
// concluída antes da data de referência.
func (s *Service) RunWeekly(
	inventory []domain.InventoryRecord,
	sales []domain.SaleRecord,
	referenceDate time.Time,
	week int,
) (*domain.AnalysisRun, error) {
	var span *domain.SeasonWeek
	var err error

	if week == WeekLastCompleted {
		span, err = s.clock.LastCompletedWeek(referenceDate)
	} else {
		// Semana explícita avalia a temporada mais recente que já começou;
		// após a virada do ano isso é a temporada do ano anterior.
		span, err = s.clock.WeekSpan(s.clock.SeasonYearFor(referenceDate), week)
	}
	if err != nil {
		return nil, err
	}

	from := s.clock.SeasonStart(span.SeasonYear)
	to := span.EndDate

	run, err := s.analyze(inventory, sales, span, from, to, false)
	if err != nil {
		return nil, err
	}

	run.Mode = domain.RunModeWeekly
	run.ReferenceDate = truncateToDay(referenceDate)

	s.persist(run)
	return run, nil
}

// analyze é o núcleo compartilhado dos dois fluxos. O snapshot de estoque é
// tratado como imutável: cada produto é avaliado de forma independente, e
// falhas parciais viram diagnóstico em vez de abortar o lote.
func (s *Service) analyze(
	inventory []domain.InventoryRecord,
	sales []domain.SaleRecord,
	week *domain.SeasonWeek,
	from, to time.Time,
	withPricing bool,
) (*domain.AnalysisRun, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "gerando identificador da execução")
	}

	matchSet := s.matcher.MatchAll(inventory, sales)

	run := &domain.AnalysisRun{
		ID:         id,
		SeasonYear: week.SeasonYear,
		Week:       week.Number,
		Results:    make([]*domain.PerformanceResult, 0, len(inventory)),
		Diagnostics: domain.RunDiagnostics{
			UnmatchedSales: matchSet.Unmatched,
		},
	}

	for i, item := range inventory {
		agg := s.aggregator.AggregateUnits(matchSet.ByProduct[i], from, to)
		run.Diagnostics.SkippedSaleRecords += agg.Skipped

		estimated, clamped := s.analyzer.EstimateStartingInventory(item.Quantity, agg.Units)
		if clamped {
			run.Diagnostics.ClampedEstimates++
		}

		analysis, err := s.analyzer.AnalyzeGap(agg.Units, estimated, week.Number)
		if err != nil {
			return nil, err
		}

		result := &domain.PerformanceResult{
			Product:                    item.Key(),
			EstimatedStartingInventory: estimated,
			UnitsSold:                  agg.Units,
			SellThroughPct:             analysis.SellThroughPct,
			TargetPct:                  analysis.TargetPct,
			GapPct:                     analysis.GapPct,
			Grade:                      analysis.Grade,
			InventoryClamped:           clamped,
			SellThroughUndefined:       analysis.Undefined,
		}

		if analysis.Undefined {
			run.Diagnostics.ZeroInventoryProducts++
		} else if withPricing {
			// A decisão de preço usa o desvio exato: o valor arredondado
			// pode cair na faixa errada perto dos limites.
			decision := s.pricer.Decide(analysis.RawGapPct)
			result.Action = decision.Action
			result.Adjustment = &decision.Adjustment
			result.SuggestedPct = &decision.SuggestedPct
		}

		run.Results = append(run.Results, result)
	}

	log.L.WithFields(log.Fields{
		"run_id":    run.ID,
		"week":      run.Week,
		"products":  len(run.Results),
		"unmatched": run.Diagnostics.UnmatchedSales,
	}).Info("Execução de análise concluída")

	return run, nil
}

// persist grava a execução quando há repositório configurado. Falha de
// persistência não invalida os resultados já calculados em memória.
func (s *Service) persist(run *domain.AnalysisRun) {
	if s.runRepo == nil {
		return
	}

	if err := s.runRepo.SaveOrUpdate(run); err != nil {
		log.L.WithError(err).WithField("run_id", run.ID).
			Error("erro ao persistir execução de análise")
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
