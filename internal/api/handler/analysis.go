package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/season-pricing-api/infrastructure/loader"
	"github.com/vfg2006/season-pricing-api/infrastructure/report"
	"github.com/vfg2006/season-pricing-api/infrastructure/repository"
	"github.com/vfg2006/season-pricing-api/internal/config"
	"github.com/vfg2006/season-pricing-api/internal/domain"
	"github.com/vfg2006/season-pricing-api/internal/usecases/reporting"
	"github.com/vfg2006/season-pricing-api/internal/usecases/season"
	"github.com/vfg2006/season-pricing-api/pkg/apiErrors"
	"github.com/vfg2006/season-pricing-api/pkg/utils"
)

const defaultRunListLimit = 20

// AnalysisServices agrupa as dependências dos handlers de análise.
type AnalysisServices struct {
	InventoryLoader *loader.InventoryLoader
	SalesLoader     *loader.SalesLoader
	Reporter        reporting.Reporter
	RunRepo         repository.AnalysisRunRepository
	ExcelWriter     *report.ExcelWriter
	DataSources     config.DataSources
}

type RunAnalysisRequest struct {
	Mode string `json:"mode"`           // daily ou weekly
	Week int    `json:"week,omitempty"` // apenas para weekly; 0 usa a última semana concluída
	Date string `json:"date,omitempty"` // data de referência AAAA-MM-DD; vazio usa hoje
}

// RunAnalysis dispara uma execução de análise sob demanda
func RunAnalysis(services AnalysisServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunAnalysis")

		var req RunAnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		referenceDate := time.Now()
		if req.Date != "" {
			parsed, err := utils.ParseDate(req.Date)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data de referência inválida; use AAAA-MM-DD", nil)
				return
			}
			referenceDate = *parsed
		}

		inventory, _, err := services.InventoryLoader.Load(services.DataSources.InventoryFile)
		if err != nil {
			writeAnalysisError(w, err)
			return
		}

		sales, _, err := services.SalesLoader.LoadDir(services.DataSources.SalesDir)
		if err != nil {
			writeAnalysisError(w, err)
			return
		}

		var run *domain.AnalysisRun
		switch req.Mode {
		case string(domain.RunModeDaily):
			run, err = services.Reporter.RunDaily(inventory, sales, referenceDate)
		case string(domain.RunModeWeekly):
			run, err = services.Reporter.RunWeekly(inventory, sales, referenceDate, req.Week)
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Modo inválido. Valores aceitos: daily, weekly", nil)
			return
		}
		if err != nil {
			writeAnalysisError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(run)
	}
}

// ListAnalysisRuns lista as execuções mais recentes
func ListAnalysisRuns(services AnalysisServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultRunListLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Limite inválido", nil)
				return
			}
			limit = parsed
		}

		runs, err := services.RunRepo.ListRecent(limit)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar execuções de análise", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(runs)
	}
}

// GetAnalysisRun retorna uma execução pelo ID
func GetAnalysisRun(services AnalysisServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, err := findRun(services, r)
		if err != nil {
			writeAnalysisError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(run)
	}
}

// DownloadAnalysisReport devolve a execução como planilha XLSX
func DownloadAnalysisReport(services AnalysisServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, err := findRun(services, r)
		if err != nil {
			writeAnalysisError(w, err)
			return
		}

		payload, err := services.ExcelWriter.ExportRun(run)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar planilha", nil)
			return
		}

		filename := fmt.Sprintf("%s_%s_%s.xlsx", run.Mode, run.ReferenceDate.Format(time.DateOnly), run.ID)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Write(payload)
	}
}

var errRunNotFound = errors.New("execução de análise não encontrada")

func findRun(services AnalysisServices, r *http.Request) (*domain.AnalysisRun, error) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if id == "" {
		return nil, errors.Wrap(errRunNotFound, "id não fornecido")
	}

	run, err := services.RunRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, errRunNotFound
	}

	return run, nil
}

// writeAnalysisError traduz os erros do pipeline para o código de API
func writeAnalysisError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	switch {
	case season.IsOutOfSeason(err):
		apiErrors.WriteError(w, apiErrors.ErrOutOfSeason, err.Error(), nil)

	case errors.Is(err, season.ErrInvalidWeek):
		apiErrors.WriteError(w, apiErrors.ErrInvalidWeek, "Número de semana fora do intervalo 1 a 8", nil)

	case errors.Is(err, season.ErrNoCompletedWeek):
		apiErrors.WriteError(w, apiErrors.ErrInvalidWeek, "Nenhuma semana da temporada foi concluída ainda", nil)

	case loader.IsUnreadableSource(err):
		apiErrors.WriteError(w, apiErrors.ErrSourceUnusable, err.Error(), nil)

	case errors.Is(err, errRunNotFound):
		apiErrors.WriteError(w, apiErrors.ErrRunNotFound, "Execução de análise não encontrada", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao executar a análise", nil)
	}
}
