package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/season-pricing-api/internal/domain"
	"github.com/vfg2006/season-pricing-api/internal/scheduler"
	"github.com/vfg2006/season-pricing-api/pkg/apiErrors"
	"github.com/vfg2006/season-pricing-api/pkg/middleware"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeDailyPricing  = "daily-pricing"
	CronJobTypeWeeklyGrading = "weekly-grading"
	CronJobTypeAll           = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	DailyPricingService  *scheduler.DailyPricingService
	WeeklyGradingService *scheduler.WeeklyGradingService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Apenas administradores podem executar cron jobs
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != middleware.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem executar cron jobs", nil)
			return
		}

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeDailyPricing:
			if services.DailyPricingService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de recomendações diárias não disponível", nil)
				return
			}
			services.DailyPricingService.TriggerManualSync()

		case CronJobTypeWeeklyGrading:
			if services.WeeklyGradingService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de notas semanais não disponível", nil)
				return
			}
			services.WeeklyGradingService.TriggerManualSync()

		case CronJobTypeAll:
			if services.DailyPricingService != nil {
				services.DailyPricingService.TriggerManualSync()
			}
			if services.WeeklyGradingService != nil {
				services.WeeklyGradingService.TriggerManualSync()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: daily-pricing, weekly-grading, all", nil)
			return
		}

		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != middleware.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem verificar status de cron jobs", nil)
			return
		}

		status := map[string]any{
			"daily-pricing":  services.DailyPricingService.GetStatus(),
			"weekly-grading": services.WeeklyGradingService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
