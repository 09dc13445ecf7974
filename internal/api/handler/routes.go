package handler

import (
	"net/http"

	"github.com/vfg2006/season-pricing-api/internal/api/handler/router"
	"github.com/vfg2006/season-pricing-api/internal/usecases/authenticating"
	"github.com/vfg2006/season-pricing-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Analysis(services AnalysisServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/analysis/run",
			Method:      http.MethodPost,
			Handler:     RunAnalysis(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrAnalyst()},
		},
		{
			Path:        "/v1/analysis/runs",
			Method:      http.MethodGet,
			Handler:     ListAnalysisRuns(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/analysis/runs/:id",
			Method:      http.MethodGet,
			Handler:     GetAnalysisRun(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/analysis/runs/:id/report",
			Method:      http.MethodGet,
			Handler:     DownloadAnalysisReport(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Comparison(services ComparisonServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/comparison",
			Method:      http.MethodGet,
			Handler:     GetSeasonComparison(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
