package domain

import "time"

// RunMode distingue o fluxo diário (recomendações de preço) do fluxo
// semanal (nota retrospectiva).
type RunMode string

const (
	RunModeDaily  RunMode = "daily"
	RunModeWeekly RunMode = "weekly"
)

// RunDiagnostics acumula os contadores de degradação graciosa de uma
// execução: nada aqui é erro fatal, mas o relatório precisa distinguir
// resultados calculados de resultados pulados/indefinidos.
type RunDiagnostics struct {
	UnmatchedSales        int `json:"unmatched_sales"`
	SkippedSaleRecords    int `json:"skipped_sale_records"`
	ZeroInventoryProducts int `json:"zero_inventory_products"`
	ClampedEstimates      int `json:"clamped_estimates"`
}

// AnalysisRun é uma execução completa de análise armazenada no banco.
type AnalysisRun struct {
	ID            string               `json:"id"`
	Mode          RunMode              `json:"mode"`
	SeasonYear    int                  `json:"season_year"`
	Week          int                  `json:"week"`
	ReferenceDate time.Time            `json:"reference_date"`
	Results       []*PerformanceResult `json:"results"`
	Diagnostics   RunDiagnostics       `json:"diagnostics"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}
