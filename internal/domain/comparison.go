package domain

import "github.com/shopspring/decimal"

// ComparisonRow compara as unidades vendidas de um ASIN entre o ano atual e
// o ano anterior, no mesmo recorte de datas.
type ComparisonRow struct {
	ASIN            string          `json:"asin"`
	SKUs            []string        `json:"skus"`
	TotalPrevious   int             `json:"total_previous"`
	TotalCurrent    int             `json:"total_current"`
	Difference      int             `json:"difference"`
	ChangePct       float64         `json:"change_pct"`
	MonthlyPrevious map[int]int     `json:"monthly_previous"`
	MonthlyCurrent  map[int]int     `json:"monthly_current"`
	CurrentQuantity int             `json:"current_quantity"`
	AveragePrice    decimal.Decimal `json:"average_price"`
}

// SKUComparisonRow é a mesma comparação no nível de SKU individual.
type SKUComparisonRow struct {
	SKU             string          `json:"sku"`
	ASIN            string          `json:"asin"`
	TotalPrevious   int             `json:"total_previous"`
	TotalCurrent    int             `json:"total_current"`
	Difference      int             `json:"difference"`
	ChangePct       float64         `json:"change_pct"`
	MonthlyPrevious map[int]int     `json:"monthly_previous"`
	MonthlyCurrent  map[int]int     `json:"monthly_current"`
	CurrentQuantity int             `json:"current_quantity"`
	CurrentPrice    decimal.Decimal `json:"current_price"`
}

// ComparisonSummary resume os totais da comparação ano a ano.
type ComparisonSummary struct {
	CurrentYear    int     `json:"current_year"`
	PreviousYear   int     `json:"previous_year"`
	TotalPrevious  int     `json:"total_previous"`
	TotalCurrent   int     `json:"total_current"`
	Difference     int     `json:"difference"`
	ChangePct      float64 `json:"change_pct"`
	UniqueASINs    int     `json:"unique_asins"`
	TotalInventory int     `json:"total_inventory"`
}

// SeasonComparison agrega as linhas e o resumo de uma comparação ano a ano.
type SeasonComparison struct {
	Summary ComparisonSummary   `json:"summary"`
	Rows    []*ComparisonRow    `json:"rows"`
	SKURows []*SKUComparisonRow `json:"sku_rows"`
}
