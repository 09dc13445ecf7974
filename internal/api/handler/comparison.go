package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/season-pricing-api/infrastructure/loader"
	"github.com/vfg2006/season-pricing-api/internal/config"
	"github.com/vfg2006/season-pricing-api/internal/domain"
	"github.com/vfg2006/season-pricing-api/internal/usecases/comparing"
	"github.com/vfg2006/season-pricing-api/pkg/apiErrors"
)

// ComparisonServices agrupa as dependências do handler de comparação anual.
type ComparisonServices struct {
	InventoryLoader *loader.InventoryLoader
	SalesLoader     *loader.SalesLoader
	Comparer        comparing.Comparer
	DataSources     config.DataSources
}

type SKUSearchResponse struct {
	Summary domain.ComparisonSummary   `json:"summary"`
	SKURows []*domain.SKUComparisonRow `json:"sku_rows"`
}

// GetSeasonComparison compara as vendas do ano informado com as do ano
// anterior. Com o parâmetro sku, devolve apenas as linhas de SKU que casam
// com a busca.
func GetSeasonComparison(services ComparisonServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetSeasonComparison")

		currentYear := time.Now().Year()
		if raw := r.URL.Query().Get("year"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Ano inválido", nil)
				return
			}
			currentYear = parsed
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

		currentSales, previousSales := splitSalesByYear(sales, currentYear)
		comparison := services.Comparer.Compare(inventory, currentSales, previousSales, currentYear)

		w.Header().Set("Content-Type", "application/json")

		if query := r.URL.Query().Get("sku"); query != "" {
			json.NewEncoder(w).Encode(SKUSearchResponse{
				Summary: comparison.Summary,
				SKURows: services.Comparer.SearchSKU(comparison, query),
			})
			return
		}

		json.NewEncoder(w).Encode(comparison)
	}
}

// splitSalesByYear separa as vendas do ano corrente e do anterior pela data
// de compra; anos fora do par comparado ficam de fora.
func splitSalesByYear(sales []domain.SaleRecord, currentYear int) ([]domain.SaleRecord, []domain.SaleRecord) {
	current := make([]domain.SaleRecord, 0)
	previous := make([]domain.SaleRecord, 0)

	for _, sale := range sales {
		if sale.PurchaseDate == nil {
			continue
		}

		switch sale.PurchaseDate.Year() {
		case currentYear:
			current = append(current, sale)
		case currentYear - 1:
			previous = append(previous, sale)
		}
	}

	return current, previous
}
