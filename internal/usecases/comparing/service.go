package comparing

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/season-pricing-api/internal/domain"
	"github.com/vfg2006/season-pricing-api/pkg/log"
	"github.com/vfg2006/season-pricing-api/pkg/utils"
)

// Comparer monta a comparação ano a ano das vendas, agregada por ASIN e por
// SKU, enriquecida com o estoque atual.
type Comparer interface {
	Compare(
		inventory []domain.InventoryRecord,
		currentSales []domain.SaleRecord,
		previousSales []domain.SaleRecord,
		currentYear int,
	) *domain.SeasonComparison
	SearchSKU(comparison *domain.SeasonComparison, query string) []*domain.SKUComparisonRow
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

type asinAccumulator struct {
	skus            map[string]struct{}
	totalPrevious   int
	totalCurrent    int
	monthlyPrevious map[int]int
	monthlyCurrent  map[int]int
}

type skuAccumulator struct {
	asin            string
	totalPrevious   int
	totalCurrent    int
	monthlyPrevious map[int]int
	monthlyCurrent  map[int]int
}

// Compare agrega as vendas dos dois anos. Vendas sem data de compra não têm
// mês atribuível e ficam de fora da comparação, com aviso.
func (s *Service) Compare(
	inventory []domain.InventoryRecord,
	currentSales []domain.SaleRecord,
	previousSales []domain.SaleRecord,
	currentYear int,
) *domain.SeasonComparison {
	byASIN := make(map[string]*asinAccumulator)
	bySKU := make(map[string]*skuAccumulator)

	skippedNoDate := 0
	skippedNoDate += s.accumulate(byASIN, bySKU, previousSales, false)
	skippedNoDate += s.accumulate(byASIN, bySKU, currentSales, true)

	if skippedNoDate > 0 {
		log.L.WithField("skipped", skippedNoDate).
			Warn("vendas sem data de compra ignoradas na comparação anual")
	}

	inventoryByASIN := make(map[string][]domain.InventoryRecord)
	inventoryBySKU := make(map[string]domain.InventoryRecord)
	totalInventory := 0
	for _, item := range inventory {
		totalInventory += item.Quantity
		if item.ASIN != "" {
			inventoryByASIN[item.ASIN] = append(inventoryByASIN[item.ASIN], item)
		}
		if item.SKU != "" {
			if _, exists := inventoryBySKU[item.SKU]; !exists {
				inventoryBySKU[item.SKU] = item
			}
		}
	}

	comparison := &domain.SeasonComparison{
		Rows:    make([]*domain.ComparisonRow, 0, len(byASIN)),
		SKURows: make([]*domain.SKUComparisonRow, 0, len(bySKU)),
	}

	for asin, acc := range byASIN {
		row := &domain.ComparisonRow{
			ASIN:            asin,
			SKUs:            sortedKeys(acc.skus),
			TotalPrevious:   acc.totalPrevious,
			TotalCurrent:    acc.totalCurrent,
			Difference:      acc.totalCurrent - acc.totalPrevious,
			ChangePct:       changePct(acc.totalPrevious, acc.totalCurrent),
			MonthlyPrevious: acc.monthlyPrevious,
			MonthlyCurrent:  acc.monthlyCurrent,
		}

		for _, item := range inventoryByASIN[asin] {
			row.CurrentQuantity += item.Quantity
		}
		row.AveragePrice = averagePrice(inventoryByASIN[asin])

		comparison.Rows = append(comparison.Rows, row)
	}

	for sku, acc := range bySKU {
		row := &domain.SKUComparisonRow{
			SKU:             sku,
			ASIN:            acc.asin,
			TotalPrevious:   acc.totalPrevious,
			TotalCurrent:    acc.totalCurrent,
			Difference:      acc.totalCurrent - acc.totalPrevious,
			ChangePct:       changePct(acc.totalPrevious, acc.totalCurrent),
			MonthlyPrevious: acc.monthlyPrevious,
			MonthlyCurrent:  acc.monthlyCurrent,
		}

		if item, exists := inventoryBySKU[sku]; exists {
			row.CurrentQuantity = item.Quantity
			row.CurrentPrice = item.Price
		}

		comparison.SKURows = append(comparison.SKURows, row)
	}

	// Maiores volumes do ano atual primeiro; empates resolvidos pelo
	// identificador para manter a saída estável entre execuções.
	sort.Slice(comparison.Rows, func(i, j int) bool {
		if comparison.Rows[i].TotalCurrent != comparison.Rows[j].TotalCurrent {
			return comparison.Rows[i].TotalCurrent > comparison.Rows[j].TotalCurrent
		}
		return comparison.Rows[i].ASIN < comparison.Rows[j].ASIN
	})
	sort.Slice(comparison.SKURows, func(i, j int) bool {
		if comparison.SKURows[i].TotalCurrent != comparison.SKURows[j].TotalCurrent {
			return comparison.SKURows[i].TotalCurrent > comparison.SKURows[j].TotalCurrent
		}
		return comparison.SKURows[i].SKU < comparison.SKURows[j].SKU
	})

	summary := domain.ComparisonSummary{
		CurrentYear:    currentYear,
		PreviousYear:   currentYear - 1,
		UniqueASINs:    len(byASIN),
		TotalInventory: totalInventory,
	}
	for _, row := range comparison.Rows {
		summary.TotalPrevious += row.TotalPrevious
		summary.TotalCurrent += row.TotalCurrent
	}
	summary.Difference = summary.TotalCurrent - summary.TotalPrevious
	summary.ChangePct = changePct(summary.TotalPrevious, summary.TotalCurrent)
	comparison.Summary = summary

	return comparison
}

// SearchSKU filtra as linhas de SKU por substring, sem diferenciar
// maiúsculas de minúsculas. A consulta vazia devolve todas as linhas.
func (s *Service) SearchSKU(comparison *domain.SeasonComparison, query string) []*domain.SKUComparisonRow {
	if comparison == nil {
		return nil
	}

	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return comparison.SKURows
	}

	matches := make([]*domain.SKUComparisonRow, 0)
	for _, row := range comparison.SKURows {
		if strings.Contains(strings.ToLower(row.SKU), normalized) {
			matches = append(matches, row)
		}
	}

	return matches
}

func (s *Service) accumulate(
	byASIN map[string]*asinAccumulator,
	bySKU map[string]*skuAccumulator,
	sales []domain.SaleRecord,
	current bool,
) int {
	skipped := 0

	for _, sale := range sales {
		if sale.PurchaseDate == nil {
			skipped++
			continue
		}

		month := int(sale.PurchaseDate.Month())

		if sale.ASIN != "" {
			acc, exists := byASIN[sale.ASIN]
			if !exists {
				acc = &asinAccumulator{
					skus:            make(map[string]struct{}),
					monthlyPrevious: make(map[int]int),
					monthlyCurrent:  make(map[int]int),
				}
				byASIN[sale.ASIN] = acc
			}
			if sale.SKU != "" {
				acc.skus[sale.SKU] = struct{}{}
			}
			if current {
				acc.totalCurrent += sale.Quantity
				acc.monthlyCurrent[month] += sale.Quantity
			} else {
				acc.totalPrevious += sale.Quantity
				acc.monthlyPrevious[month] += sale.Quantity
			}
		}

		if sale.SKU != "" {
			acc, exists := bySKU[sale.SKU]
			if !exists {
				acc = &skuAccumulator{
					monthlyPrevious: make(map[int]int),
					monthlyCurrent:  make(map[int]int),
				}
				bySKU[sale.SKU] = acc
			}
			if acc.asin == "" {
				acc.asin = sale.ASIN
			}
			if current {
				acc.totalCurrent += sale.Quantity
				acc.monthlyCurrent[month] += sale.Quantity
			} else {
				acc.totalPrevious += sale.Quantity
				acc.monthlyPrevious[month] += sale.Quantity
			}
		}
	}

	return skipped
}

// changePct devolve a variação percentual sobre o ano anterior, com uma
// casa decimal. Sem base de comparação o resultado é 0.
func changePct(previous, current int) float64 {
	if previous == 0 {
		return 0
	}

	return utils.RoundWithOneDecimalPlace(float64(current-previous) / float64(previous) * 100)
}

func averagePrice(items []domain.InventoryRecord) decimal.Decimal {
	if len(items) == 0 {
		return decimal.Zero
	}

	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Price)
	}

	return sum.Div(decimal.NewFromInt(int64(len(items)))).Round(2)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
