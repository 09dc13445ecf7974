package matching

import (
	"github.com/vfg2006/season-pricing-api/internal/domain"
)

// Matcher associa registros de venda a itens do estoque. A associação por
// SKU (igualdade exata, sensível a maiúsculas) sempre tem precedência; ASIN
// é usado apenas como fallback para vendas não associadas por SKU.
type Matcher interface {
	MatchSales(inventory domain.InventoryRecord, sales []domain.SaleRecord) []domain.MatchedSale
	MatchAll(inventory []domain.InventoryRecord, sales []domain.SaleRecord) *MatchSet
}

// MatchSet é o resultado da associação de um lote de vendas a um snapshot
// completo de estoque.
type MatchSet struct {
	// ByProduct é alinhado por índice com o slice de estoque de entrada.
	ByProduct [][]domain.MatchedSale

	// Unmatched conta as vendas que não bateram com nenhum item do estoque,
	// nem por SKU nem por ASIN. Diagnóstico, não erro.
	Unmatched int
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// MatchSales retorna o subconjunto de vendas pertencentes ao item de
// estoque, na mesma ordem da entrada.
func (s *Service) MatchSales(inventory domain.InventoryRecord, sales []domain.SaleRecord) []domain.MatchedSale {
	matched := make([]domain.MatchedSale, 0)

	for _, sale := range sales {
		kind := matchKind(inventory, sale)
		if kind == domain.NoMatch {
			continue
		}
		matched = append(matched, domain.MatchedSale{Sale: sale, Kind: kind})
	}

	return matched
}

// MatchAll associa cada venda ao primeiro item de estoque compatível,
// primeiro por SKU e depois por ASIN. A ordem original das vendas é
// preservada dentro de cada produto.
func (s *Service) MatchAll(inventory []domain.InventoryRecord, sales []domain.SaleRecord) *MatchSet {
	bySKU := make(map[string]int, len(inventory))
	byASIN := make(map[string]int, len(inventory))

	for i, item := range inventory {
		if item.SKU != "" {
			if _, exists := bySKU[item.SKU]; !exists {
				bySKU[item.SKU] = i
			}
		}
		if item.ASIN != "" {
			if _, exists := byASIN[item.ASIN]; !exists {
				byASIN[item.ASIN] = i
			}
		}
	}

	set := &MatchSet{
		ByProduct: make([][]domain.MatchedSale, len(inventory)),
	}

	for _, sale := range sales {
		if sale.SKU != "" {
			if idx, ok := bySKU[sale.SKU]; ok {
				set.ByProduct[idx] = append(set.ByProduct[idx], domain.MatchedSale{
					Sale: sale,
					Kind: domain.MatchedBySKU,
				})
				continue
			}
		}

		if sale.ASIN != "" {
			if idx, ok := byASIN[sale.ASIN]; ok {
				set.ByProduct[idx] = append(set.ByProduct[idx], domain.MatchedSale{
					Sale: sale,
					Kind: domain.MatchedByASIN,
				})
				continue
			}
		}

		set.Unmatched++
	}

	return set
}

// matchKind decide como uma venda individual se relaciona com um item do
// estoque: SKU primeiro, ASIN como fallback, campos vazios nunca casam.
func matchKind(inventory domain.InventoryRecord, sale domain.SaleRecord) domain.MatchKind {
	if inventory.SKU != "" && sale.SKU != "" && inventory.SKU == sale.SKU {
		return domain.MatchedBySKU
	}

	if inventory.ASIN != "" && sale.ASIN != "" && inventory.ASIN == sale.ASIN {
		return domain.MatchedByASIN
	}

	return domain.NoMatch
}
