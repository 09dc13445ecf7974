package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductKey identifica um produto pelo par SKU/ASIN. Qualquer um dos campos
// pode estar ausente em um registro individual.
type ProductKey struct {
	SKU  string `json:"sku,omitempty"`
	ASIN string `json:"asin,omitempty"`
}

// InventoryRecord representa uma linha do snapshot de estoque atual.
// Imutável durante uma execução de análise.
type InventoryRecord struct {
	SKU      string          `json:"sku"`
	ASIN     string          `json:"asin"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

func (r InventoryRecord) Key() ProductKey {
	return ProductKey{SKU: r.SKU, ASIN: r.ASIN}
}

// SaleRecord representa uma linha de venda individual. PurchaseDate é nil
// quando a data original não pôde ser interpretada; o agregador descarta
// esses registros com um aviso em vez de abortar o lote.
type SaleRecord struct {
	SKU          string     `json:"sku"`
	ASIN         string     `json:"asin"`
	PurchaseDate *time.Time `json:"purchase_date,omitempty"`
	Quantity     int        `json:"quantity"`
}

// MatchKind indica como um registro de venda foi associado a um item do
// estoque. SKU sempre tem precedência sobre ASIN.
type MatchKind int

const (
	NoMatch MatchKind = iota
	MatchedBySKU
	MatchedByASIN
)

func (k MatchKind) String() string {
	switch k {
	case MatchedBySKU:
		return "sku"
	case MatchedByASIN:
		return "asin"
	default:
		return "none"
	}
}

// MatchedSale é um registro de venda junto com a forma pela qual ele foi
// associado ao item de estoque.
type MatchedSale struct {
	Sale SaleRecord `json:"sale"`
	Kind MatchKind  `json:"kind"`
}
