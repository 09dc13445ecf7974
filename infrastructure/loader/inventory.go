package loader

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/season-pricing-api/internal/domain"
	"github.com/vfg2006/season-pricing-api/pkg/log"
)

// Colunas esperadas no snapshot de estoque exportado pelo marketplace.
const (
	inventoryColumnSKU      = "seller-sku"
	inventoryColumnPrice    = "price"
	inventoryColumnQuantity = "quantity"
	inventoryColumnASIN     = "asin1"
)

// LoadStats acumula os contadores de uma carga de arquivo. Linhas
// malformadas são puladas com aviso, nunca abortam a carga.
type LoadStats struct {
	Loaded  int
	Skipped int
}

type InventoryLoader struct{}

func NewInventoryLoader() *InventoryLoader {
	return &InventoryLoader{}
}

// Load lê o snapshot de estoque separado por tabulação. A resolução de
// colunas é feita pelo cabeçalho, não por posição.
func (l *InventoryLoader) Load(path string) ([]domain.InventoryRecord, *LoadStats, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, &UnreadableSourceError{Path: path, Err: errors.Wrap(err, "abrindo snapshot de estoque")}
	}
	defer file.Close()

	reader := newTSVReader(file)

	header, err := reader.Read()
	if err != nil {
		return nil, nil, &UnreadableSourceError{Path: path, Err: errors.Wrap(err, "lendo cabeçalho do estoque")}
	}

	columns := columnIndex(header)
	skuIdx, hasSKU := columns[inventoryColumnSKU]
	priceIdx, hasPrice := columns[inventoryColumnPrice]
	quantityIdx, hasQuantity := columns[inventoryColumnQuantity]
	asinIdx, hasASIN := columns[inventoryColumnASIN]

	if !hasSKU && !hasASIN {
		return nil, nil, &UnreadableSourceError{
			Path: path,
			Err:  errors.Errorf("cabeçalho sem colunas %q nem %q", inventoryColumnSKU, inventoryColumnASIN),
		}
	}

	stats := &LoadStats{}
	records := make([]domain.InventoryRecord, 0)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			stats.Skipped++
			log.L.WithError(err).WithField("file", path).Warn("linha de estoque ilegível pulada")
			continue
		}

		record := domain.InventoryRecord{}
		if hasSKU {
			record.SKU = field(row, skuIdx)
		}
		if hasASIN {
			record.ASIN = field(row, asinIdx)
		}

		// Sem nenhum identificador a linha é inutilizável para associação.
		if record.SKU == "" && record.ASIN == "" {
			stats.Skipped++
			continue
		}

		if hasPrice {
			price, err := decimal.NewFromString(field(row, priceIdx))
			if err != nil || price.IsNegative() {
				stats.Skipped++
				log.L.WithFields(log.Fields{
					"file": path,
					"sku":  record.SKU,
				}).Warn("linha de estoque com preço malformado pulada")
				continue
			}
			record.Price = price
		}

		if hasQuantity {
			quantity, err := strconv.Atoi(field(row, quantityIdx))
			if err != nil || quantity < 0 {
				stats.Skipped++
				log.L.WithFields(log.Fields{
					"file": path,
					"sku":  record.SKU,
				}).Warn("linha de estoque com quantidade malformada pulada")
				continue
			}
			record.Quantity = quantity
		}

		records = append(records, record)
		stats.Loaded++
	}

	log.L.WithFields(log.Fields{
		"file":    path,
		"loaded":  stats.Loaded,
		"skipped": stats.Skipped,
	}).Info("Snapshot de estoque carregado")

	return records, stats, nil
}

func newTSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

func columnIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	return columns
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
