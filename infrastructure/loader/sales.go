package loader

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/season-pricing-api/internal/domain"
	"github.com/vfg2006/season-pricing-api/pkg/log"
	"github.com/vfg2006/season-pricing-api/pkg/utils"
)

// Colunas esperadas nos arquivos de vendas.
const (
	salesColumnSKU          = "sku"
	salesColumnASIN         = "asin"
	salesColumnPurchaseDate = "purchase-date"
	salesColumnQuantity     = "quantity"
)

type SalesLoader struct{}

func NewSalesLoader() *SalesLoader {
	return &SalesLoader{}
}

// LoadDir carrega todos os arquivos mensais de vendas de um diretório. Os
// arquivos seguem o padrão "M-AAAA.txt" (mês-ano); a ordem de carga é
// lexicográfica por nome, e a ordem das linhas dentro de cada arquivo é
// preservada.
func (l *SalesLoader) LoadDir(dir string) ([]domain.SaleRecord, *LoadStats, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, nil, &UnreadableSourceError{Path: dir, Err: errors.Wrap(err, "listando arquivos de vendas")}
	}

	if len(paths) == 0 {
		return nil, nil, &UnreadableSourceError{Path: dir, Err: errors.New("nenhum arquivo de vendas encontrado")}
	}

	sort.Strings(paths)

	stats := &LoadStats{}
	all := make([]domain.SaleRecord, 0)

	for _, path := range paths {
		records, fileStats, err := l.LoadFile(path)
		if err != nil {
			// Um arquivo ilegível invalida a execução inteira: o núcleo não
			// deve produzir saída parcial sobre dados que nunca recebeu.
			return nil, nil, err
		}

		all = append(all, records...)
		stats.Loaded += fileStats.Loaded
		stats.Skipped += fileStats.Skipped
	}

	log.L.WithFields(log.Fields{
		"dir":     dir,
		"files":   len(paths),
		"loaded":  stats.Loaded,
		"skipped": stats.Skipped,
	}).Info("Arquivos de vendas carregados")

	return all, stats, nil
}

// LoadFile lê um arquivo de vendas separado por tabulação. Quantidade
// ausente vale 1; datas malformadas deixam PurchaseDate nil com aviso, e a
// linha segue para que o agregador a descarte com diagnóstico.
func (l *SalesLoader) LoadFile(path string) ([]domain.SaleRecord, *LoadStats, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, &UnreadableSourceError{Path: path, Err: errors.Wrap(err, "abrindo arquivo de vendas")}
	}
	defer file.Close()

	reader := newTSVReader(file)

	header, err := reader.Read()
	if err != nil {
		return nil, nil, &UnreadableSourceError{Path: path, Err: errors.Wrap(err, "lendo cabeçalho de vendas")}
	}

	columns := columnIndex(header)
	skuIdx, hasSKU := columns[salesColumnSKU]
	asinIdx, hasASIN := columns[salesColumnASIN]
	dateIdx, hasDate := columns[salesColumnPurchaseDate]
	quantityIdx, hasQuantity := columns[salesColumnQuantity]

	if !hasSKU && !hasASIN {
		return nil, nil, &UnreadableSourceError{
			Path: path,
			Err:  errors.Errorf("cabeçalho sem colunas %q nem %q", salesColumnSKU, salesColumnASIN),
		}
	}

	stats := &LoadStats{}
	records := make([]domain.SaleRecord, 0)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			stats.Skipped++
			log.L.WithError(err).WithField("file", path).Warn("linha de venda ilegível pulada")
			continue
		}

		record := domain.SaleRecord{Quantity: 1}
		if hasSKU {
			record.SKU = field(row, skuIdx)
		}
		if hasASIN {
			record.ASIN = field(row, asinIdx)
		}

		if record.SKU == "" && record.ASIN == "" {
			stats.Skipped++
			continue
		}

		if hasQuantity {
			raw := strings.TrimSpace(field(row, quantityIdx))
			if raw != "" {
				quantity, err := strconv.Atoi(raw)
				if err != nil || quantity < 0 {
					stats.Skipped++
					log.L.WithFields(log.Fields{
						"file": path,
						"sku":  record.SKU,
					}).Warn("linha de venda com quantidade malformada pulada")
					continue
				}
				record.Quantity = quantity
			}
		}

		if hasDate {
			purchaseDate, err := utils.ParsePurchaseDate(strings.TrimSpace(field(row, dateIdx)))
			if err != nil {
				log.L.WithFields(log.Fields{
					"file": path,
					"sku":  record.SKU,
				}).Warn("linha de venda com data malformada; será descartada na agregação")
			} else {
				record.PurchaseDate = purchaseDate
			}
		}

		records = append(records, record)
		stats.Loaded++
	}

	return records, stats, nil
}
