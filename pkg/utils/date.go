package utils

import (
	"fmt"
	"time"
)

// Layouts aceitos no campo purchase-date dos arquivos de venda. Os carimbos
// podem vir qualificados com fuso horário; a normalização descarta a hora e
// mantém apenas a data.
var purchaseDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// ParsePurchaseDate interpreta um carimbo ISO 8601 (com ou sem fuso) e o
// normaliza para uma data pura em UTC.
func ParsePurchaseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, fmt.Errorf("data de compra vazia")
	}

	for _, layout := range purchaseDateLayouts {
		parsed, err := time.Parse(layout, value)
		if err != nil {
			continue
		}

		day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
		return &day, nil
	}

	return nil, fmt.Errorf("data de compra em formato desconhecido: %q", value)
}
