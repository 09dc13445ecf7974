package domain

import "time"

// SeasonWeek é uma semana da temporada promocional (setembro/outubro),
// numerada de 1 a 8. A semana 8 é estendida: cobre de 20 a 31 de outubro.
// Derivada sob demanda, nunca persistida.
type SeasonWeek struct {
	SeasonYear int       `json:"season_year"`
	Number     int       `json:"number"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

// Contains informa se a data está dentro do intervalo da semana (inclusivo
// em ambas as pontas).
func (w SeasonWeek) Contains(date time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(w.StartDate) && !d.After(w.EndDate)
}
