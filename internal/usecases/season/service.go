package season

import (
	"time"

	"github.com/vfg2006/season-pricing-api/internal/domain"
)

const (
	// FirstWeek e LastWeek delimitam a numeração de semanas da temporada.
	FirstWeek = 1
	LastWeek  = 8

	startMonth = time.September
	startDay   = 1
	endMonth   = time.October
	endDay     = 31

	// A semana 8 é estendida: cobre de 20 a 31 de outubro, independentemente
	// da aritmética regular de 7 dias.
	extendedWeekStartDay = 20
)

// Clock resolve datas do calendário para semanas da temporada promocional.
type Clock interface {
	ResolveWeek(date time.Time) (*domain.SeasonWeek, error)
	WeekSpan(seasonYear, week int) (*domain.SeasonWeek, error)
	LastCompletedWeek(date time.Time) (*domain.SeasonWeek, error)
	SeasonYearFor(date time.Time) int
	SeasonStart(seasonYear int) time.Time
	SeasonEnd(seasonYear int) time.Time
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// SeasonStart retorna o primeiro dia da temporada (1 de setembro).
func (s *Service) SeasonStart(seasonYear int) time.Time {
	return time.Date(seasonYear, startMonth, startDay, 0, 0, 0, 0, time.UTC)
}

// SeasonEnd retorna o último dia da temporada (31 de outubro).
func (s *Service) SeasonEnd(seasonYear int) time.Time {
	return time.Date(seasonYear, endMonth, endDay, 0, 0, 0, 0, time.UTC)
}

// SeasonYearFor retorna o ano da temporada mais recente que já começou na
// data informada. Antes de 1 de setembro a temporada vigente ainda é a do
// ano anterior: uma execução retrospectiva em janeiro avalia a temporada
// que terminou em outubro, não uma futura.
func (s *Service) SeasonYearFor(date time.Time) int {
	day := truncateToDay(date)
	if day.Before(s.SeasonStart(day.Year())) {
		return day.Year() - 1
	}

	return day.Year()
}

// ResolveWeek mapeia uma data do calendário para a semana ativa da
// temporada. Datas fora da janela 01/09–31/10 retornam OutOfSeasonError.
//
// A semana é floor((data − início)/7)+1, com a exceção de que qualquer data
// entre 20 e 31 de outubro resolve para a semana 8.
func (s *Service) ResolveWeek(date time.Time) (*domain.SeasonWeek, error) {
	day := truncateToDay(date)
	seasonYear := day.Year()

	start := s.SeasonStart(seasonYear)
	end := s.SeasonEnd(seasonYear)
	if day.Before(start) || day.After(end) {
		return nil, &OutOfSeasonError{Date: day}
	}

	week := int(day.Sub(start).Hours()/24)/7 + FirstWeek
	if day.Month() == endMonth && day.Day() >= extendedWeekStartDay {
		week = LastWeek
	}

	return s.WeekSpan(seasonYear, week)
}

// WeekSpan retorna o intervalo [início, fim] de uma semana da temporada,
// aplicando a extensão da semana 8.
func (s *Service) WeekSpan(seasonYear, week int) (*domain.SeasonWeek, error) {
	if week < FirstWeek || week > LastWeek {
		return nil, ErrInvalidWeek
	}

	if week == LastWeek {
		return &domain.SeasonWeek{
			SeasonYear: seasonYear,
			Number:     week,
			StartDate:  time.Date(seasonYear, endMonth, extendedWeekStartDay, 0, 0, 0, 0, time.UTC),
			EndDate:    s.SeasonEnd(seasonYear),
		}, nil
	}

	start := s.SeasonStart(seasonYear).AddDate(0, 0, (week-FirstWeek)*7)
	return &domain.SeasonWeek{
		SeasonYear: seasonYear,
		Number:     week,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 6),
	}, nil
}

// LastCompletedWeek retorna a semana mais recentemente concluída antes da
// data informada. É o padrão do fluxo semanal quando nenhuma semana
// explícita é solicitada.
func (s *Service) LastCompletedWeek(date time.Time) (*domain.SeasonWeek, error) {
	current, err := s.ResolveWeek(date)
	if err != nil {
		return nil, err
	}

	if current.Number == FirstWeek {
		return nil, ErrNoCompletedWeek
	}

	return s.WeekSpan(current.SeasonYear, current.Number-1)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
