package season

import (
	"errors"
	"fmt"
	"time"
)

// Erros específicos do calendário da temporada
var (
	ErrInvalidWeek     = errors.New("número de semana inválido: deve estar entre 1 e 8")
	ErrNoCompletedWeek = errors.New("nenhuma semana da temporada foi concluída ainda")
)

// OutOfSeasonError indica que a data consultada está fora da janela
// promocional (1 de setembro a 31 de outubro). Fatal apenas para a data
// afetada; o chamador decide entre abortar ou pular.
type OutOfSeasonError struct {
	Date time.Time
}

// Error implementa a interface error
func (e *OutOfSeasonError) Error() string {
	return fmt.Sprintf(
		"data %s fora da temporada promocional (01/09 a 31/10)",
		e.Date.Format(time.DateOnly),
	)
}

// IsOutOfSeason verifica se o erro é um OutOfSeasonError
func IsOutOfSeason(err error) bool {
	var oos *OutOfSeasonError
	return errors.As(err, &oos)
}
