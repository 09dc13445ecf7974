package analyzing

import "github.com/vfg2006/season-pricing-api/internal/usecases/season"

// cumulativeTargets é a meta acumulada de sell-through (% do estoque
// inicial da temporada) ao fim de cada semana, derivada empiricamente das
// temporadas anteriores. A semana 8 repete a semana 7 de propósito: ela
// captura a cauda estendida de 20 a 31 de outubro, não uma expectativa
// maior de venda.
var cumulativeTargets = [...]float64{
	1: 2.2,
	2: 3.0,
	3: 3.8,
	4: 7.3,
	5: 10.3,
	6: 16.4,
	7: 28.0,
	8: 28.0,
}

// TargetPct retorna a meta acumulada da semana.
func TargetPct(week int) (float64, error) {
	if week < season.FirstWeek || week > season.LastWeek {
		return 0, season.ErrInvalidWeek
	}
	return cumulativeTargets[week], nil
}
