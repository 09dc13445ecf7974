package pricing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/season-pricing-api/internal/domain"
)

func newSeededService() *Service {
	return NewService(rand.New(rand.NewSource(42)))
}

func TestService_Decide_Faixas(t *testing.T) {
	service := newSeededService()

	tests := []struct {
		name     string
		gapPct   float64
		expected domain.PricingAction
	}{
		{name: "Gap muito acima da meta recebe preço premium", gapPct: 40.6, expected: domain.ActionPremiumPricing},
		{name: "Gap de exatamente 25 é aumento moderado, não premium", gapPct: 25, expected: domain.ActionModerateIncrease},
		{name: "Gap de exatamente 10 mantém o preço", gapPct: 10, expected: domain.ActionHoldSteady},
		{name: "Gap zero mantém o preço", gapPct: 0, expected: domain.ActionHoldSteady},
		{name: "Gap de exatamente −10 ainda mantém o preço", gapPct: -10, expected: domain.ActionHoldSteady},
		{name: "Gap de −10.01 pede desconto moderado", gapPct: -10.01, expected: domain.ActionModerateDiscount},
		{name: "Gap de exatamente −20 é desconto moderado, não agressivo", gapPct: -20, expected: domain.ActionModerateDiscount},
		{name: "Gap de −20.01 pede desconto agressivo", gapPct: -20.01, expected: domain.ActionAggressiveDiscount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := service.Decide(tt.gapPct)
			assert.Equal(t, tt.expected, decision.Action)
		})
	}
}

func TestService_Decide_PercentualSugeridoDentroDaFaixa(t *testing.T) {
	service := newSeededService()

	// Muitas amostras para cobrir a faixa; o sorteio é uniforme entre os
	// limites declarados.
	for i := 0; i < 500; i++ {
		decision := service.Decide(-30)
		assert.Equal(t, domain.ActionAggressiveDiscount, decision.Action)
		assert.GreaterOrEqual(t, decision.SuggestedPct, 15.0)
		assert.LessOrEqual(t, decision.SuggestedPct, 25.0)
	}
}

func TestService_Decide_HoldSteadyNaoSugereAjuste(t *testing.T) {
	service := newSeededService()

	decision := service.Decide(2.5)
	assert.Equal(t, domain.ActionHoldSteady, decision.Action)
	assert.Equal(t, domain.AdjustmentNone, decision.Adjustment.Direction)
	assert.Zero(t, decision.SuggestedPct)
}

func TestService_Decide_DeterministicoComSementeFixa(t *testing.T) {
	first := NewService(rand.New(rand.NewSource(7))).Decide(-30)
	second := NewService(rand.New(rand.NewSource(7))).Decide(-30)

	assert.Equal(t, first.SuggestedPct, second.SuggestedPct)
}
