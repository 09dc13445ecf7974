package domain

// Grade classifica o desempenho de sell-through de um produto em relação à
// meta semanal.
type Grade string

const (
	GradeExcellent   Grade = "EXCELLENT"
	GradeGood        Grade = "GOOD"
	GradeOnTarget    Grade = "ON_TARGET"
	GradeBelowTarget Grade = "BELOW_TARGET"
	GradePoor        Grade = "POOR"

	// GradeUndefined é reportada quando o estoque inicial estimado é zero e o
	// sell-through é matematicamente indefinido.
	GradeUndefined Grade = "N/A"
)

// PricingAction é a ação de preço recomendada pelo fluxo diário.
type PricingAction string

const (
	ActionAggressiveDiscount PricingAction = "AGGRESSIVE_DISCOUNT"
	ActionModerateDiscount   PricingAction = "MODERATE_DISCOUNT"
	ActionHoldSteady         PricingAction = "HOLD_STEADY"
	ActionModerateIncrease   PricingAction = "MODERATE_INCREASE"
	ActionPremiumPricing     PricingAction = "PREMIUM_PRICING"
)

// AdjustmentDirection indica o sentido do ajuste de preço sugerido.
type AdjustmentDirection string

const (
	AdjustmentReduction AdjustmentDirection = "reduction"
	AdjustmentIncrease  AdjustmentDirection = "increase"
	AdjustmentNone      AdjustmentDirection = "none"
)

// AdjustmentRange é a faixa percentual sugerida para a ação de preço.
type AdjustmentRange struct {
	Direction AdjustmentDirection `json:"direction"`
	MinPct    float64             `json:"min_pct"`
	MaxPct    float64             `json:"max_pct"`
}

// PerformanceResult é o resultado por produto de uma execução de análise.
// Produzido a cada execução e consumido apenas pela etapa de relatório.
//
// SellThroughPct e GapPct são nil quando o estoque inicial estimado é zero;
// nesse caso Grade é GradeUndefined e o produto permanece na saída com a
// flag de diagnóstico.
type PerformanceResult struct {
	Product                    ProductKey       `json:"product"`
	EstimatedStartingInventory int              `json:"estimated_starting_inventory"`
	UnitsSold                  int              `json:"units_sold"`
	SellThroughPct             *float64         `json:"sell_through_pct,omitempty"`
	TargetPct                  float64          `json:"target_pct"`
	GapPct                     *float64         `json:"gap_pct,omitempty"`
	Grade                      Grade            `json:"grade"`
	Action                     PricingAction    `json:"action,omitempty"`
	Adjustment                 *AdjustmentRange `json:"adjustment,omitempty"`
	SuggestedPct               *float64         `json:"suggested_pct,omitempty"`
	InventoryClamped           bool             `json:"inventory_clamped,omitempty"`
	SellThroughUndefined       bool             `json:"sell_through_undefined,omitempty"`
}
