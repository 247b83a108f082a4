/*
stoploss.go - Legacy stop-loss fee helper

PURPOSE:
  Produces the per-month stop-loss fee the summary engine consumes, from
  the simple rate configurations carried by older plan setups: tiered
  single/family rates, a composite per-employee rate, or a flat amount.

SEE ALSO:
  - summary.go: Consumes these fees through Input.StopLossFeesByMonth
*/
package summary

import "github.com/warp/claims-engine/engine"

// StopLossMethod selects the legacy fee formula.
type StopLossMethod string

const (
	StopLossTiered    StopLossMethod = "tiered"
	StopLossComposite StopLossMethod = "composite"
	StopLossFlat      StopLossMethod = "flat"
)

// StopLossFeeConfig is a legacy stop-loss rate configuration.
type StopLossFeeConfig struct {
	Method        StopLossMethod `json:"method"`
	SingleRate    float64        `json:"singleRate"`
	FamilyRate    float64        `json:"familyRate"`
	CompositeRate float64        `json:"compositeRate"`
	FlatAmount    float64        `json:"flatAmount"`
}

// StopLossEnrollment is one month's enrollment split for fee purposes.
type StopLossEnrollment struct {
	Month       engine.MonthKey `json:"month"`
	SingleCount float64         `json:"singleCount"`
	FamilyCount float64         `json:"familyCount"`
	EECount     float64         `json:"eeCount"`
}

// CalculateStopLossFee computes one month's fee under the configured
// method. Unknown methods yield 0.
func CalculateStopLossFee(cfg StopLossFeeConfig, enrollment StopLossEnrollment) float64 {
	switch cfg.Method {
	case StopLossTiered:
		return cfg.SingleRate*enrollment.SingleCount + cfg.FamilyRate*enrollment.FamilyCount
	case StopLossComposite:
		return cfg.CompositeRate * enrollment.EECount
	case StopLossFlat:
		return cfg.FlatAmount
	}
	return 0
}

// CalculateStopLossFees maps each month's enrollment to its fee,
// producing the table the summary engine consumes.
func CalculateStopLossFees(cfg StopLossFeeConfig, enrollments []StopLossEnrollment) map[engine.MonthKey]float64 {
	out := make(map[engine.MonthKey]float64, len(enrollments))
	for _, e := range enrollments {
		out[e.Month] = CalculateStopLossFee(cfg, e)
	}
	return out
}
