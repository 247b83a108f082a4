/*
pepm.go - Period-level PEPM aggregation

PURPOSE:
  Aggregates monthly plan stats over a labeled period (current plan year,
  prior plan year, rolling 12) into category totals and per-employee-
  per-month rates.

KEY CONCEPTS:
  - Per-category PEPM divides by aggregate subscriber-months (the SUM of
    monthly subscriber counts), not by the average
  - avgSubscribers is the simple arithmetic mean of monthly counts
  - Empty input yields an all-zero aggregate, never a division error

SEE ALSO:
  - stats.go: The per-month records being aggregated
*/
package plan

// =============================================================================
// PEPM CALCULATION
// =============================================================================

// PEPMCalculation is a period-level aggregate of monthly plan stats.
type PEPMCalculation struct {
	Label            string  `json:"label"`
	TotalMonths      int     `json:"totalMonths"`
	TotalMedical     float64 `json:"totalMedicalClaims"`
	TotalPharmacy    float64 `json:"totalPharmacyClaims"`
	TotalAdminFees   float64 `json:"totalAdminFees"`
	TotalStopLoss    float64 `json:"totalStopLossFees"`
	AvgSubscribers   float64 `json:"avgSubscribers"`
	SubscriberMonths float64 `json:"subscriberMonths"`
	PEPMMedical      float64 `json:"pepmMedical"`
	PEPMPharmacy     float64 `json:"pepmPharmacy"`
	PEPMAdminFees    float64 `json:"pepmAdminFees"`
	PEPMStopLoss     float64 `json:"pepmStopLossFees"`
}

// CalculatePEPM aggregates the given months under a period label.
func CalculatePEPM(months []MonthlyPlanStats, label string) PEPMCalculation {
	out := PEPMCalculation{Label: label, TotalMonths: len(months)}
	for _, m := range months {
		out.TotalMedical += m.MedicalClaims
		out.TotalPharmacy += m.PharmacyClaims
		out.TotalAdminFees += m.AdminFees
		out.TotalStopLoss += m.StopLossFees
		out.SubscriberMonths += m.TotalSubscribers
	}
	if len(months) > 0 {
		out.AvgSubscribers = out.SubscriberMonths / float64(len(months))
	}
	if out.SubscriberMonths > 0 {
		out.PEPMMedical = out.TotalMedical / out.SubscriberMonths
		out.PEPMPharmacy = out.TotalPharmacy / out.SubscriberMonths
		out.PEPMAdminFees = out.TotalAdminFees / out.SubscriberMonths
		out.PEPMStopLoss = out.TotalStopLoss / out.SubscriberMonths
	}
	return out
}

// =============================================================================
// PERIOD COMPARISON
// =============================================================================

// PEPMPercentChange compares current vs prior period PEPM rates.
type PEPMPercentChange struct {
	MedicalChange  float64 `json:"medicalChange"`
	PharmacyChange float64 `json:"pharmacyChange"`
}

// CalculatePEPMPercentChange returns the percentage change of medical
// and pharmacy PEPM rates from prior to current. A zero prior rate
// yields 0 for that category.
func CalculatePEPMPercentChange(current, prior PEPMCalculation) PEPMPercentChange {
	var out PEPMPercentChange
	if prior.PEPMMedical != 0 {
		out.MedicalChange = (current.PEPMMedical - prior.PEPMMedical) / prior.PEPMMedical * 100
	}
	if prior.PEPMPharmacy != 0 {
		out.PharmacyChange = (current.PEPMPharmacy - prior.PEPMPharmacy) / prior.PEPMPharmacy * 100
	}
	return out
}
