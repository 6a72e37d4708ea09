package sheet

// Metrics is a derived per-region quality snapshot on a 0–100 scale.
//
// The validator runs a single running compliance counter per region and
// snapshots it after each penalty phase: SizeCompliance after bubble-size
// penalties, PositionAccuracy after page-margin penalties, OMRStandard after
// spacing penalties. OverallScore is the final value of the counter, so the
// three axes are progressive views of one composite, not independently
// weighted scores.
//
// Metrics are never authoritative: they are recomputed from
// (regions, profile, page) on demand and never stored on a Region.
type Metrics struct {
	PositionAccuracy float64 `json:"positionAccuracy"`
	SizeCompliance   float64 `json:"sizeCompliance"`
	OMRStandard      float64 `json:"omrStandard"`
	OverallScore     float64 `json:"overallScore"`
}
