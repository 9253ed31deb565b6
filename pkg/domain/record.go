package domain

import "time"

// ActivationRecord is the trace of a completed environment switch.
type ActivationRecord struct {
	Environment string    `json:"environment"`
	ActivatedAt time.Time `json:"activated_at"`
	Renamed     int       `json:"renamed"`
	Failed      int       `json:"failed"`
}

// NewActivationRecord summarizes a rename report.
func NewActivationRecord(report RenameReport, at time.Time) *ActivationRecord {
	return &ActivationRecord{
		Environment: report.Environment,
		ActivatedAt: at.UTC(),
		Renamed:     report.Succeeded(),
		Failed:      len(report.Failed()),
	}
}
