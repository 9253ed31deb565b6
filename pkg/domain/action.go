package domain

// ActionResult is the outcome of one generator action for one environment.
type ActionResult struct {
	Action      string `json:"action"`
	Environment string `json:"environment"`
	Output      string `json:"output,omitempty"`
	// Skipped holds the reason the action did not run, if any.
	Skipped string `json:"skipped,omitempty"`
	Err     error  `json:"-"`
}

// OK reports whether the action ran without error.
func (r ActionResult) OK() bool {
	return r.Err == nil && r.Skipped == ""
}
