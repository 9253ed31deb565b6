package domain

// RenameResult is the outcome of a single RenameOperation.
// Err is nil on success.
type RenameResult struct {
	Operation RenameOperation `json:"operation"`
	Planned   bool            `json:"planned,omitempty"`
	Err       error           `json:"-"`
}

// OK reports whether the operation was applied (or planned) without error.
func (r RenameResult) OK() bool {
	return r.Err == nil
}

// RenameReport collects the results of a rename batch in submission order.
type RenameReport struct {
	Environment string         `json:"environment"`
	Results     []RenameResult `json:"results"`
}

// Succeeded returns the number of operations without error.
func (r RenameReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Failed returns the results that carry an error.
func (r RenameReport) Failed() []RenameResult {
	var failed []RenameResult
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}
