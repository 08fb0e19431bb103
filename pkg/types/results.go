package types

// EntryStatus is the outcome of processing one entry in a batch
type EntryStatus string

const (
	StatusCopied    EntryStatus = "copied"
	StatusUnchanged EntryStatus = "unchanged"
	StatusPlanned   EntryStatus = "planned"
	StatusFailed    EntryStatus = "failed"
	StatusSkipped   EntryStatus = "skipped"
)

// EntryResult records what happened to one entry
type EntryResult struct {
	Entry       Entry
	Source      string
	Destination string
	Elevated    bool
	Status      EntryStatus
	Err         error
}

// Report collects the per-entry results of a capture or config apply
type Report struct {
	Results []EntryResult
	DryRun  bool
}

// Add appends a result
func (r *Report) Add(res EntryResult) {
	r.Results = append(r.Results, res)
}

// Count returns how many results have the given status
func (r *Report) Count(status EntryStatus) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Failed returns the failed results in processing order
func (r *Report) Failed() []EntryResult {
	var failed []EntryResult
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			failed = append(failed, res)
		}
	}
	return failed
}
