package models

// TableResult records the outcome of one table's extract-and-load sequence.
type TableResult struct {
	Table      string
	Rows       int
	StagedPath string
	Err        error
}

// Report collects per-table results for a single run. A failed table does
// not abort the run; callers inspect Failed to decide the exit status.
type Report struct {
	Results []TableResult
}

func (r *Report) Add(res TableResult) {
	r.Results = append(r.Results, res)
}

func (r *Report) Succeeded() []TableResult {
	var out []TableResult
	for _, res := range r.Results {
		if res.Err == nil {
			out = append(out, res)
		}
	}
	return out
}

func (r *Report) Failed() []TableResult {
	var out []TableResult
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}
