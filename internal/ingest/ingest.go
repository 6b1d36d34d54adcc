// Package ingest registers many books at once from free-form title or ISBN
// lines, looking each one up in the external catalog.
package ingest

// Status of one input line.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusNotFound Status = "not_found"
	StatusError    Status = "error"
	// StatusSkipped marks a catalog hit that was already registered.
	StatusSkipped Status = "skipped"
)

// Result is the outcome of one input line. Title is the catalog title on
// success and the input line otherwise.
type Result struct {
	Query   string `json:"query"`
	Title   string `json:"title"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

type Report struct {
	Results []Result `json:"results"`
	Created int      `json:"created"`
}

// Count returns how many results have status s.
func (r Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}
