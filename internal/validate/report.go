// internal/validate/report.go
package validate

import "errors"

// Report is the outcome summary of one pipeline run. It carries no
// logic and no memory beyond what the run produced.
type Report struct {
	Hubs     int // hubs surviving deduplication
	Entities int // entities surviving validation and deduplication
	Rejected int // entities dropped for failed declarations
	Errors   []error
}

// Err joins every declaration error, nil when all declarations passed.
func (r *Report) Err() error {
	return errors.Join(r.Errors...)
}
