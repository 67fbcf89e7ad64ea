package ingest

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() { validate = validator.New() })
	return validate
}

// Validate runs struct-tag validation (go-playground/validator) over a
// parsed constraint/timing/netlist record. A non-nil error means the record
// is malformed. The constraint and timing parsers and the enrichment passes
// do not call it themselves.
func Validate(record interface{}) error {
	if err := instance().Struct(record); err != nil {
		return fmt.Errorf("ingest: validation failed: %w", err)
	}
	return nil
}

// ValidateAll validates each record in records, collecting every failure
// rather than stopping at the first (so a caller can report all malformed
// rows of a batch file at once).
func ValidateAll(records []interface{}) []error {
	var errs []error
	for _, r := range records {
		if err := Validate(r); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
