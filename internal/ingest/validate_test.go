package ingest

import (
	"testing"

	"github.com/nandgate/hwdkg/internal/constraint"
	"github.com/nandgate/hwdkg/internal/timing"
	"github.com/stretchr/testify/assert"
)

func TestValidateRejectsClockMissingName(t *testing.T) {
	c := constraint.Clock{Name: ""}
	err := Validate(c)
	assert.Error(t, err)
}

func TestValidateAcceptsWellFormedClock(t *testing.T) {
	c := constraint.Clock{Name: "sys_clk"}
	assert.NoError(t, Validate(c))
}

func TestValidateRejectsTimingPathMissingEndpoint(t *testing.T) {
	p := timing.Path{Startpoint: "a"}
	assert.Error(t, Validate(p))
}

func TestValidateAllCollectsMultipleFailures(t *testing.T) {
	records := []interface{}{
		constraint.Clock{Name: ""},
		constraint.Clock{Name: "ok"},
		timing.Path{},
	}
	errs := ValidateAll(records)
	assert.Len(t, errs, 2)
}
