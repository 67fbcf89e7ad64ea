package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarnIncludesStageAndRunID(t *testing.T) {
	d := New(true, false)
	var buf bytes.Buffer
	d.log.SetOutput(&buf)

	timing := d.ForStage("timing")
	timing.Warn("no matching edge for endpoint", map[string]interface{}{"endpoint": "top.ff2.D"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "timing", entry["stage"])
	assert.Equal(t, "top.ff2.D", entry["endpoint"])
	assert.Equal(t, d.RunID(), entry["run_id"])
	assert.Equal(t, "warning", entry["level"])
}

func TestForStageSharesRunID(t *testing.T) {
	d := New(false, false)
	a := d.ForStage("constraints")
	b := d.ForStage("view")
	assert.Equal(t, a.RunID(), b.RunID())
	assert.Equal(t, d.RunID(), a.RunID())
}
