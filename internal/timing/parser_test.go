package timing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `Startpoint: cpu/pc_reg[0] (rising edge-triggered flip-flop clocked by sys_clk)
Endpoint: cpu/decode_inst[0] (rising edge-triggered flip-flop clocked by sys_clk)
Path Type: Setup

Point                                    Incr       Path
-------------------------------------------------------
cpu/pc_reg[0]/Q (DFFQX1)                 0.15       0.65 r
cpu/decode_inst/U123/Y (AND2X1)          0.08       0.73 r
data arrival time                                   0.73

data required time                                  9.50
slack (MET)                              9.37
`

func TestParseReportSingleVivadoPath(t *testing.T) {
	paths := ParseReport(sampleReport)
	require.Len(t, paths, 1)

	p := paths[0]
	assert.Equal(t, "cpu/pc_reg[0]", p.Startpoint)
	assert.Equal(t, "cpu/decode_inst[0]", p.Endpoint)
	assert.Equal(t, "sys_clk", p.Clock)
	assert.Equal(t, PathTypeSetup, p.PathType)
	require.NotNil(t, p.Slack)
	assert.InDelta(t, 9.37, *p.Slack, 1e-9)
	require.NotNil(t, p.ArrivalTime)
	assert.InDelta(t, 0.73, *p.ArrivalTime, 1e-9)
	require.NotNil(t, p.RequiredTime)
	assert.InDelta(t, 9.50, *p.RequiredTime, 1e-9)

	require.Len(t, p.Stages, 2)
	assert.Equal(t, "cpu/pc_reg[0]/Q", p.Stages[0].Point)
	assert.InDelta(t, 0.15, p.Stages[0].IncrDelay, 1e-9)
	assert.Equal(t, "r", p.Stages[0].Transition)
}

func TestParseReportMultiplePathsSplit(t *testing.T) {
	doubled := sampleReport + "\n" + sampleReport
	paths := ParseReport(doubled)
	assert.Len(t, paths, 2)
}

func TestParseReportNoStartpointYieldsNoPaths(t *testing.T) {
	paths := ParseReport("not a timing report at all")
	assert.Empty(t, paths)
}
