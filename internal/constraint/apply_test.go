package constraint

import (
	"testing"

	"github.com/nandgate/hwdkg/internal/fieldsource"
	"github.com/nandgate/hwdkg/internal/graphmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestApplyDispatchesParsedFileEndToEnd exercises the full path: raw
// constraint text -> ParseFile -> Apply, landing on the graph through the
// same Projector methods the individual Apply* tests cover directly.
func TestApplyDispatchesParsedFileEndToEnd(t *testing.T) {
	g := graphmodel.New()
	clk := portNode("N_IOPort_clk", "clk")
	din := portNode("N_IOPort_din", "din")
	g.AddNode(clk)
	g.AddNode(din)

	content := "create_clock -name sys_clk -period 4.0 [get_ports clk]\n" +
		"set_input_delay 1.0 -clock sys_clk [get_ports din]\n"
	cmds := ParseFile(content)
	require.Len(t, cmds, 2)

	u := fieldsource.NewUpdater()
	p := NewProjector(g, u, nil, "top.xdc")
	n := p.Apply(cmds)

	assert.Greater(t, n, 0)
	require.NotNil(t, clk.ClockDomain)
	assert.Equal(t, "sys_clk", *clk.ClockDomain)
}

// TestApplyIsNoOpOnEmptyCommandList guards the zero-commands path.
func TestApplyIsNoOpOnEmptyCommandList(t *testing.T) {
	g := graphmodel.New()
	u := fieldsource.NewUpdater()
	p := NewProjector(g, u, nil, "empty.xdc")
	assert.Equal(t, 0, p.Apply(nil))
}
