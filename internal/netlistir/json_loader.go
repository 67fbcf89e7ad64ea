package netlistir

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONLoader reads a netlist IR from a JSON file on disk. It is the
// reference adapter for the external synthesis front-end's output
// (grounded on the original implementation's yosys_parser.py, which reads
// the same "modules / netnames / cells" shape from Yosys `write_json`).
type JSONLoader struct {
	Path string
}

// jsonDesign is the on-disk shape: Yosys wraps modules under a top-level
// "modules" key, identical to Design's own shape.
type jsonDesign struct {
	Modules map[string]jsonModule `json:"modules"`
}

type jsonModule struct {
	Netnames map[string]Netname `json:"netnames"`
	Cells    map[string]Cell    `json:"cells"`
}

// Load reads and parses the JSON file at Path.
func (l JSONLoader) Load() (*Design, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("netlistir: read %s: %w", l.Path, err)
	}

	var raw jsonDesign
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("netlistir: parse %s: %w", l.Path, err)
	}

	d := &Design{Modules: map[string]Module{}}
	for name, m := range raw.Modules {
		d.Modules[name] = Module{Netnames: m.Netnames, Cells: m.Cells}
	}
	return d, nil
}
