// Package netlistir defines the post-elaboration netlist intermediate
// representation this system consumes (spec §6). It is intentionally a
// plain data shape, not tied to any one synthesis front-end — a JSON
// loader is provided as the reference adapter (grounded on the original
// implementation's Yosys-JSON reader), but any Loader implementation can
// supply the same shape.
package netlistir

import "encoding/json"

// Bit is either an integer wire id (a real net) or a string constant
// ("0", "1", "x", "z") to be skipped by the normalizer.
type Bit struct {
	WireID   int
	Constant string
	IsWire   bool
}

// UnmarshalJSON accepts either a JSON number (wire id) or string (constant).
func (b *Bit) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		b.IsWire = true
		b.WireID = n
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	b.Constant = s
	b.IsWire = false
	return nil
}

// Netname binds a name to a run of bits, with an optional source annotation
// of the form "file:line.col-col".
type Netname struct {
	Bits []Bit   `json:"bits"`
	Src  *string `json:"src,omitempty"`
}

// PortDirection is "input", "output", or "inout".
type PortDirection string

const (
	DirIn    PortDirection = "input"
	DirOut   PortDirection = "output"
	DirInout PortDirection = "inout"
)

// Cell is a single instantiation within a module.
type Cell struct {
	Type            string                   `json:"type"`
	PortDirections  map[string]PortDirection `json:"port_directions"`
	Connections     map[string][]Bit         `json:"connections"`
	Src             *string                  `json:"src,omitempty"`
}

// Module is a flat container of named nets and cell instances.
type Module struct {
	Netnames map[string]Netname `json:"netnames"`
	Cells    map[string]Cell    `json:"cells"`
}

// Design is the top-level netlist IR: module name → Module.
type Design struct {
	Modules map[string]Module `json:"modules"`
}

// Loader produces a Design from some external source. The reference
// implementation (JSONLoader) reads a Yosys-shaped JSON file; a different
// front-end can supply its own Loader without the Normalizer ever knowing.
type Loader interface {
	Load() (*Design, error)
}
