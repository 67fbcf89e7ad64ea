package constraint

import (
	"regexp"
	"strconv"
	"strings"
)

// Command is one recognized directive parsed from a constraint file, ready
// to be applied by a Projector via its matching Apply* method. Exactly one
// of the typed fields is populated, selected by Kind.
type Command struct {
	Kind           CommandKind
	Line           int
	Clock          Clock
	FalsePath      FalsePath
	MulticyclePath MulticyclePath
	Delay          Delay
	IODelay        IODelay
	Property       Property
}

// CommandKind distinguishes which Command field is populated.
type CommandKind string

const (
	KindClock          CommandKind = "Clock"
	KindFalsePath      CommandKind = "FalsePath"
	KindMulticyclePath CommandKind = "MulticyclePath"
	KindDelay          CommandKind = "Delay"
	KindIODelay        CommandKind = "IODelay"
	KindProperty       CommandKind = "Property"
)

var (
	flagRe     = regexp.MustCompile(`-(\S+)\s+(?:\{([^}]*)\}|(\S+))`)
	patternRe  = regexp.MustCompile(`get_(?:ports|cells|pins|nets|pblocks)\s+(?:\{([^}]*)\}|([^\s\]]+))`)
	bareWordRe = regexp.MustCompile(`^\S+`)
)

// flags parses every "-name value" pair out of a constraint line, where
// value is either a bare token or a {brace-quoted} list.
func flags(line string) map[string]string {
	out := map[string]string{}
	for _, m := range flagRe.FindAllStringSubmatch(line, -1) {
		name := m[1]
		val := m[2]
		if val == "" {
			val = m[3]
		}
		out[name] = val
	}
	return out
}

// patternArgs splits a brace/space separated pattern list into individual
// glob patterns.
func patternArgs(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return strings.Fields(raw)
}

// extractTargetsAfter returns the patterns of the first get_ports/get_cells/
// get_pins/get_nets/get_pblocks argument list that follows a flag marker
// (e.g. "-from", "-to") within a line, before the next flag.
func extractTargetsAfter(line, flagName string) []string {
	idx := strings.Index(line, "-"+flagName)
	if idx < 0 {
		return nil
	}
	rest := line[idx:]
	// stop at the next "-flag" so -from and -to don't bleed into each other
	if next := regexp.MustCompile(`\s-\w`).FindStringIndex(rest[1:]); next != nil {
		rest = rest[:next[0]+1]
	}
	m := patternRe.FindStringSubmatch(rest)
	if m == nil {
		return nil
	}
	raw := m[1]
	if raw == "" {
		raw = m[2]
	}
	return patternArgs(raw)
}

func firstWord(s string) string {
	m := bareWordRe.FindString(strings.TrimSpace(s))
	return m
}

// ParseFile parses a constraint file's content into a Command list,
// skipping comments (# prefix) and blank lines, and silently dropping any
// line whose leading command word isn't recognized (spec §7: "unknown
// constraint command" is not an error).
func ParseFile(content string) []Command {
	var out []Command
	lines := strings.Split(content, "\n")

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cmd, ok := parseLine(line, i+1)
		if ok {
			out = append(out, cmd)
		}
	}
	return out
}

func parseLine(line string, lineNo int) (Command, bool) {
	word := firstWord(line)
	f := flags(line)

	switch word {
	case "create_clock":
		c := Clock{Name: f["name"]}
		if p, err := strconv.ParseFloat(f["period"], 64); err == nil {
			c.Period = &p
		}
		c.TargetPorts = trailingPatterns(line)
		return Command{Kind: KindClock, Line: lineNo, Clock: c}, true

	case "set_false_path":
		fp := FalsePath{
			From:    extractTargetsAfter(line, "from"),
			To:      extractTargetsAfter(line, "to"),
			Through: extractTargetsAfter(line, "through"),
		}
		return Command{Kind: KindFalsePath, Line: lineNo, FalsePath: fp}, true

	case "set_multicycle_path":
		n, _ := strconv.Atoi(firstNumericArg(line))
		mp := MulticyclePath{
			Cycles: n,
			Type:   PathTypeSetup,
			From:   extractTargetsAfter(line, "from"),
			To:     extractTargetsAfter(line, "to"),
		}
		if strings.Contains(line, "-hold") {
			mp.Type = PathTypeHold
		}
		return Command{Kind: KindMulticyclePath, Line: lineNo, MulticyclePath: mp}, true

	case "set_max_delay", "set_min_delay":
		v, _ := strconv.ParseFloat(firstNumericArg(line), 64)
		d := Delay{
			IsMax: word == "set_max_delay",
			Value: v,
			From:  extractTargetsAfter(line, "from"),
			To:    extractTargetsAfter(line, "to"),
		}
		return Command{Kind: KindDelay, Line: lineNo, Delay: d}, true

	case "set_input_delay", "set_output_delay":
		v, _ := strconv.ParseFloat(firstNumericArg(line), 64)
		io := IODelay{
			IsInput:     word == "set_input_delay",
			Value:       v,
			TargetPorts: trailingPatterns(line),
		}
		return Command{Kind: KindIODelay, Line: lineNo, IODelay: io}, true

	case "set_property":
		return parseSetProperty(line, lineNo)

	case "create_pblock":
		name := firstNumericArg(line)
		if name == "" {
			parts := strings.Fields(line)
			if len(parts) > 1 {
				name = parts[1]
			}
		}
		return Command{Kind: KindProperty, Line: lineNo, Property: Property{Key: "pblock", Value: name}}, true

	case "add_cells_to_pblock":
		// add_cells_to_pblock [get_pblocks NAME] [get_cells SELECTOR ...]:
		// the first get_* group names the pblock, the rest select cells.
		pblock := ""
		if first := trailingPatterns(line); len(first) > 0 {
			pblock = first[0]
		}
		targets := lastTrailingPattern(line)
		return Command{Kind: KindProperty, Line: lineNo, Property: Property{Key: "pblock", Value: pblock, Targets: targets}}, true

	case "set", "top_module":
		if strings.HasPrefix(line, "set top_module") {
			parts := strings.Fields(line)
			if len(parts) == 3 {
				return Command{Kind: KindProperty, Line: lineNo, Property: Property{Key: "top_scope", Value: parts[2]}}, true
			}
		}
		return Command{}, false

	case "create_bd_cell":
		vlnv := f["vlnv"]
		parts := strings.Fields(line)
		inst := ""
		if len(parts) > 0 {
			inst = parts[len(parts)-1]
		}
		return Command{Kind: KindProperty, Line: lineNo, Property: Property{Key: "bd_ip", Value: vlnv, Targets: []string{inst}}}, true

	default:
		return Command{}, false
	}
}

func parseSetProperty(line string, lineNo int) (Command, bool) {
	parts := strings.Fields(line)
	if len(parts) < 3 {
		return Command{}, false
	}
	key := parts[1]

	if key == "top" {
		return Command{Kind: KindProperty, Line: lineNo, Property: Property{Key: "top_scope", Value: parts[2]}}, true
	}

	value := parts[2]
	targets := trailingPatterns(line)
	return Command{Kind: KindProperty, Line: lineNo, Property: Property{Key: key, Value: value, Targets: targets}}, true
}

func firstNumericArg(line string) string {
	for _, tok := range strings.Fields(line) {
		if _, err := strconv.ParseFloat(tok, 64); err == nil {
			return tok
		}
	}
	return ""
}

func trailingPatterns(line string) []string {
	m := patternRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	raw := m[1]
	if raw == "" {
		raw = m[2]
	}
	return patternArgs(raw)
}

// lastTrailingPattern returns the final get_* selector group on the line,
// for directives like add_cells_to_pblock that name more than one.
func lastTrailingPattern(line string) []string {
	matches := patternRe.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		return nil
	}
	m := matches[len(matches)-1]
	raw := m[1]
	if raw == "" {
		raw = m[2]
	}
	return patternArgs(raw)
}
