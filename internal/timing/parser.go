package timing

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	startpointPattern = regexp.MustCompile(`Startpoint:\s+(\S+)`)
	endpointPattern   = regexp.MustCompile(`Endpoint:\s+(\S+)`)
	clockPattern      = regexp.MustCompile(`clocked by (\w+)`)
	pathTypePattern   = regexp.MustCompile(`Path Type:\s+(\w+)`)
	slackPattern      = regexp.MustCompile(`(?i)slack.*?([-\d.]+)`)
	arrivalPattern    = regexp.MustCompile(`data arrival time\s+([\d.]+)`)
	requiredPattern   = regexp.MustCompile(`data required time\s+([\d.]+)`)
	tableHeaderSplit  = regexp.MustCompile(`Point\s+Incr\s+Path\s*\n\s*-+\s*\n`)
	tableLinePattern  = regexp.MustCompile(`^\s*(\S+(?:\s+\([^)]+\))?)\s+([-\d.]+)\s+([-\d.]+)\s*([rf])?`)
	parenSuffix       = regexp.MustCompile(`\s*\([^)]+\)`)
	startpointSplit   = regexp.MustCompile(`(?m)^Startpoint:`)
)

// ParseReport splits content on "Startpoint:" section boundaries and parses
// each section independently. Sections missing a Startpoint line are
// skipped rather than treated as a caller-visible error — spec §7 reserves
// hard errors for malformed input, and a trailing section header with no
// body is not malformed, just empty.
func ParseReport(content string) []Path {
	var paths []Path
	starts := startpointSplit.FindAllStringIndex(content, -1)
	for i, loc := range starts {
		end := len(content)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		if p, ok := parseSection(content[loc[0]:end]); ok {
			paths = append(paths, p)
		}
	}
	return paths
}

func parseSection(section string) (Path, bool) {
	startMatch := startpointPattern.FindStringSubmatch(section)
	if startMatch == nil {
		return Path{}, false
	}

	p := Path{Startpoint: startMatch[1], PathType: PathTypeSetup}

	if m := endpointPattern.FindStringSubmatch(section); m != nil {
		p.Endpoint = m[1]
	}
	if m := clockPattern.FindStringSubmatch(section); m != nil {
		p.Clock = m[1]
	}
	if m := pathTypePattern.FindStringSubmatch(section); m != nil {
		p.PathType = PathType(m[1])
	}
	if m := slackPattern.FindStringSubmatch(section); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.Slack = &v
		}
	}
	if m := arrivalPattern.FindStringSubmatch(section); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.ArrivalTime = &v
		}
	}
	if m := requiredPattern.FindStringSubmatch(section); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.RequiredTime = &v
		}
	}

	parts := tableHeaderSplit.Split(section, 2)
	if len(parts) == 2 {
		tableEnd := strings.Index(parts[1], "data arrival time")
		table := parts[1]
		if tableEnd >= 0 {
			table = parts[1][:tableEnd]
		}
		p.Stages = parseTable(table)
	}

	return p, true
}

func parseTable(table string) []Stage {
	var stages []Stage
	for _, line := range strings.Split(table, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "-") {
			continue
		}
		m := tableLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		point := strings.TrimSpace(parenSuffix.ReplaceAllString(m[1], ""))
		incr, err1 := strconv.ParseFloat(m[2], 64)
		cum, err2 := strconv.ParseFloat(m[3], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		stages = append(stages, Stage{Point: point, IncrDelay: incr, CumulativeDelay: cum, Transition: m[4]})
	}
	return stages
}
