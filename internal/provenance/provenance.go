// Package provenance tracks the origin of every derived graph entity: which
// file/line produced it, which pipeline stage, and how confident that
// derivation is. Records are append-only; merging recomputes a representative
// "primary" without discarding any record.
package provenance

// ToolStage identifies which pipeline stage produced a record.
type ToolStage string

const (
	StageRTL        ToolStage = "rtl"
	StageSynth      ToolStage = "synth"
	StageTiming     ToolStage = "timing"
	StageConstraint ToolStage = "constraint"
)

// Confidence indicates how the record was derived.
type Confidence string

const (
	ConfidenceExact    Confidence = "exact"
	ConfidenceInferred Confidence = "inferred"
)

// Record is a single (file, line, stage, confidence) provenance tuple.
type Record struct {
	OriginFile string
	OriginLine int // 0 means absent
	Stage      ToolStage
	Confidence Confidence
}

// HasLine reports whether OriginLine was set.
func (r Record) HasLine() bool { return r.OriginLine > 0 }

// List is an append-only provenance trail with a designated primary.
type List struct {
	Primary Record
	All     []Record
	hasAny  bool
}

// Add appends p to the list, promoting it to primary if requested or if the
// list was previously empty.
func Add(l *List, p Record, makePrimary bool) {
	l.All = append(l.All, p)
	if makePrimary || !l.hasAny {
		l.Primary = p
		l.hasAny = true
	}
}

// Merge concatenates the provenance lists of items, in input order, and
// derives a new primary: the first non-empty origin file, the minimum
// observed line, stage "rtl", confidence "inferred" — this models the
// provenance of the *merge* operation itself, not any one input.
func Merge(items []List) (primary Record, all []Record) {
	for _, it := range items {
		all = append(all, it.All...)
	}

	primary = Record{Stage: StageRTL, Confidence: ConfidenceInferred}
	minLine := 0
	for _, r := range all {
		if primary.OriginFile == "" && r.OriginFile != "" {
			primary.OriginFile = r.OriginFile
		}
		if r.HasLine() && (minLine == 0 || r.OriginLine < minLine) {
			minLine = r.OriginLine
		}
	}
	primary.OriginLine = minLine
	return primary, all
}
