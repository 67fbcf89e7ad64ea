// Package timing ingests STA timing reports (Vivado/PrimeTime "Startpoint/
// Endpoint/Clock/Path Type" form, spec §4.6) and applies worst-case timing
// values to the graph through the field-source Updater at Analyzed priority.
package timing

// Stage is one row of a timing path's tabular point list.
type Stage struct {
	Point            string
	IncrDelay        float64
	CumulativeDelay  float64
	Transition       string // "r", "f", or empty
}

// PathType distinguishes setup/hold analysis.
type PathType string

const (
	PathTypeSetup PathType = "Setup"
	PathTypeHold  PathType = "Hold"
)

// Path is one parsed timing path from an STA report.
type Path struct {
	Startpoint   string `validate:"required"`
	Endpoint     string `validate:"required"`
	Clock        string
	PathType     PathType
	Slack        *float64
	ArrivalTime  *float64
	RequiredTime *float64
	Stages       []Stage
}
