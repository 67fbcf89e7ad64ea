package analysis

import "github.com/nandgate/hwdkg/internal/graphmodel"

// Severity is the closed set of alert severities.
type Severity string

const (
	SeverityError Severity = "Error"
	SeverityWarn  Severity = "Warn"
)

// Alert is generated outside the graph — it is never stored on a
// SuperNode/SuperEdge, only returned to the caller as a standalone list.
type Alert struct {
	SuperNodeID string
	Severity    Severity
	Reason      string
	Metrics     TimingNodeMetrics
}

// Thresholds configures GenerateAlerts. Both values are compared as given,
// zero included; no defaults are substituted.
type Thresholds struct {
	CriticalSlackNS float64
	WarnSlackNS     float64
}

// GenerateAlerts walks every super-node carrying a timing bundle and emits
// an Error alert when min_slack is below the critical threshold, or a Warn
// alert when min_slack is below the warn threshold or the risk score
// exceeds 10 (spec §4.8). A super-node can contribute at most one alert —
// Error takes priority over Warn.
func GenerateAlerts(sg *graphmodel.SuperGraph, th Thresholds) []Alert {
	var alerts []Alert

	for id, sn := range sg.SuperNodes {
		bundle, ok := sn.Analysis[graphmodel.AnalysisKindTiming]
		if !ok {
			continue
		}
		m, ok := bundle.(TimingNodeMetrics)
		if !ok || m.MinSlack == nil {
			continue
		}

		switch {
		case *m.MinSlack < th.CriticalSlackNS:
			alerts = append(alerts, Alert{SuperNodeID: id, Severity: SeverityError, Reason: "min_slack below critical threshold", Metrics: m})
		case *m.MinSlack < th.WarnSlackNS:
			alerts = append(alerts, Alert{SuperNodeID: id, Severity: SeverityWarn, Reason: "min_slack below warn threshold", Metrics: m})
		case m.TimingRiskScore > 10:
			alerts = append(alerts, Alert{SuperNodeID: id, Severity: SeverityWarn, Reason: "timing_risk_score exceeds 10", Metrics: m})
		}
	}

	return alerts
}
