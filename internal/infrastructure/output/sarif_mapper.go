package output

import (
	"path/filepath"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"
	"github.com/reglet-dev/lintgate/internal/domain/execution"
)

// exitRuleID is the rule used when the run failed without parseable findings.
const exitRuleID = "lintgate/exit-status"

type sarifMapper struct {
	result   *execution.InvocationResult
	findings []Finding
	rules    map[string]bool
}

func newSARIFMapper(result *execution.InvocationResult) *sarifMapper {
	return &sarifMapper{
		result:   result,
		findings: ParseFindings(result.Output()),
		rules:    make(map[string]bool),
	}
}

// mapToRun populates the SARIF run with rules, results and the invocation.
func (m *sarifMapper) mapToRun(run *sarif.Run) {
	m.addResults(run)
	m.addInvocation(run)
}

func (m *sarifMapper) addResults(run *sarif.Run) {
	for _, finding := range m.findings {
		ruleID := finding.Code
		if ruleID == "" {
			ruleID = m.result.Tool()
		}
		m.addRule(run, ruleID)

		res := sarif.NewRuleResult(ruleID)
		res.Level = levelForCode(finding.Code)
		res.Message = sarif.NewTextMessage(finding.Message)
		res.Locations = []*sarif.Location{m.location(finding)}
		run.AddResult(res)
	}

	// A failing run with nothing parseable is still a result.
	if len(m.findings) == 0 && !m.result.Outcome().IsClean() {
		m.addRule(run, exitRuleID)

		res := sarif.NewRuleResult(exitRuleID)
		res.Level = "error"
		res.Message = sarif.NewTextMessage(m.result.Outcome().Banner(m.result.Tool()) + "\n" + m.result.Output())
		props := sarif.NewPropertyBag()
		props.Add("exitCode", m.result.ExitCode().Int())
		res.WithProperties(props)
		run.AddResult(res)
	}
}

func (m *sarifMapper) addRule(run *sarif.Run, id string) {
	if m.rules[id] {
		return
	}
	m.rules[id] = true

	rule := sarif.NewReportingDescriptor().WithID(id)
	rule.WithName(id)
	run.Tool.Driver.AddRule(rule)
}

func (m *sarifMapper) location(f Finding) *sarif.Location {
	pLoc := sarif.NewPhysicalLocation().
		WithArtifactLocation(sarif.NewArtifactLocation().WithURI(filepath.ToSlash(f.Path)))

	if f.Line > 0 {
		region := sarif.NewRegion().WithStartLine(f.Line)
		// pylint columns are 0-based; SARIF columns are 1-based
		if f.Column >= 0 {
			region.WithStartColumn(f.Column + 1)
		}
		pLoc.WithRegion(region)
	}

	return sarif.NewLocation().WithPhysicalLocation(pLoc)
}

// addInvocation adds execution metadata to the run.
func (m *sarifMapper) addInvocation(run *sarif.Run) {
	invocation := sarif.NewInvocation()

	invocation.ExecutionSuccessful = ptrBool(m.result.Outcome().IsClean())

	startTime := m.result.StartTime().UTC().Format("2006-01-02T15:04:05.000Z")
	endTime := m.result.EndTime().UTC().Format("2006-01-02T15:04:05.000Z")
	invocation.StartTimeUtc = &startTime
	invocation.EndTimeUtc = &endTime

	props := sarif.NewPropertyBag()
	props.Add("runId", m.result.RunID().String())
	props.Add("exitCode", m.result.ExitCode().Int())
	props.Add("arguments", m.result.Args())
	props.Add("truncated", m.result.Truncated())
	invocation.WithProperties(props)

	run.AddInvocation(invocation)
}

// levelForCode maps pylint message categories to SARIF levels.
// Codes from other tools fall back to "warning".
func levelForCode(code string) string {
	if code == "" {
		return "warning"
	}
	switch code[0] {
	case 'F', 'E':
		return "error"
	case 'W':
		return "warning"
	case 'C', 'R', 'I':
		return "note"
	default:
		return "warning"
	}
}
