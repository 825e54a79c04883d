package report

import (
	"fmt"
	"io"
	"strings"

	messages "github.com/cucumber/messages/go/v21"

	"github.com/denizgursoy/tursu/pkg/results"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
)

// statusOrder lists the statuses a summary line mentions, worst first.
var statusOrder = []messages.TestStepResultStatus{
	results.Failed,
	results.Ambiguous,
	results.Undefined,
	results.Pending,
	results.Skipped,
	results.Passed,
}

func statusColor(status messages.TestStepResultStatus) string {
	switch status {
	case results.Passed:
		return colorGreen
	case results.Skipped, results.Pending:
		return colorYellow
	default:
		return colorRed
	}
}

// ConsoleWriter renders a Summary as the closing lines of a console run.
type ConsoleWriter struct {
	out       io.Writer
	useColors bool
}

func NewConsoleWriter(out io.Writer, useColors bool) *ConsoleWriter {
	return &ConsoleWriter{out: out, useColors: useColors}
}

func (w *ConsoleWriter) color(c, s string) string {
	if w.useColors {
		return c + s + colorReset
	}

	return s
}

// WriteSummary prints the scenario and step tallies with colored status
// breakdowns, worst statuses first.
func (w *ConsoleWriter) WriteSummary(summary Summary) {
	fmt.Fprintln(w.out)

	scenarioLine := w.tallyLine("scenario(s)", summary.CasesTotal, summary.CasesByStatus)
	if summary.RetriedCases > 0 {
		scenarioLine += fmt.Sprintf(", %d retried", summary.RetriedCases)
	}
	fmt.Fprintln(w.out, scenarioLine)
	fmt.Fprintln(w.out, w.tallyLine("step(s)", summary.StepsTotal, summary.StepsByStatus))
}

func (w *ConsoleWriter) tallyLine(noun string, total int, byStatus map[messages.TestStepResultStatus]int) string {
	line := fmt.Sprintf("%d %s", total, noun)

	parts := make([]string, 0, len(statusOrder))
	for _, status := range statusOrder {
		if count := byStatus[status]; count > 0 {
			label := fmt.Sprintf("%d %s", count, strings.ToLower(string(status)))
			parts = append(parts, w.color(statusColor(status), label))
		}
	}
	if len(parts) > 0 {
		line += " (" + strings.Join(parts, ", ") + ")"
	}

	return line
}
