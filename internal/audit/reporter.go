package audit

import (
	"fmt"

	"github.com/pterm/pterm"
)

var severityPrinters = map[Severity]*pterm.PrefixPrinter{
	SeverityInfo:   &pterm.Info,
	SeverityLow:    &pterm.Debug,
	SeverityMedium: &pterm.Warning,
	SeverityHigh:   &pterm.Error,
}

// Print renders the report to the terminal.
func Print(report *Report) {
	name := report.Provider
	if name == "" {
		name = "(none)"
	}
	pterm.DefaultSection.Printfln("Audit: provider %s", name)

	for _, issue := range report.Issues {
		// pterm.Fatal would exit the process, so critical findings get
		// Error styling with an explicit tag instead.
		if issue.Severity == SeverityCritical {
			pterm.Error.Printfln("[CRITICAL] %s: %s", issue.Check, issue.Message)
		} else {
			printer, ok := severityPrinters[issue.Severity]
			if !ok {
				printer = &pterm.Info
			}
			printer.Printfln("%s: %s", issue.Check, issue.Message)
		}
		if issue.Recommendation != "" {
			pterm.Println(pterm.Gray("    " + issue.Recommendation))
		}
	}

	pterm.Println()
	pterm.Printfln("Score: %s", scoreLabel(report.Score))
	if report.HasBlocking() {
		pterm.Warning.Println("Resolve high and critical findings before going to production")
	}
}

func scoreLabel(score int) string {
	label := fmt.Sprintf("%d/100", score)
	switch {
	case score >= 80:
		return pterm.LightGreen(label)
	case score >= 50:
		return pterm.Yellow(label)
	default:
		return pterm.Red(label)
	}
}
