package cmd

import (
	"fmt"

	"github.com/docker/go-units"
	"github.com/fatih/color"

	"github.com/oneconcern/texpack/pkg/core"
	"github.com/oneconcern/texpack/pkg/model"
)

func succeeded(outcomes []core.Outcome) int {
	var n int
	for _, outcome := range outcomes {
		if outcome.Err == nil {
			n++
		}
	}
	return n
}

// printSummary prints a colored outline of a run on stdout
func printSummary(report *core.Report) {
	if report == nil {
		return
	}
	for _, outcome := range report.Failures() {
		infoLogger.Println(color.RedString("%s job %q failed after %s: %v",
			outcome.Kind, outcome.Name, units.HumanDuration(outcome.Duration), outcome.Err))
	}

	line := fmt.Sprintf("%d/%d %s, %d/%d %s",
		succeeded(report.Unpacked), len(report.Unpacked), model.KindUnpack,
		succeeded(report.Packed), len(report.Packed), model.KindPack,
	)
	if len(report.Failures()) > 0 {
		infoLogger.Println(color.YellowString("done with failures: %s", line))
		return
	}
	infoLogger.Println(color.GreenString("done: %s", line))
}
