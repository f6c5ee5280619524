package logging

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"jse/common"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintErrorMessage prints a standard Go error to the console
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintWarningMessage prints a warning message to the console
func PrintWarningMessage(tag, msg string) {
	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + msg)
}

// PrintInfoMessage prints an informational message to the user
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// -----------------------------------------------------------------------------
// Message display.  Runtime messages get a banner naming their kind and
// origin; configuration messages are a single tagged line.

func (ce *ConfigError) display() {
	PrintErrorMessage(ce.Kind+" Error", errors.New(ce.Message))
}

func (cw *ConfigWarning) display() {
	PrintWarningMessage(cw.Kind+" Warning", cw.Message)
}

var runtimeMsgStrings = map[int]string{
	LMKLoad:   "Load",
	LMKCycle:  "Dependency",
	LMKAccess: "Access",
	LMKName:   "Name",
	LMKThis:   "Receiver",
	LMKUsage:  "Usage",
	LMKScript: "Script",
}

func (rm *RuntimeMessage) display() {
	rm.displayBanner()
	fmt.Println(rm.Message)
}

// displayBanner displays the banner on top of a runtime message:
// `-- <Kind> Error ------ <origin>`
func (rm *RuntimeMessage) displayBanner() {
	title, style := runtimeMsgStrings[rm.Kind]+" Warning", WarnStyleBG
	if rm.isError() {
		title, style = runtimeMsgStrings[rm.Kind]+" Error", ErrorStyleBG
	}

	origin := shortenOrigin(rm.Origin)

	width := pterm.GetTerminalWidth() / 2
	if width > 50 {
		width = 50
	}

	rule := width - len(title) - len(origin) - 1
	if rule < 2 {
		rule = 2
	}

	fmt.Print("\n-- ")
	style.Print(title)
	fmt.Print(" " + strings.Repeat("-", rule) + " ")
	InfoColorFG.Println(origin)
}

// shortenOrigin makes file origins relative to the root path of the logger
func shortenOrigin(origin string) string {
	if logger.rootPath == "" || !filepath.IsAbs(origin) {
		return origin
	}

	if rel, err := filepath.Rel(logger.rootPath, origin); err == nil {
		return rel
	}

	return origin
}

// -----------------------------------------------------------------------------

// DisplayHeader displays the engine information before a command runs
func DisplayHeader(command string) {
	if logger.LogLevel < LogLevelVerbose {
		return
	}

	fmt.Print("jse ")
	InfoColorFG.Print("v" + common.JSEVersion)
	fmt.Print(" -- command: ")
	InfoColorFG.Println(command)
}

// phase is the phase of work currently shown by a spinner
type phase struct {
	name    string
	spinner *pterm.SpinnerPrinter
	started time.Time
}

var current *phase

// phaseColumn is the width of the phase name column
const phaseColumn = len("Resolving") + 5

// phaseLabel pads a phase label to the phase column
func phaseLabel(label string) string {
	if len(label) >= phaseColumn {
		return label + " "
	}

	return label + strings.Repeat(" ", phaseColumn-len(label))
}

// prefixPrinter creates the printer of a spinner outcome
func prefixPrinter(style *pterm.Style, text string) *pterm.PrefixPrinter {
	return &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix:       pterm.Prefix{Style: style, Text: text},
	}
}

// displayBeginPhase starts the spinner of a phase
func displayBeginPhase(name string) {
	sp := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))
	sp.SuccessPrinter = prefixPrinter(SuccessStyleBG, "Done")
	sp.FailPrinter = prefixPrinter(ErrorStyleBG, "Fail")

	current = &phase{name: name, spinner: sp, started: time.Now()}
	sp.Start(phaseLabel(name + "..."))
}

// displayEndPhase stops the spinner of the current phase if there is one
func displayEndPhase(success bool) {
	if current == nil {
		return
	}

	label := phaseLabel(current.name)
	if success {
		current.spinner.Success(label, fmt.Sprintf("(%.3fs)", time.Since(current.started).Seconds()))
	} else {
		current.spinner.Fail(label)
	}

	current = nil
}

// displayCount prints a count followed by its noun, colored if non-zero
func displayCount(n int, noun string, color pterm.Color) {
	if n == 0 {
		color = SuccessColorFG
	}

	color.Print(n)
	if n == 1 {
		fmt.Print(" " + noun)
	} else {
		fmt.Print(" " + noun + "s")
	}
}

// displayFinished displays the closing message
func displayFinished(success bool, errorCount, warningCount int) {
	if success {
		SuccessColorFG.Print("\nFinished ")
	} else {
		ErrorColorFG.Print("\nFailed ")
	}

	fmt.Print("(")
	displayCount(errorCount, "error", ErrorColorFG)
	fmt.Print(", ")
	displayCount(warningCount, "warning", WarnColorFG)
	fmt.Println(")")
}
