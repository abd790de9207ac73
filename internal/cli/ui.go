package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// statusOut receives status lines. It is stderr so that graph data written
// to stdout stays clean.
var statusOut io.Writer = os.Stderr

// Palette. Projects and prompts are teal, versions gray, conflicts red.
var (
	colorTeal  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorAmber = lipgloss.Color("220")
	colorRed   = lipgloss.Color("167")
	colorBlue  = lipgloss.Color("75")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorTeal)
	styleHighlight = lipgloss.NewStyle().Foreground(colorTeal)
	styleDim       = lipgloss.NewStyle().Foreground(colorDim)
	styleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	styleConflict  = lipgloss.NewStyle().Foreground(colorRed)
	styleCommand   = lipgloss.NewStyle().Foreground(colorBlue)
	styleSpinner   = lipgloss.NewStyle().Foreground(colorTeal)
)

// status is the kind of a one-line status message.
type status int

const (
	statusSuccess status = iota
	statusError
	statusWarning
	statusInfo
)

var statusMarks = [...]struct {
	icon  string
	style lipgloss.Style
}{
	statusSuccess: {"✓", lipgloss.NewStyle().Foreground(colorGreen)},
	statusError:   {"✗", lipgloss.NewStyle().Foreground(colorRed)},
	statusWarning: {"!", lipgloss.NewStyle().Foreground(colorAmber)},
	statusInfo:    {"›", lipgloss.NewStyle().Foreground(colorGray)},
}

func printStatus(kind status, format string, args ...any) {
	mark := statusMarks[kind]
	msg := fmt.Sprintf(format, args...)
	if kind == statusWarning {
		msg = mark.style.Render(msg)
	}
	fmt.Fprintln(statusOut, mark.style.Render(mark.icon)+" "+msg)
}

func printSuccess(format string, args ...any) { printStatus(statusSuccess, format, args...) }
func printError(format string, args ...any)   { printStatus(statusError, format, args...) }
func printWarning(format string, args ...any) { printStatus(statusWarning, format, args...) }
func printInfo(format string, args ...any)    { printStatus(statusInfo, format, args...) }

// printDetail prints an indented, dimmed line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints "→ path" for a file that was written.
func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+styleDim.Render("→")+" "+styleValue.Render(path))
}

// printStats prints "N nodes · M edges", adding the conflict count only when
// there are conflicts.
func printStats(nodes, edges, conflicts int) {
	parts := []string{
		styleDim.Render(fmt.Sprintf("%d nodes", nodes)),
		styleDim.Render(fmt.Sprintf("%d edges", edges)),
	}
	if conflicts > 0 {
		parts = append(parts, styleConflict.Render(fmt.Sprintf("%d conflicts", conflicts)))
	}
	fmt.Fprintln(statusOut, "  "+strings.Join(parts, styleDim.Render(" · ")))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(statusOut, styleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}
