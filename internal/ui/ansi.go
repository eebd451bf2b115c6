package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	strike = "\033[9m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"

	symCheck = "✔"
	symCross = "✖"
)

var (
	forceColor   bool
	disableColor bool
)

// SetColorMode applies ui.color: "always" forces escapes, "never" strips
// them, anything else colors only when stdout is a terminal.
func SetColorMode(mode string) {
	switch strings.ToLower(mode) {
	case "always":
		forceColor, disableColor = true, false
	case "never":
		forceColor, disableColor = false, true
	default:
		forceColor, disableColor = false, false
	}
}

func isTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// C wraps s in color when coloring is on.
func C(color, s string) string {
	if disableColor || color == "" {
		return s
	}
	if forceColor || isTTY() {
		return color + s + reset
	}
	return s
}

func OK(w io.Writer, msg string)   { fmt.Fprintln(w, C(fgGreen, symCheck+" "+msg)) }
func Fail(w io.Writer, msg string) { fmt.Fprintln(w, C(fgRed, symCross+" "+msg)) }
