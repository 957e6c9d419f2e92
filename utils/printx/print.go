package printx

import (
	"fmt"
	"io"
	"strings"
)

type Color string

const (
	ColorGray   Color = "\x1b[90m"
	ColorYellow Color = "\x1b[33m"
	ColorRed    Color = "\x1b[31m"
	colorReset  Color = "\x1b[0m"
)

func FprintStandardHeader(w io.Writer, header string) {
	hBar := strings.Repeat("-", 80)
	fmt.Fprintln(w, "\n"+hBar+"\n"+header+"\n"+hBar)
}

func FprintInColor(w io.Writer, color Color, text string) {
	fmt.Fprintln(w, string(color)+text+string(colorReset))
}
