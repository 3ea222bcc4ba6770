package display

import (
	"fmt"
	"io"

	"github.com/backmassage/glbcrunch/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner(w io.Writer) {
	if term.Enabled() {
		fmt.Fprint(w, term.Magenta)
	}
	fmt.Fprint(w, `       _ _
  __ _| | |__   ___ _ __ _   _ _ __   ___| |__
 / _`+"`"+` | | '_ \ / __| '__| | | | '_ \ / __| '_ \
| (_| | | |_) | (__| |  | |_| | | | | (__| | | |
 \__, |_|_.__/ \___|_|   \__,_|_| |_|\___|_| |_|
 |___/
`)
	if term.Enabled() {
		fmt.Fprintln(w, term.NC)
	}
}
