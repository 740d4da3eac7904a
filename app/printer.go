package app

import (
	"fmt"
	"io"
	"os"
)

const (
	ansiReset  = "\x1b[0m"
	ansiYellow = "\x1b[33m"
	ansiRed    = "\x1b[31m"
	ansiDim    = "\x1b[2m"
)

// Printer writes leveled, printf-style messages, with ANSI color when the
// destination supports it. Info goes to out; warnings and errors to errOut.
type Printer struct {
	color  bool
	out    io.Writer
	errOut io.Writer
}

func NewPrinter(color bool, out, errOut io.Writer) *Printer {
	return &Printer{color: color, out: out, errOut: errOut}
}

func (p *Printer) print(w io.Writer, ansi, prefix, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.color && ansi != "" {
		fmt.Fprintf(w, "%s%s%s%s\n", ansi, prefix, msg, ansiReset)
	} else {
		fmt.Fprintf(w, "%s%s\n", prefix, msg)
	}
}

func (p *Printer) Infof(format string, args ...any) {
	p.print(p.out, "", "", format, args...)
}

func (p *Printer) Debugf(format string, args ...any) {
	p.print(p.out, ansiDim, "", format, args...)
}

func (p *Printer) Warnf(format string, args ...any) {
	p.print(p.errOut, ansiYellow, "warning: ", format, args...)
}

func (p *Printer) Errorf(format string, args ...any) {
	p.print(p.errOut, ansiRed, "error: ", format, args...)
}

// Fatalf reports the error and exits.
func (p *Printer) Fatalf(format string, args ...any) {
	p.Errorf(format, args...)
	os.Exit(1)
}
