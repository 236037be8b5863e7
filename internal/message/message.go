// Package message prints operator facing status lines, kept apart from the
// structured log stream.
package message

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/praetorian-inc/netdump/version"
)

var (
	quiet     bool
	silent    bool
	noColor   = !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())
	mutex     sync.RWMutex
	outWriter io.Writer = os.Stdout
	errWriter io.Writer = os.Stderr

	infoColor    = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	bannerColor  = color.New(color.FgHiBlue, color.Bold)
)

// SetQuiet suppresses informational messages.
func SetQuiet(q bool) {
	mutex.Lock()
	defer mutex.Unlock()
	quiet = q
}

// SetSilent suppresses everything except critical messages.
func SetSilent(s bool) {
	mutex.Lock()
	defer mutex.Unlock()
	silent = s
}

func SetNoColor(nc bool) {
	mutex.Lock()
	defer mutex.Unlock()
	noColor = nc
	color.NoColor = nc
}

// SetOutput changes the writers used for regular and error messages.
// Useful for testing.
func SetOutput(out, errOut io.Writer) {
	mutex.Lock()
	defer mutex.Unlock()
	outWriter = out
	errWriter = errOut
}

func printf(w func() io.Writer, c *color.Color, prefix, format string, args ...any) {
	mutex.RLock()
	defer mutex.RUnlock()

	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(w(), "%s%s\n", prefix, msg)
	} else {
		c.Fprintf(w(), "%s%s\n", prefix, msg)
	}
}

func stdout() io.Writer { return outWriter }
func stderr() io.Writer { return errWriter }

func suppressed(level int) bool {
	mutex.RLock()
	defer mutex.RUnlock()
	switch level {
	case 0:
		return quiet || silent
	case 1:
		return silent
	}
	return false
}

// Info prints an informational message unless quiet/silent mode is enabled
func Info(format string, args ...any) {
	if suppressed(0) {
		return
	}
	printf(stdout, infoColor, "[*] ", format, args...)
}

// Success prints a success message unless quiet/silent mode is enabled
func Success(format string, args ...any) {
	if suppressed(0) {
		return
	}
	printf(stdout, successColor, "[+] ", format, args...)
}

// Warning prints a warning message unless silent mode is enabled
func Warning(format string, args ...any) {
	if suppressed(1) {
		return
	}
	printf(stdout, warningColor, "[!] ", format, args...)
}

// Error prints to the error writer unless silent mode is enabled
func Error(format string, args ...any) {
	if suppressed(1) {
		return
	}
	printf(stderr, errorColor, "[-] ", format, args...)
}

// Critical prints an error message that is never suppressed
func Critical(format string, args ...any) {
	printf(stderr, errorColor, "[!!] ", format, args...)
}

// Banner prints the tool name and version.
func Banner() {
	if suppressed(0) {
		return
	}
	mutex.RLock()
	defer mutex.RUnlock()
	if noColor {
		fmt.Fprintln(outWriter, version.FullVersion())
	} else {
		bannerColor.Fprintln(outWriter, version.FullVersion())
	}
}
