package logger

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Logger writes leveled, colorized output for the CLI layer.
// Verbose enables info lines, Debug enables debug lines, and Quiet
// drops everything below error regardless of the other flags.
type Logger struct {
	Verbose bool
	Debug   bool
	Quiet   bool
}

func (l Logger) Infof(msg string, args ...any) {
	if l.Verbose && !l.Quiet {
		fmt.Fprintf(os.Stdout, color.GreenString("[info] ")+msg+"\n", args...)
	}
}

func (l Logger) Debugf(msg string, args ...any) {
	if l.Debug && !l.Quiet {
		fmt.Fprintf(os.Stdout, color.CyanString("[debug] ")+msg+"\n", args...)
	}
}

func (l Logger) Warnf(msg string, args ...any) {
	if !l.Quiet {
		fmt.Fprintf(os.Stderr, color.YellowString("[warn] ")+msg+"\n", args...)
	}
}

func (l Logger) Errorf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, color.RedString("[error] ")+msg+"\n", args...)
}

// ErrorfAndReturn logs the message at error level and returns it as an error,
// for RunE bodies that want the failure both on stderr and in the exit status.
// The format accepts %w so wrapped sentinels stay matchable with errors.Is.
func (l Logger) ErrorfAndReturn(msg string, args ...any) error {
	err := fmt.Errorf(msg, args...)
	l.Errorf("%v", err)
	return err
}
