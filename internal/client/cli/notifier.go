package cli

import (
	"fmt"
	"io"
)

// ConsoleNotifier renders user-visible notifications on the terminal. It is
// the CLI's stand-in for toast popups: gateway failures and auth outcomes
// land here exactly once, independent of whatever the invoking command
// prints.
type ConsoleNotifier struct {
	w io.Writer
}

func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w}
}

func (n *ConsoleNotifier) Success(msg string) {
	fmt.Fprintf(n.w, "[ok] %s\n", msg)
}

func (n *ConsoleNotifier) Error(msg string) {
	fmt.Fprintf(n.w, "[error] %s\n", msg)
}
