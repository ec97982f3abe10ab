package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Event types
const (
	TypeStep  = "step"
	TypeInfo  = "info"
	TypeFile  = "file"
	TypeDone  = "done"
	TypeError = "error"
)

// Event represents a single progress update during a demo run.
type Event struct {
	Type      string `json:"type"`                 // one of the Type* constants
	Step      int    `json:"step,omitempty"`       // current pipeline step
	MaxStep   int    `json:"max,omitempty"`        // number of pipeline steps
	Message   string `json:"message,omitempty"`    // human-readable message
	Path      string `json:"path,omitempty"`       // written file (for "file" type)
	ElapsedMs int    `json:"elapsed_ms,omitempty"` // run duration (for "done" type)
}

// Emitter receives progress events during a run.
type Emitter interface {
	Emit(event Event)
}

// TextEmitter formats progress events as human-readable text for CLI output.
// On a terminal it shows a spinner while a step is running.
type TextEmitter struct {
	w    io.Writer
	spin *spinner.Spinner
}

// NewTextEmitter returns an emitter writing to w
func NewTextEmitter(w io.Writer) *TextEmitter {
	e := &TextEmitter{w: w}
	if isTerminal(w) {
		e.spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	}
	return e
}

// Emit writes a formatted progress line to the underlying writer.
func (e *TextEmitter) Emit(ev Event) {
	e.stopSpinner()

	switch ev.Type {
	case TypeStep:
		fmt.Fprintf(e.w, "[step %d/%d] %s\n", ev.Step, ev.MaxStep, ev.Message)
		e.startSpinner(ev.Message)
	case TypeInfo:
		fmt.Fprintf(e.w, "  %s\n", ev.Message)
	case TypeFile:
		green := color.New(color.FgGreen)
		_, _ = green.Fprint(e.w, "  Saved ")
		fmt.Fprintln(e.w, ev.Path)
	case TypeDone:
		fmt.Fprintf(e.w, "Done in %s\n", formatDuration(ev.ElapsedMs))
	case TypeError:
		red := color.New(color.FgRed)
		_, _ = red.Fprintf(e.w, "Error: %s\n", ev.Message)
	}
}

// Close stops the spinner if one is running.
func (e *TextEmitter) Close() {
	e.stopSpinner()
}

func (e *TextEmitter) startSpinner(msg string) {
	if e.spin == nil {
		return
	}
	e.spin.Suffix = " " + msg
	e.spin.Start()
}

func (e *TextEmitter) stopSpinner() {
	if e.spin != nil && e.spin.Active() {
		e.spin.Stop()
	}
}

func formatDuration(ms int) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
