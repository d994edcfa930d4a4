package install

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/adamwoolhether/appinstall/client"
)

// Console writes human-readable status lines, including the in-place
// download progress line.
type Console struct {
	w          io.Writer
	status     *color.Color
	success    *color.Color
	warn       *color.Color
	inProgress bool
}

// NewConsole returns a Console writing to w.
func NewConsole(w io.Writer, noColor bool) *Console {
	c := Console{
		w:       w,
		status:  color.New(color.FgCyan),
		success: color.New(color.FgGreen, color.Bold),
		warn:    color.New(color.FgYellow),
	}

	if noColor {
		c.status.DisableColor()
		c.success.DisableColor()
		c.warn.DisableColor()
	}

	return &c
}

// Println writes msg unstyled.
func (c *Console) Println(msg string) {
	c.endProgress()
	fmt.Fprintln(c.w, msg)
}

// Status writes a step announcement.
func (c *Console) Status(format string, args ...any) {
	c.endProgress()
	c.status.Fprintf(c.w, format+"\n", args...)
}

// Success writes a step completion.
func (c *Console) Success(format string, args ...any) {
	c.endProgress()
	c.success.Fprintf(c.w, format+"\n", args...)
}

// Warn writes a non-fatal problem.
func (c *Console) Warn(format string, args ...any) {
	c.endProgress()
	c.warn.Fprintf(c.w, format+"\n", args...)
}

// Progress overwrites the current line with the byte count and percentage.
func (c *Console) Progress(p client.Progress) {
	c.inProgress = true
	fmt.Fprintf(c.w, "\r%10d  [%3.2f%%]", p.Transferred, p.Percent())
}

// endProgress terminates a pending progress line.
func (c *Console) endProgress() {
	if c.inProgress {
		c.inProgress = false
		fmt.Fprintln(c.w)
	}
}
