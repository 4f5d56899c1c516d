package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"veld/internal/protocol"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	okColor      = color.New(color.FgGreen, color.Bold)
)

// consoleNotifier renders the reporter's notification stream for a
// terminal instead of a BSP client. Publishes carry the full
// accumulated set for a document, so it remembers how many diagnostics
// it already printed per document and only renders the tail.
type consoleNotifier struct {
	mu      sync.Mutex
	out     io.Writer
	quiet   bool
	printed map[string]int
}

func newConsoleNotifier(out io.Writer, quiet bool) *consoleNotifier {
	return &consoleNotifier{
		out:     out,
		quiet:   quiet,
		printed: make(map[string]int),
	}
}

// documents returns how many documents produced at least one publish.
func (c *consoleNotifier) documents() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.printed)
}

func (c *consoleNotifier) Notify(method string, params any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch method {
	case protocol.MethodPublishDiagnostics:
		c.renderPublish(params.(protocol.PublishDiagnosticsParams))
	case protocol.MethodTaskStart:
		if !c.quiet {
			fmt.Fprintln(c.out, params.(protocol.TaskStartParams).Message)
		}
	case protocol.MethodTaskFinish:
		c.renderFinish(params.(protocol.TaskFinishParams))
	}
	return nil
}

func (c *consoleNotifier) renderPublish(p protocol.PublishDiagnosticsParams) {
	path := protocol.URIPath(p.TextDocument.URI)
	if path == "" {
		path = p.TextDocument.URI
	}
	seen, known := c.printed[p.TextDocument.URI]
	if !known {
		c.printed[p.TextDocument.URI] = 0
	}
	if len(p.Diagnostics) <= seen {
		// Publishes from concurrent workers can arrive reordered, so a
		// payload may carry fewer diagnostics than are already on
		// screen. Everything in it was printed from a later snapshot.
		return
	}
	for _, d := range p.Diagnostics[seen:] {
		label := severityLabel(d.Severity)
		fmt.Fprintf(c.out, "%s:%d:%d %s", path, d.Range.Start.Line+1, d.Range.Start.Character, label)
		if d.Code != "" {
			fmt.Fprintf(c.out, " [%s]", d.Code)
		}
		fmt.Fprintf(c.out, ": %s\n", d.Message)
	}
	c.printed[p.TextDocument.URI] = len(p.Diagnostics)
}

func (c *consoleNotifier) renderFinish(p protocol.TaskFinishParams) {
	if c.quiet && p.Status == protocol.StatusOK {
		return
	}
	report, ok := p.Data.(protocol.CompileReport)
	if !ok {
		fmt.Fprintln(c.out, p.Message)
		return
	}
	verdict := okColor.Sprint("ok")
	if p.Status != protocol.StatusOK {
		verdict = errorColor.Sprint("failed")
	}
	fmt.Fprintf(c.out, "%s: %s (%d errors, %d warnings)\n",
		p.Message, verdict, report.Errors, report.Warnings)
}

func severityLabel(sev protocol.DiagnosticSeverity) string {
	switch sev {
	case protocol.SeverityError:
		return errorColor.Sprint("error")
	case protocol.SeverityWarning:
		return warningColor.Sprint("warning")
	case protocol.SeverityHint, protocol.SeverityInformation:
		return infoColor.Sprint("info")
	}
	return "note"
}
