// Package report translates compiler problems into Build Server
// Protocol notifications for one compile task.
//
// One Reporter instance covers exactly one task: it owns the
// per-document diagnostic lists, the severity counters and the
// start/finish latches, and is discarded after Finish. Compiler workers
// may call the logging entry points concurrently; every operation is
// synchronous and none of them blocks on another document's traffic.
package report

import (
	"sync/atomic"
	"time"

	"veld/internal/diag"
	"veld/internal/protocol"
)

// Options configures a Reporter for one compile task.
type Options struct {
	// Target is the build target being compiled; its URI also serves
	// as the document key for problems without a source file.
	Target protocol.BuildTargetIdentifier
	// DisplayName is the human-readable target name used in the
	// taskStart/taskFinish messages.
	DisplayName string
	TaskID      protocol.TaskID
	// OriginID, when non-empty, is echoed on every publish
	// notification and on the finish report.
	OriginID string
	// Logf receives transport failures. Nil means they are dropped:
	// delivery is the receiving side's concern, not the reporter's.
	Logf func(format string, args ...any)
}

// Reporter implements diag.Handler over a protocol.Notifier.
type Reporter struct {
	notifier protocol.Notifier
	target   protocol.BuildTargetIdentifier
	name     string
	taskID   protocol.TaskID
	originID string
	logf     func(format string, args ...any)

	docs      store
	counts    tally
	started   gate
	finished  gate
	startedAt atomic.Int64
}

// New constructs a Reporter delivering through n.
func New(n protocol.Notifier, opts Options) *Reporter {
	name := opts.DisplayName
	if name == "" {
		name = opts.Target.URI
	}
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Reporter{
		notifier: n,
		target:   opts.Target,
		name:     name,
		taskID:   opts.TaskID,
		originID: opts.OriginID,
		logf:     logf,
	}
}

// Start emits the task-start notification. Safe to call from any
// number of goroutines; exactly one notification goes out.
func (r *Reporter) Start() {
	if !r.started.fire() {
		return
	}
	now := time.Now().UnixMilli()
	r.startedAt.Store(now)
	r.notify(protocol.MethodTaskStart, protocol.TaskStartParams{
		TaskID:    r.taskID,
		EventTime: now,
		Message:   "compiling " + r.name,
		DataKind:  protocol.DataKindCompileTask,
		Data:      protocol.CompileTask{Target: r.target},
	})
}

// Finish emits the task-finish notification summarizing the problems
// observed so far. Exactly one notification goes out no matter how
// often or from how many goroutines it is called.
func (r *Reporter) Finish() {
	if !r.finished.fire() {
		return
	}
	errs := r.counts.errors.Load()
	warns := r.counts.warnings.Load()
	status := r.Status()
	now := time.Now().UnixMilli()
	var elapsed int64
	if begun := r.startedAt.Load(); begun > 0 && now > begun {
		elapsed = now - begun
	}
	r.notify(protocol.MethodTaskFinish, protocol.TaskFinishParams{
		TaskID:    r.taskID,
		EventTime: now,
		Status:    status,
		Message:   "compiled " + r.name,
		DataKind:  protocol.DataKindCompileReport,
		Data: protocol.CompileReport{
			Target:   r.target,
			OriginID: r.originID,
			Errors:   wireCount(errs),
			Warnings: wireCount(warns),
			Time:     elapsed,
		},
	})
}

// PrintSummary is kept for compatibility with the compiler driver
// contract; it simply finishes the task.
func (r *Reporter) PrintSummary() { r.Finish() }

// Finished reports whether the finish notification has been emitted.
func (r *Reporter) Finished() bool { return r.finished.done() }

// Status derives the task outcome from the problems observed so far.
func (r *Reporter) Status() protocol.StatusCode {
	if r.counts.errors.Load() > 0 {
		return protocol.StatusError
	}
	return protocol.StatusOK
}

func (r *Reporter) LogError(p diag.Problem)   { r.log(p, diag.SevError) }
func (r *Reporter) LogWarning(p diag.Problem) { r.log(p, diag.SevWarning) }
func (r *Reporter) LogInfo(p diag.Problem)    { r.log(p, diag.SevInfo) }

// FileVisited publishes the current, possibly empty, diagnostic set for
// path. Clean files still get a notification so the client can clear
// stale markers.
func (r *Reporter) FileVisited(path string) {
	doc := protocol.TextDocumentIdentifier{URI: protocol.FileURI(path)}
	r.publish(doc, r.docs.ensure(doc))
}

// log builds the diagnostic, appends it to the document's accumulated
// list, publishes the full list, and only then bumps the counter. The
// counter deliberately trails the publish; nothing may assume the
// opposite order.
func (r *Reporter) log(p diag.Problem, sev diag.Severity) {
	d := buildDiagnostic(p)
	doc := r.documentKey(p.Position)
	full := r.docs.append(doc, d)
	r.publish(doc, full)
	r.counts.bump(sev)
}

// documentKey resolves where a problem's diagnostics belong: the source
// file when the position names one, the target itself otherwise.
func (r *Reporter) documentKey(pos diag.Position) protocol.TextDocumentIdentifier {
	if pos.File != "" {
		return protocol.TextDocumentIdentifier{URI: protocol.FileURI(pos.File)}
	}
	return protocol.TextDocumentIdentifier{URI: r.target.URI}
}

func (r *Reporter) publish(doc protocol.TextDocumentIdentifier, diagnostics []protocol.Diagnostic) {
	r.notify(protocol.MethodPublishDiagnostics, protocol.PublishDiagnosticsParams{
		TextDocument: doc,
		BuildTarget:  r.target,
		OriginID:     r.originID,
		Diagnostics:  diagnostics,
		Reset:        true,
	})
}

func (r *Reporter) notify(method string, params any) {
	if err := r.notifier.Notify(method, params); err != nil {
		r.logf("failed to send %s: %v", method, err)
	}
}
