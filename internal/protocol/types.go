package protocol

import "encoding/json"

// Notification methods emitted by the build server.
const (
	MethodPublishDiagnostics = "build/publishDiagnostics"
	MethodTaskStart          = "build/taskStart"
	MethodTaskFinish         = "build/taskFinish"
)

// Data kinds attached to task notifications.
const (
	DataKindCompileTask   = "compile-task"
	DataKindCompileReport = "compile-report"
)

// Message is one JSON-RPC 2.0 message, request or response.
type Message struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *ResponseError  `json:"error,omitempty"`
}

// ResponseError is the error member of a failed response.
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// TaskID correlates every notification belonging to one task.
type TaskID struct {
	ID      string   `json:"id"`
	Parents []string `json:"parents,omitempty"`
}

// StatusCode is the coarse outcome of a finished task.
type StatusCode int

const (
	StatusOK        StatusCode = 1
	StatusError     StatusCode = 2
	StatusCancelled StatusCode = 3
)

func (s StatusCode) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusError:
		return "error"
	case StatusCancelled:
		return "cancelled"
	}
	return "unknown"
}

// DiagnosticSeverity follows the LSP numbering.
type DiagnosticSeverity int

const (
	SeverityError       DiagnosticSeverity = 1
	SeverityWarning     DiagnosticSeverity = 2
	SeverityInformation DiagnosticSeverity = 3
	SeverityHint        DiagnosticSeverity = 4
)

// Position is a 0-based line/character location.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Diagnostic is one positioned issue as the client sees it.
type Diagnostic struct {
	Range    Range              `json:"range"`
	Severity DiagnosticSeverity `json:"severity,omitempty"`
	Code     string             `json:"code,omitempty"`
	Source   string             `json:"source,omitempty"`
	Message  string             `json:"message"`
}

// TextDocumentIdentifier names one document by URI. Comparable, so it
// doubles as a map key for per-document state.
type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

// BuildTargetIdentifier names one build target by URI.
type BuildTargetIdentifier struct {
	URI string `json:"uri"`
}

// PublishDiagnosticsParams carries the complete current diagnostic set
// for one document. Reset is always true in this server: the payload
// replaces whatever the client holds for the document, it is not a
// delta.
type PublishDiagnosticsParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	BuildTarget  BuildTargetIdentifier  `json:"buildTarget"`
	OriginID     string                 `json:"originId,omitempty"`
	Diagnostics  []Diagnostic           `json:"diagnostics"`
	Reset        bool                   `json:"reset"`
}

// TaskStartParams announces that a task began.
type TaskStartParams struct {
	TaskID    TaskID `json:"taskId"`
	EventTime int64  `json:"eventTime,omitempty"`
	Message   string `json:"message,omitempty"`
	DataKind  string `json:"dataKind,omitempty"`
	Data      any    `json:"data,omitempty"`
}

// TaskFinishParams announces that a task completed with a status.
type TaskFinishParams struct {
	TaskID    TaskID     `json:"taskId"`
	EventTime int64      `json:"eventTime,omitempty"`
	Status    StatusCode `json:"status"`
	Message   string     `json:"message,omitempty"`
	DataKind  string     `json:"dataKind,omitempty"`
	Data      any        `json:"data,omitempty"`
}

// CompileTask is the data payload of a compile taskStart.
type CompileTask struct {
	Target BuildTargetIdentifier `json:"target"`
}

// CompileReport is the data payload of a compile taskFinish.
type CompileReport struct {
	Target   BuildTargetIdentifier `json:"target"`
	OriginID string                `json:"originId,omitempty"`
	Errors   int32                 `json:"errors"`
	Warnings int32                 `json:"warnings"`
	Time     int64                 `json:"time,omitempty"`
}
