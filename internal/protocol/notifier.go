package protocol

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
)

// Notifier delivers one outbound notification. Implementations must be
// safe for concurrent use: the compile reporter calls Notify from
// multiple worker goroutines without holding any lock of its own.
type Notifier interface {
	Notify(method string, params any) error
}

type notification struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result"`
}

type errorResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Error   *ResponseError  `json:"error"`
}

// ConnNotifier writes framed JSON-RPC traffic to one connection.
// A single mutex covers notifications and responses so concurrent
// senders never interleave frames.
type ConnNotifier struct {
	mu  sync.Mutex
	out *bufio.Writer
}

// NewConnNotifier wraps w in a framed JSON-RPC writer.
func NewConnNotifier(w io.Writer) *ConnNotifier {
	return &ConnNotifier{out: bufio.NewWriter(w)}
}

// Notify sends one notification.
func (n *ConnNotifier) Notify(method string, params any) error {
	return n.send(notification{JSONRPC: "2.0", Method: method, Params: params})
}

// Respond sends a successful response for id.
func (n *ConnNotifier) Respond(id json.RawMessage, result any) error {
	return n.send(response{JSONRPC: "2.0", ID: id, Result: result})
}

// RespondError sends an error response for id.
func (n *ConnNotifier) RespondError(id json.RawMessage, code int, message string) error {
	return n.send(errorResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &ResponseError{Code: code, Message: message},
	})
}

func (n *ConnNotifier) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := WriteMessage(n.out, payload); err != nil {
		return err
	}
	return n.out.Flush()
}
