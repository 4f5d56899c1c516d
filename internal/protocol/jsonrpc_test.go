package protocol

import (
	"bufio"
	"bytes"
	"testing"
)

func TestJSONRPCFramingMultipleMessages(t *testing.T) {
	var buf bytes.Buffer
	msg1 := []byte(`{"jsonrpc":"2.0","method":"one"}`)
	msg2 := []byte(`{"jsonrpc":"2.0","method":"two"}`)

	if err := WriteMessage(&buf, msg1); err != nil {
		t.Fatalf("write message 1: %v", err)
	}
	if err := WriteMessage(&buf, msg2); err != nil {
		t.Fatalf("write message 2: %v", err)
	}

	reader := bufio.NewReader(bytes.NewReader(buf.Bytes()))
	got1, err := ReadMessage(reader)
	if err != nil {
		t.Fatalf("read message 1: %v", err)
	}
	got2, err := ReadMessage(reader)
	if err != nil {
		t.Fatalf("read message 2: %v", err)
	}

	if string(got1) != string(msg1) {
		t.Fatalf("unexpected message 1: %s", string(got1))
	}
	if string(got2) != string(msg2) {
		t.Fatalf("unexpected message 2: %s", string(got2))
	}
}

func TestReadMessageMissingContentLength(t *testing.T) {
	reader := bufio.NewReader(bytes.NewReader([]byte("X-Other: 1\r\n\r\n{}")))
	if _, err := ReadMessage(reader); err == nil {
		t.Fatalf("expected error for missing Content-Length")
	}
}

func TestReadMessageIgnoresExtraHeaders(t *testing.T) {
	raw := "Content-Type: application/vscode-jsonrpc\r\nContent-Length: 2\r\n\r\n{}"
	reader := bufio.NewReader(bytes.NewReader([]byte(raw)))
	payload, err := ReadMessage(reader)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(payload) != "{}" {
		t.Fatalf("unexpected payload %q", string(payload))
	}
}

func TestReadMessageRejectsBadLength(t *testing.T) {
	reader := bufio.NewReader(bytes.NewReader([]byte("Content-Length: nope\r\n\r\n{}")))
	if _, err := ReadMessage(reader); err == nil {
		t.Fatalf("expected error for malformed Content-Length")
	}
}
