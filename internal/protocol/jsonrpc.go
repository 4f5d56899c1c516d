package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"strconv"
)

// ReadMessage reads one Content-Length framed payload from r. The
// header block is MIME-shaped, so parsing defers to net/textproto;
// headers other than Content-Length are accepted and ignored.
func ReadMessage(r *bufio.Reader) ([]byte, error) {
	header, err := textproto.NewReader(r).ReadMIMEHeader()
	if err != nil {
		return nil, err
	}
	value := header.Get("Content-Length")
	if value == "" {
		return nil, errors.New("missing Content-Length header")
	}
	length, err := strconv.Atoi(value)
	if err != nil || length < 0 {
		return nil, fmt.Errorf("invalid Content-Length %q", value)
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// WriteMessage frames payload with a Content-Length header. Callers
// provide their own locking; two interleaved writers corrupt the
// stream.
func WriteMessage(w io.Writer, payload []byte) error {
	if _, err := fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(payload)); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}
