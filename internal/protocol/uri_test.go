package protocol

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestFileURIRoundtrip(t *testing.T) {
	path, err := filepath.Abs(filepath.Join("testdata", "main file.vd"))
	if err != nil {
		t.Fatalf("abs: %v", err)
	}

	uri := FileURI(path)
	if !strings.HasPrefix(uri, "file://") {
		t.Fatalf("expected file scheme, got %q", uri)
	}
	if got := URIPath(uri); got != path {
		t.Fatalf("roundtrip mismatch: %q != %q", got, path)
	}
}

func TestURIPathRejectsOtherSchemes(t *testing.T) {
	if got := URIPath("https://example.com/a.vd"); got != "" {
		t.Fatalf("expected empty path, got %q", got)
	}
}

func TestURIPathDropsAuthority(t *testing.T) {
	if got := URIPath("file://localhost/srv/app.vd"); got != "/srv/app.vd" {
		t.Fatalf("expected /srv/app.vd, got %q", got)
	}
	if got := URIPath("file://hostonly"); got != "" {
		t.Fatalf("expected empty path for authority without a path, got %q", got)
	}
}

func TestFileURIEmpty(t *testing.T) {
	if got := FileURI(""); got != "" {
		t.Fatalf("expected empty URI, got %q", got)
	}
}
