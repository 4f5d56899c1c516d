package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"veld/internal/diag"
	"veld/internal/protocol"
)

func TestRangeForPointerOnly(t *testing.T) {
	pos := diag.NewPosition("a.vd")
	pos.Pointer = 4

	got := rangeFor(pos)

	want := protocol.Range{
		Start: protocol.Position{Line: 0, Character: 4},
		End:   protocol.Position{Line: 0, Character: 4},
	}
	require.Equal(t, want, got)
}

func TestRangeForLineCorrection(t *testing.T) {
	pos := diag.NewPosition("a.vd")
	pos.Line = 5

	got := rangeFor(pos)

	require.Equal(t, 4, got.Start.Line)
	require.Equal(t, 4, got.End.Line)
	require.Equal(t, 0, got.Start.Character)
	require.Equal(t, 0, got.End.Character)
}

func TestRangeForEndDefaultsToStart(t *testing.T) {
	pos := diag.NewPosition("a.vd")
	pos.StartLine = 3
	pos.StartCol = 7

	got := rangeFor(pos)

	require.Equal(t, got.Start, got.End)
	require.Equal(t, protocol.Position{Line: 2, Character: 7}, got.Start)
}

func TestRangeForFullSpan(t *testing.T) {
	pos := diag.NewPosition("a.vd")
	pos.StartLine = 2
	pos.StartCol = 1
	pos.EndLine = 4
	pos.EndCol = 9

	got := rangeFor(pos)

	require.Equal(t, protocol.Position{Line: 1, Character: 1}, got.Start)
	require.Equal(t, protocol.Position{Line: 3, Character: 9}, got.End)
}

func TestRangeForLineAndPointer(t *testing.T) {
	pos := diag.NewPosition("a.vd")
	pos.Line = 10
	pos.Pointer = 3

	got := rangeFor(pos)

	require.Equal(t, protocol.Position{Line: 9, Character: 3}, got.Start)
	require.Equal(t, got.Start, got.End)
}

func TestRangeForEmptyPosition(t *testing.T) {
	got := rangeFor(diag.NewPosition(""))
	require.Equal(t, protocol.Range{}, got)
}

func TestBuildDiagnosticSeverityMapping(t *testing.T) {
	cases := []struct {
		sev  diag.Severity
		want protocol.DiagnosticSeverity
	}{
		{diag.SevInfo, protocol.SeverityInformation},
		{diag.SevWarning, protocol.SeverityWarning},
		{diag.SevError, protocol.SeverityError},
	}
	for _, tc := range cases {
		p := diag.NewProblem(tc.sev, "m", diag.NewPosition("a.vd"))
		require.Equal(t, tc.want, buildDiagnostic(p).Severity, "severity %s", tc.sev)
	}
}

func TestBuildDiagnosticCarriesCodeAndSource(t *testing.T) {
	p := diag.NewProblem(diag.SevError, "bad", diag.NewPosition("a.vd")).
		WithCode(diag.CodeUnterminatedString)

	d := buildDiagnostic(p)

	require.Equal(t, "VLD1001", d.Code)
	require.Equal(t, "veld", d.Source)
	require.Equal(t, "bad", d.Message)

	plain := buildDiagnostic(diag.NewProblem(diag.SevInfo, "note", diag.NewPosition("")))
	require.Empty(t, plain.Code)
}
