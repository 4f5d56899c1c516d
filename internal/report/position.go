package report

import (
	"veld/internal/diag"
	"veld/internal/protocol"
)

// rangeFor converts a compiler position into a protocol range.
//
// Compiler lines are 1-based and every provided line field gets the -1
// correction; missing line fields fall back without any correction, so
// a position with no line information lands on line 0. Columns and the
// pointer are already 0-based. End fields are resolved only after the
// start is final: when only a pointer is known the result collapses to
// a zero-width point, which is the common case.
func rangeFor(pos diag.Position) protocol.Range {
	start := protocol.Position{}
	switch {
	case pos.StartLine > 0:
		start.Line = pos.StartLine - 1
	case pos.Line > 0:
		start.Line = pos.Line - 1
	}
	switch {
	case pos.StartCol >= 0:
		start.Character = pos.StartCol
	case pos.Pointer >= 0:
		start.Character = pos.Pointer
	}

	end := start
	switch {
	case pos.EndLine > 0:
		end.Line = pos.EndLine - 1
	case pos.Line > 0:
		end.Line = pos.Line - 1
	}
	switch {
	case pos.EndCol >= 0:
		end.Character = pos.EndCol
	case pos.Pointer >= 0:
		end.Character = pos.Pointer
	}

	return protocol.Range{Start: start, End: end}
}

// buildDiagnostic translates one problem into its wire form. The
// severity mapping is exhaustive on purpose: a new diag.Severity value
// must be given an explicit protocol counterpart here.
func buildDiagnostic(p diag.Problem) protocol.Diagnostic {
	var sev protocol.DiagnosticSeverity
	switch p.Severity {
	case diag.SevInfo:
		sev = protocol.SeverityInformation
	case diag.SevWarning:
		sev = protocol.SeverityWarning
	case diag.SevError:
		sev = protocol.SeverityError
	}
	return protocol.Diagnostic{
		Range:    rangeFor(p.Position),
		Severity: sev,
		Code:     string(p.Code),
		Source:   toolSource,
		Message:  p.Message,
	}
}

// toolSource tags every diagnostic this server produces.
const toolSource = "veld"
