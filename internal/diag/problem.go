package diag

// Position locates a problem in compiler coordinates. Line fields are
// 1-based, with 0 meaning the field was not provided. Column and
// pointer fields are 0-based, with a negative value meaning not
// provided: column 0 is a legal location, so zero cannot stand in for
// absence there.
type Position struct {
	// File is the path of the source file, empty when the problem is
	// not tied to any file (for example a target-level note).
	File      string
	Line      int
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	// Pointer is a single character offset used when no explicit
	// column range is known.
	Pointer int
}

// NewPosition returns a Position for file with every optional field
// unset. Callers fill in the fields they actually know.
func NewPosition(file string) Position {
	return Position{
		File:     file,
		StartCol: -1,
		EndCol:   -1,
		Pointer:  -1,
	}
}

// HasLine reports whether the 1-based Line field was provided.
func (p Position) HasLine() bool { return p.Line > 0 }

// Problem is one issue found by the compiler. Immutable once logged.
type Problem struct {
	Severity Severity
	Message  string
	Position Position
	Code     Code
}

// NewProblem constructs a Problem without a code.
func NewProblem(sev Severity, msg string, pos Position) Problem {
	return Problem{Severity: sev, Message: msg, Position: pos}
}

// WithCode returns a copy of the problem carrying code.
func (p Problem) WithCode(code Code) Problem {
	p.Code = code
	return p
}
