package diag

// Code identifies a problem kind with a stable string form.
// The empty code means the problem carries no code at all.
type Code string

const (
	NoCode Code = ""

	// Scanner-level problems.
	CodeUnterminatedString       Code = "VLD1001"
	CodeUnterminatedBlockComment Code = "VLD1002"
	CodeUnbalancedDelimiter      Code = "VLD1003"
	CodeStrayClosingDelimiter    Code = "VLD1004"
	CodeMixedIndentation         Code = "VLD1101"
	CodeTodoNote                 Code = "VLD1201"
)

func (c Code) String() string {
	if c == NoCode {
		return "<none>"
	}
	return string(c)
}
