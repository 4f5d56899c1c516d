package driver

import (
	"fmt"
	"strings"

	"veld/internal/diag"
)

// ScanSource runs the shallow structural checks on one source file and
// returns the problems found, in source order. It is deliberately not
// a full parser: it catches the issues that make later phases useless
// (unterminated literals, unbalanced delimiters) plus a couple of
// advisory checks.
func ScanSource(path string, content []byte) []diag.Problem {
	s := scanner{path: path}
	s.run(string(content))
	return s.problems
}

type openDelim struct {
	ch   byte
	line int // 1-based
	col  int // 0-based
}

type scanner struct {
	path     string
	problems []diag.Problem
	stack    []openDelim

	inComment   bool
	commentLine int
	commentCol  int
}

func (s *scanner) report(p diag.Problem) {
	s.problems = append(s.problems, p)
}

func (s *scanner) run(content string) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		s.scanLine(i+1, line)
	}
	if s.inComment {
		pos := diag.NewPosition(s.path)
		pos.StartLine = s.commentLine
		pos.StartCol = s.commentCol
		s.report(diag.NewProblem(diag.SevError, "unterminated block comment", pos).
			WithCode(diag.CodeUnterminatedBlockComment))
	}
	for _, open := range s.stack {
		pos := diag.NewPosition(s.path)
		pos.Line = open.line
		pos.Pointer = open.col
		s.report(diag.NewProblem(diag.SevError,
			fmt.Sprintf("unclosed %q", string(open.ch)), pos).
			WithCode(diag.CodeUnbalancedDelimiter))
	}
}

func (s *scanner) scanLine(lineNo int, line string) {
	s.checkIndentation(lineNo, line)

	i := 0
	for i < len(line) {
		if s.inComment {
			end := strings.Index(line[i:], "*/")
			if end < 0 {
				return
			}
			i += end + 2
			s.inComment = false
			continue
		}
		ch := line[i]
		switch {
		case ch == '/' && i+1 < len(line) && line[i+1] == '*':
			s.inComment = true
			s.commentLine = lineNo
			s.commentCol = i
			i += 2
		case ch == '/' && i+1 < len(line) && line[i+1] == '/':
			s.checkTodo(lineNo, line, i)
			return
		case ch == '"':
			next, ok := s.scanString(lineNo, line, i)
			if !ok {
				return
			}
			i = next
		case ch == '(' || ch == '[' || ch == '{':
			s.stack = append(s.stack, openDelim{ch: ch, line: lineNo, col: i})
			i++
		case ch == ')' || ch == ']' || ch == '}':
			s.closeDelim(lineNo, i, ch)
			i++
		default:
			i++
		}
	}
}

// scanString consumes a double-quoted literal starting at open. The
// second result is false when the literal never closes on this line;
// veld has no multiline strings, so that is an error.
func (s *scanner) scanString(lineNo int, line string, open int) (int, bool) {
	i := open + 1
	for i < len(line) {
		switch line[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1, true
		default:
			i++
		}
	}
	pos := diag.NewPosition(s.path)
	pos.StartLine = lineNo
	pos.StartCol = open
	pos.EndLine = lineNo
	pos.EndCol = len(line)
	s.report(diag.NewProblem(diag.SevError, "unterminated string literal", pos).
		WithCode(diag.CodeUnterminatedString))
	return 0, false
}

var closerFor = map[byte]byte{')': '(', ']': '[', '}': '{'}

func (s *scanner) closeDelim(lineNo, col int, ch byte) {
	want := closerFor[ch]
	if len(s.stack) == 0 {
		pos := diag.NewPosition(s.path)
		pos.Line = lineNo
		pos.Pointer = col
		s.report(diag.NewProblem(diag.SevError,
			fmt.Sprintf("stray %q", string(ch)), pos).
			WithCode(diag.CodeStrayClosingDelimiter))
		return
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	if top.ch != want {
		pos := diag.NewPosition(s.path)
		pos.Line = lineNo
		pos.Pointer = col
		s.report(diag.NewProblem(diag.SevError,
			fmt.Sprintf("expected closing for %q opened at line %d, found %q",
				string(top.ch), top.line, string(ch)), pos).
			WithCode(diag.CodeUnbalancedDelimiter))
	}
}

func (s *scanner) checkIndentation(lineNo int, line string) {
	sawSpace := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			sawSpace = true
		case '\t':
			if sawSpace {
				pos := diag.NewPosition(s.path)
				pos.Line = lineNo
				s.report(diag.NewProblem(diag.SevWarning,
					"tab after spaces in indentation", pos).
					WithCode(diag.CodeMixedIndentation))
				return
			}
		default:
			return
		}
	}
}

func (s *scanner) checkTodo(lineNo int, line string, commentStart int) {
	idx := strings.Index(line[commentStart:], "TODO")
	if idx < 0 {
		return
	}
	pos := diag.NewPosition(s.path)
	pos.Line = lineNo
	pos.Pointer = commentStart + idx
	s.report(diag.NewProblem(diag.SevInfo,
		strings.TrimSpace(line[commentStart+2:]), pos).
		WithCode(diag.CodeTodoNote))
}
