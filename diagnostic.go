package nginxdiscovery

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shibukawa/nginxdiscovery/extract"
	"github.com/shibukawa/nginxdiscovery/parser"
	"github.com/shibukawa/nginxdiscovery/tokenizer"
)

// FormatError renders an error against the source text it came from,
// quoting the offending line with a caret under the position:
//
//	unexpected token at line 3, column 12: expected ';' or '{' after directive arguments, got end of input
//	    3 |   listen 80
//	      |            ^
//
// Errors without a position render as err.Error().
func FormatError(source string, err error) string {
	pos, ok := errorPosition(err)
	if !ok || pos.Line < 1 {
		return err.Error()
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return err.Error()
	}

	line := strings.TrimRight(lines[pos.Line-1], "\r")

	column := pos.Column
	if column < 1 {
		column = 1
	}

	if column > len(line)+1 {
		column = len(line) + 1
	}

	var b strings.Builder

	b.WriteString(err.Error())
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%5d | %s\n", pos.Line, line)
	fmt.Fprintf(&b, "      | %s^", strings.Repeat(" ", column-1))

	return b.String()
}

// errorPosition pulls the source position out of any of the library's
// error types.
func errorPosition(err error) (tokenizer.Position, bool) {
	var parseErr *parser.Error
	if errors.As(err, &parseErr) {
		return parseErr.Position, true
	}

	var lexErr *tokenizer.Error
	if errors.As(err, &lexErr) {
		return lexErr.Position, true
	}

	var extractErr *extract.Error
	if errors.As(err, &extractErr) {
		return extractErr.Position, true
	}

	return tokenizer.Position{}, false
}
