package tokenizer

import (
	"fmt"
	"iter"
	"strings"
	"unicode/utf8"
)

// TokenIterator uses the Go 1.24 iterator pattern
type TokenIterator iter.Seq2[Token, error]

// Tokenizer splits NGINX configuration text into tokens
type Tokenizer struct {
	input   string
	options Options
}

// Options are options for the tokenizer
type Options struct {
	// SkipComments drops COMMENT tokens from the stream. The parser
	// enables this; keep comments when the stream is inspected directly.
	SkipComments bool
}

// New creates a new Tokenizer
func New(input string, options ...Options) *Tokenizer {
	opts := Options{}
	if len(options) > 0 {
		opts = options[0]
	}

	return &Tokenizer{
		input:   input,
		options: opts,
	}
}

// Tokens returns an iterator of tokens. The stream always ends with an
// EOF token. Tokenization stops at the first error.
func (t *Tokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		s := &scanner{
			input: t.input,
			line:  1,
		}
		s.readChar()

		for {
			token, err := s.nextToken()
			if err != nil {
				yield(Token{}, err)
				return
			}

			if t.options.SkipComments && token.Type == COMMENT {
				continue
			}

			if !yield(token, nil) {
				return
			}

			if token.Type == EOF {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice, up to and including EOF.
// The tokens read before a failure are returned alongside the error.
func (t *Tokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, 64)

	for token, err := range t.Tokens() {
		if err != nil {
			return tokens, err
		}

		tokens = append(tokens, token)

		if token.Type == EOF {
			break
		}
	}

	return tokens, nil
}

// Internal scanner implementation
type scanner struct {
	input   string
	pos     int  // byte offset just past the current rune
	offset  int  // byte offset of the current rune
	current rune // current rune, 0 once eof is set
	eof     bool
	line    int
	column  int
}

// readChar advances to the next rune, tracking line and column.
// A \r\n pair counts as a single line break.
func (s *scanner) readChar() {
	if s.eof {
		return
	}

	switch s.current {
	case '\n':
		s.line++
		s.column = 0
	case '\r':
		if s.pos >= len(s.input) || s.input[s.pos] != '\n' {
			s.line++
			s.column = 0
		}
	}

	s.column++

	if s.pos >= len(s.input) {
		s.offset = len(s.input)
		s.current = 0
		s.eof = true
		return
	}

	r, w := utf8.DecodeRuneInString(s.input[s.pos:])
	s.offset = s.pos
	s.pos += w
	s.current = r
}

// peekChar looks ahead at the next rune without consuming it
func (s *scanner) peekChar() rune {
	if s.pos >= len(s.input) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(s.input[s.pos:])

	return r
}

func (s *scanner) position() Position {
	return Position{Line: s.line, Column: s.column, Offset: s.offset}
}

// nextToken gets the next token
func (s *scanner) nextToken() (Token, error) {
	s.skipWhitespace()

	pos := s.position()

	switch {
	case s.eof:
		return Token{Type: EOF, Position: pos}, nil
	case s.current == '#':
		return s.readComment(), nil
	case s.current == '{':
		s.readChar()
		return Token{Type: OPEN_BRACE, Value: "{", Position: pos}, nil
	case s.current == '}':
		s.readChar()
		return Token{Type: CLOSE_BRACE, Value: "}", Position: pos}, nil
	case s.current == ';':
		s.readChar()
		return Token{Type: SEMICOLON, Value: ";", Position: pos}, nil
	case s.current == '"' || s.current == '\'':
		return s.readString(s.current)
	case s.current == '$':
		return s.readVariable()
	case isDigit(s.current):
		return s.readNumber(), nil
	case isIdentChar(s.current):
		return s.readIdentifier(), nil
	default:
		return Token{}, &Error{
			Err:      ErrUnexpectedByte,
			Position: pos,
			Detail:   fmt.Sprintf("%q", s.current),
		}
	}
}

func (s *scanner) skipWhitespace() {
	for !s.eof {
		switch s.current {
		case ' ', '\t', '\r', '\n':
			s.readChar()
		default:
			return
		}
	}
}

// readIdentifier reads a bareword: directive names, paths, addresses,
// regex patterns, flags. Anything that is not whitespace, punctuation,
// a quote, or a comment marker belongs to the word, including a '$'
// after the first character (regex anchors, interpolated paths).
func (s *scanner) readIdentifier() Token {
	pos := s.position()
	start := s.offset

	for !s.eof && isIdentChar(s.current) {
		s.readChar()
	}

	return Token{Type: IDENTIFIER, Value: s.input[start:s.offset], Position: pos}
}

// readNumber reads a digit run with an optional single size/time unit
// suffix (1024, 64k, 10m, 60s). A digit run followed by further word
// characters is a bareword instead: NGINX paths may start with digits
// (404.html, 50x.html).
func (s *scanner) readNumber() Token {
	pos := s.position()
	start := s.offset

	for !s.eof && isDigit(s.current) {
		s.readChar()
	}

	if !s.eof && isUnit(s.current) && !isIdentChar(s.peekChar()) {
		s.readChar()
		return Token{Type: NUMBER, Value: s.input[start:s.offset], Position: pos}
	}

	if !s.eof && isIdentChar(s.current) {
		for !s.eof && isIdentChar(s.current) {
			s.readChar()
		}

		return Token{Type: IDENTIFIER, Value: s.input[start:s.offset], Position: pos}
	}

	return Token{Type: NUMBER, Value: s.input[start:s.offset], Position: pos}
}

// readString reads a quoted string literal. The enclosing quotes are not
// part of the token value. \\ \" \' \n \t are decoded; any other
// backslash sequence passes through unchanged.
func (s *scanner) readString(quote rune) (Token, error) {
	pos := s.position()

	var b strings.Builder

	s.readChar() // opening quote

	for !s.eof {
		switch s.current {
		case quote:
			s.readChar()
			return Token{Type: STRING, Value: b.String(), Quote: byte(quote), Position: pos}, nil
		case '\n', '\r':
			return Token{}, &Error{
				Err:      ErrUnterminatedString,
				Position: pos,
				Detail:   "newline before closing quote",
			}
		case '\\':
			s.readChar()
			if s.eof {
				continue
			}

			switch s.current {
			case '\\', '"', '\'':
				b.WriteRune(s.current)
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte('\\')
				b.WriteRune(s.current)
			}

			s.readChar()
		default:
			b.WriteRune(s.current)
			s.readChar()
		}
	}

	return Token{}, &Error{
		Err:      ErrUnterminatedString,
		Position: pos,
		Detail:   "reached end of input",
	}
}

// readVariable reads $name or ${name}. The token value is the bare name.
func (s *scanner) readVariable() (Token, error) {
	pos := s.position()

	s.readChar() // $

	if !s.eof && s.current == '{' {
		s.readChar()

		start := s.offset
		for !s.eof && s.current != '}' {
			s.readChar()
		}

		if s.eof {
			return Token{}, &Error{
				Err:      ErrUnterminatedVariable,
				Position: pos,
				Detail:   "missing '}'",
			}
		}

		name := s.input[start:s.offset]
		s.readChar() // }

		return Token{Type: VARIABLE, Value: name, Position: pos}, nil
	}

	start := s.offset
	for !s.eof && isIdentChar(s.current) {
		s.readChar()
	}

	if s.offset == start {
		return Token{}, &Error{
			Err:      ErrUnexpectedByte,
			Position: pos,
			Detail:   "expected variable name after '$'",
		}
	}

	return Token{Type: VARIABLE, Value: s.input[start:s.offset], Position: pos}, nil
}

// readComment reads from '#' to the end of the line. The '#' and
// surrounding whitespace are not part of the token value.
func (s *scanner) readComment() Token {
	pos := s.position()

	s.readChar() // #

	start := s.offset
	for !s.eof && s.current != '\n' {
		s.readChar()
	}

	return Token{Type: COMMENT, Value: strings.TrimSpace(s.input[start:s.offset]), Position: pos}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isUnit reports whether r is an NGINX size or time unit suffix
func isUnit(r rune) bool {
	switch r {
	case 'k', 'K', 'm', 'M', 'g', 'G', 's', 'h', 'd':
		return true
	}

	return false
}

// isIdentChar reports whether r can appear inside a bareword. Everything
// except whitespace, structural punctuation, quotes, and '#' qualifies;
// bytes above 0x7F are treated as opaque.
func isIdentChar(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', '"', '\'', '{', '}', ';', '#', 0:
		return false
	}

	return true
}
