// Package parser turns NGINX configuration text into a directive tree.
//
// The grammar is small: a configuration is a sequence of directives, and
// a directive is a name followed by arguments, terminated by either a
// semicolon or a brace-delimited block of further directives. Parsing is
// recursive descent with a single token of lookahead and stops at the
// first syntactic error.
package parser

import (
	"errors"
	"fmt"

	"github.com/shibukawa/nginxdiscovery/tokenizer"
)

// DefaultMaxDepth is the block nesting limit applied when Options.MaxDepth
// is zero.
const DefaultMaxDepth = 100

// Options are options for the parser
type Options struct {
	// MaxDepth bounds block nesting. Zero means DefaultMaxDepth.
	MaxDepth int
	// Source names the originating file in error messages.
	Source string
}

// Parse tokenizes and parses a configuration
func Parse(input string, options ...Options) (*Config, error) {
	opts := Options{}
	if len(options) > 0 {
		opts = options[0]
	}

	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}

	tokens, err := tokenizer.New(input, tokenizer.Options{SkipComments: true}).AllTokens()
	if err != nil {
		var lexErr *tokenizer.Error

		pos := tokenizer.Position{}
		if errors.As(err, &lexErr) {
			pos = lexErr.Position
		}

		return nil, &Error{Err: err, Position: pos, Source: opts.Source}
	}

	p := &parser{tokens: tokens, options: opts}

	return p.parse()
}

// Internal parser implementation
type parser struct {
	tokens  []tokenizer.Token
	pos     int
	options Options
}

func (p *parser) parse() (*Config, error) {
	var directives []Directive

	for {
		tok := p.current()

		switch tok.Type {
		case tokenizer.EOF:
			return &Config{Directives: directives}, nil
		case tokenizer.COMMENT:
			p.advance()
		case tokenizer.CLOSE_BRACE:
			return nil, p.unexpected(tok, "directive name")
		default:
			directive, err := p.parseDirective(0)
			if err != nil {
				return nil, err
			}

			directives = append(directives, directive)
		}
	}
}

// parseDirective parses one directive: name, arguments, then either a
// terminating semicolon or a block.
func (p *parser) parseDirective(depth int) (Directive, error) {
	tok := p.current()

	if tok.Type == tokenizer.SEMICOLON {
		return Directive{}, &Error{Err: ErrEmptyDirective, Position: tok.Position, Source: p.options.Source}
	}

	if tok.Type != tokenizer.IDENTIFIER {
		return Directive{}, p.unexpected(tok, "directive name")
	}

	directive := Directive{Name: tok.Value, Position: tok.Position}
	p.advance()

	for {
		tok := p.current()

		switch tok.Type {
		case tokenizer.SEMICOLON:
			p.advance()
			return directive, nil
		case tokenizer.OPEN_BRACE:
			open := tok.Position

			if depth+1 > p.options.MaxDepth {
				return Directive{}, &Error{
					Err:      ErrNestingTooDeep,
					Position: open,
					Limit:    p.options.MaxDepth,
					Source:   p.options.Source,
				}
			}

			p.advance()

			block, err := p.parseBlock(open, depth+1)
			if err != nil {
				return Directive{}, err
			}

			directive.Block = block

			return directive, nil
		case tokenizer.CLOSE_BRACE, tokenizer.EOF:
			return Directive{}, p.unexpected(tok, "';' or '{' after directive arguments")
		case tokenizer.COMMENT:
			p.advance()
		default:
			directive.Args = append(directive.Args, argument(tok))
			p.advance()
		}
	}
}

// parseBlock parses directives until the brace opened at open is closed
func (p *parser) parseBlock(open tokenizer.Position, depth int) (*Block, error) {
	block := &Block{}

	for {
		tok := p.current()

		switch tok.Type {
		case tokenizer.CLOSE_BRACE:
			p.advance()
			return block, nil
		case tokenizer.EOF:
			return nil, &Error{Err: ErrUnterminatedBlock, Position: open, Source: p.options.Source}
		case tokenizer.COMMENT:
			p.advance()
		default:
			directive, err := p.parseDirective(depth)
			if err != nil {
				return nil, err
			}

			block.Directives = append(block.Directives, directive)
		}
	}
}

func (p *parser) current() tokenizer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF terminates the stream
	}

	return p.tokens[p.pos]
}

func (p *parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

func (p *parser) unexpected(tok tokenizer.Token, expected string) *Error {
	return &Error{
		Err:      ErrUnexpectedToken,
		Position: tok.Position,
		Expected: expected,
		Got:      describe(tok),
		Source:   p.options.Source,
	}
}

// argument converts an argument token into its AST form
func argument(tok tokenizer.Token) Argument {
	switch tok.Type {
	case tokenizer.STRING:
		return Argument{Kind: QUOTED, Value: tok.Value, Quote: tok.Quote}
	case tokenizer.VARIABLE:
		return Argument{Kind: VARIABLE, Value: tok.Value}
	case tokenizer.NUMBER:
		return Argument{Kind: NUMBER, Value: tok.Value}
	default:
		return Argument{Kind: BAREWORD, Value: tok.Value}
	}
}

func describe(tok tokenizer.Token) string {
	switch tok.Type {
	case tokenizer.EOF:
		return "end of input"
	case tokenizer.OPEN_BRACE:
		return "'{'"
	case tokenizer.CLOSE_BRACE:
		return "'}'"
	case tokenizer.SEMICOLON:
		return "';'"
	case tokenizer.STRING:
		return fmt.Sprintf("string %q", tok.Value)
	case tokenizer.VARIABLE:
		return "variable $" + tok.Value
	default:
		return fmt.Sprintf("%q", tok.Value)
	}
}
