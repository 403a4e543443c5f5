package parser

import (
	"encoding/json"

	"github.com/shibukawa/nginxdiscovery/tokenizer"
)

// ArgumentKind represents the surface form of a directive argument
type ArgumentKind int

const (
	BAREWORD ArgumentKind = iota
	QUOTED
	VARIABLE
	NUMBER
)

// String returns the string representation of ArgumentKind
func (k ArgumentKind) String() string {
	switch k {
	case BAREWORD:
		return "BAREWORD"
	case QUOTED:
		return "QUOTED"
	case VARIABLE:
		return "VARIABLE"
	case NUMBER:
		return "NUMBER"
	default:
		return "UNKNOWN"
	}
}

// Argument is a single directive argument. Value holds the payload
// without quotes or the variable sigil; Kind records how it was written.
type Argument struct {
	Kind  ArgumentKind
	Value string
	Quote byte // enclosing quote character when Kind is QUOTED
}

// IsVariable reports whether the argument was written as $name or ${name}
func (a Argument) IsVariable() bool {
	return a.Kind == VARIABLE
}

// Surface returns the argument as it appeared in the source, with the
// '$' sigil restored on variables and quotes restored on strings.
func (a Argument) Surface() string {
	switch a.Kind {
	case VARIABLE:
		return "$" + a.Value
	case QUOTED:
		q := string(a.Quote)
		return q + a.Value + q
	default:
		return a.Value
	}
}

// MarshalJSON serializes the argument as its plain string value
func (a Argument) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Value)
}

// Config is the root of a parsed configuration
type Config struct {
	Directives []Directive `json:"directives"`
}

// Directive is a named statement with zero or more arguments,
// optionally introducing a block.
type Directive struct {
	Name     string
	Args     []Argument
	Block    *Block
	Position tokenizer.Position
}

// Block is a brace-delimited sequence of directives
type Block struct {
	Directives []Directive `json:"directives"`
}

// MarshalJSON serializes the directive in the stable interchange shape:
// args as plain strings, block null when absent, position as line/column.
func (d Directive) MarshalJSON() ([]byte, error) {
	args := d.ArgStrings()
	if args == nil {
		args = []string{}
	}

	return json.Marshal(struct {
		Name     string             `json:"name"`
		Args     []string           `json:"args"`
		Block    *Block             `json:"block"`
		Position tokenizer.Position `json:"position"`
	}{d.Name, args, d.Block, d.Position})
}

// IsBlock reports whether the directive introduces a block
func (d *Directive) IsBlock() bool {
	return d.Block != nil
}

// ArgStrings returns the argument values as plain strings
func (d *Directive) ArgStrings() []string {
	if len(d.Args) == 0 {
		return nil
	}

	args := make([]string, len(d.Args))
	for i, a := range d.Args {
		args[i] = a.Value
	}

	return args
}

// SurfaceArgs returns the arguments in their source form (see Surface)
func (d *Directive) SurfaceArgs() []string {
	if len(d.Args) == 0 {
		return nil
	}

	args := make([]string, len(d.Args))
	for i, a := range d.Args {
		args[i] = a.Surface()
	}

	return args
}

// FirstArg returns the first argument value, if any
func (d *Directive) FirstArg() (string, bool) {
	if len(d.Args) == 0 {
		return "", false
	}

	return d.Args[0].Value, true
}

// FindChildren returns the direct children of the block with the given name
func (d *Directive) FindChildren(name string) []*Directive {
	if d.Block == nil {
		return nil
	}

	return findDirectives(d.Block.Directives, name)
}

// FindRecursive returns all directives with the given name anywhere
// inside the block, depth first.
func (d *Directive) FindRecursive(name string) []*Directive {
	if d.Block == nil {
		return nil
	}

	return findRecursive(d.Block.Directives, name)
}

// FindDirectives returns the top-level directives with the given name
func (c *Config) FindDirectives(name string) []*Directive {
	return findDirectives(c.Directives, name)
}

// FindDirectivesRecursive returns all directives with the given name
// anywhere in the configuration, depth first.
func (c *Config) FindDirectivesRecursive(name string) []*Directive {
	return findRecursive(c.Directives, name)
}

func findDirectives(directives []Directive, name string) []*Directive {
	var result []*Directive

	for i := range directives {
		if directives[i].Name == name {
			result = append(result, &directives[i])
		}
	}

	return result
}

func findRecursive(directives []Directive, name string) []*Directive {
	var result []*Directive

	for i := range directives {
		d := &directives[i]
		if d.Name == name {
			result = append(result, d)
		}

		if d.Block != nil {
			result = append(result, findRecursive(d.Block.Directives, name)...)
		}
	}

	return result
}
