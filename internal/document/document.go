// Package document turns raw TOML bytes into a generic tree.
//
// Ownership boundary:
// - Tree shape (string keys to scalars, sequences, and nested tables)
// - pluggable Parser backends
//
// Typed binding lives in internal/manifest.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	gotoml "github.com/pelletier/go-toml/v2"
)

// Tree is a decoded document table.
type Tree = map[string]any

// Parser decodes raw document bytes into a Tree.
type Parser interface {
	Parse(data []byte) (Tree, error)
	Name() string
}

// ParseError reports invalid document syntax.
type ParseError struct {
	Parser string
	Line   int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("document: %s: line %d: %v", e.Parser, e.Line, e.Err)
	}
	return fmt.Sprintf("document: %s: %v", e.Parser, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type burntSushi struct{}

type goTOML struct{}

var (
	// BurntSushi parses with github.com/BurntSushi/toml.
	BurntSushi Parser = burntSushi{}
	// GoTOML parses with github.com/pelletier/go-toml/v2.
	GoTOML Parser = goTOML{}
	// Default is the parser used when none is configured.
	Default = BurntSushi
)

func (burntSushi) Name() string { return "burntsushi" }

func (burntSushi) Parse(data []byte) (Tree, error) {
	tree := Tree{}
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&tree); err != nil {
		pe := &ParseError{Parser: "burntsushi", Err: err}
		var perr toml.ParseError
		if errors.As(err, &perr) {
			pe.Line = perr.Position.Line
		}
		return nil, pe
	}
	return tree, nil
}

func (goTOML) Name() string { return "go-toml" }

func (goTOML) Parse(data []byte) (Tree, error) {
	tree := Tree{}
	if err := gotoml.Unmarshal(data, &tree); err != nil {
		pe := &ParseError{Parser: "go-toml", Err: err}
		var derr *gotoml.DecodeError
		if errors.As(err, &derr) {
			pe.Line, _ = derr.Position()
		}
		return nil, pe
	}
	return tree, nil
}

// ParserByName returns the parser registered under name. Empty selects Default.
func ParserByName(name string) (Parser, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return Default, nil
	case "burntsushi", "toml":
		return BurntSushi, nil
	case "go-toml", "gotoml", "pelletier":
		return GoTOML, nil
	default:
		return nil, fmt.Errorf("document: unknown parser %q", name)
	}
}
