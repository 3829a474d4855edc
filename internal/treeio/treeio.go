// Package treeio decodes parse-tree documents handed over by the external
// grammar engine. A document is YAML (or JSON, which YAML subsumes): leaves
// carry a token name, literal text, and position; branches carry a
// production name and children.
//
//	kind: arith_expr
//	children:
//	  - {token: NUMBER, value: "1", line: 1, col: 0}
//	  - {token: PLUS, value: "+", line: 1, col: 2}
//	  - {token: NUMBER, value: "2", line: 1, col: 4}
package treeio

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/pylower/pkg/cst"
	"github.com/leapstack-labs/pylower/pkg/token"
)

// nodeDoc is the on-disk shape of one parse-tree node.
type nodeDoc struct {
	Token    string    `yaml:"token,omitempty"`
	Value    string    `yaml:"value,omitempty"`
	Line     int       `yaml:"line,omitempty"`
	Col      int       `yaml:"col,omitempty"`
	Kind     string    `yaml:"kind,omitempty"`
	Children []nodeDoc `yaml:"children,omitempty"`
}

// Decode reads one parse-tree document from r.
func Decode(r io.Reader) (cst.Node, error) {
	var doc nodeDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding parse tree: %w", err)
	}
	return build(&doc)
}

// DecodeFile reads one parse-tree document from the named file.
func DecodeFile(path string) (cst.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

func build(doc *nodeDoc) (cst.Node, error) {
	switch {
	case doc.Token != "":
		kind, ok := token.Lookup(doc.Token)
		if !ok || !kind.IsTerminal() {
			return nil, fmt.Errorf("unknown token name %q", doc.Token)
		}
		if doc.Line <= 0 {
			return nil, fmt.Errorf("token %s missing a line number", doc.Token)
		}
		return cst.NewLeaf(kind, doc.Value, doc.Line, doc.Col), nil
	case doc.Kind != "":
		kind, ok := token.Lookup(doc.Kind)
		if !ok || kind.IsTerminal() {
			return nil, fmt.Errorf("unknown production name %q", doc.Kind)
		}
		if len(doc.Children) == 0 {
			return nil, fmt.Errorf("production %s has no children", doc.Kind)
		}
		children := make([]cst.Node, 0, len(doc.Children))
		for i := range doc.Children {
			child, err := build(&doc.Children[i])
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		return cst.NewBranch(kind, children...), nil
	}
	return nil, fmt.Errorf("node is neither a token nor a production")
}
