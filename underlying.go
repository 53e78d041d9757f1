package refined

import (
	eng "github.com/reoring/refined/internal/engine"
	js "github.com/reoring/refined/jsonschema"
)

// Node is a structured (JSON) value as produced by the structured-format
// engine. Offset is the byte index of the node in its input.
type Node = eng.Node

// Member is one object entry of a Node.
type Member = eng.Member

// NodeKind enumerates structural node kinds.
type NodeKind = eng.Kind

const (
	NodeObject NodeKind = eng.KindObject
	NodeArray  NodeKind = eng.KindArray
	NodeString NodeKind = eng.KindString
	NodeNumber NodeKind = eng.KindNumber
	NodeBool   NodeKind = eng.KindBool
	NodeNull   NodeKind = eng.KindNull
)

// Underlying describes how a value of type U crosses every boundary. The
// primitive bases (String, Int, Float, Bool, Time) implement it, and so does
// every *Definition, which is what makes wrappers nest.
//
// ParseText and DecodeNode fail with *ParseError for malformed input, and
// with *ValidationError when a wrapper predicate rejects the parsed value.
// Violations re-checks an already constructed value along the unwrap chain,
// innermost first, and reports at most one issue.
type Underlying[U any] interface {
	TypeName() string
	ParseText(s string) (U, error)
	FormatText(v U) string
	DecodeNode(n *Node) (U, error)
	EncodeNode(v U) *Node
	Violations(v U) Issues
	Raw(v U) any
	JSONSchema() *js.Schema
}
