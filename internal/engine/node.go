package engine

// Member is one key/value pair of an object node, kept in input order.
type Member struct {
	Key       string
	KeyOffset int64
	Value     *Node
}

// Node is a parsed structured value. Offset is the byte index where the node
// starts in the input; nodes built in memory carry -1.
type Node struct {
	Kind    Kind
	String  string
	Number  string // Stored as text; callers pick the numeric interpretation.
	Bool    bool
	Members []Member
	Items   []*Node
	Offset  int64
}

func StringNode(s string) *Node { return &Node{Kind: KindString, String: s, Offset: -1} }
func NumberNode(n string) *Node { return &Node{Kind: KindNumber, Number: n, Offset: -1} }
func BoolNode(b bool) *Node     { return &Node{Kind: KindBool, Bool: b, Offset: -1} }
func NullNode() *Node           { return &Node{Kind: KindNull, Offset: -1} }

// ObjectNode builds an object node with members in the given order.
func ObjectNode(members ...Member) *Node {
	return &Node{Kind: KindObject, Members: members, Offset: -1}
}

// ArrayNode builds an array node.
func ArrayNode(items ...*Node) *Node {
	return &Node{Kind: KindArray, Items: items, Offset: -1}
}

// Get returns the member value stored under key.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.Kind != KindObject {
		return nil, false
	}
	for i := range n.Members {
		if n.Members[i].Key == key {
			return n.Members[i].Value, true
		}
	}
	return nil, false
}
