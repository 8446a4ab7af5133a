package tag

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/wiiskii/tank_havok_browser/utils"
)

// ErrMalformedTag is the cause of every shape error reported by node
// accessors: missing mapping keys, wrong node kinds, short sequences.
var ErrMalformedTag = errors.New("malformed tag node")

type NodeKind int

const (
	NODE_MAPPING NodeKind = iota
	NODE_SEQUENCE
	NODE_INT
	NODE_FLOAT
	NODE_STRING
)

func (k NodeKind) String() string {
	switch k {
	case NODE_MAPPING:
		return "mapping"
	case NODE_SEQUENCE:
		return "sequence"
	case NODE_INT:
		return "int"
	case NODE_FLOAT:
		return "float"
	case NODE_STRING:
		return "string"
	default:
		return "unknown"
	}
}

// Node is one value of a deserialized tag object tree. Mappings are keyed
// by the raw byte strings stored in the source file. A node is exactly one
// of: mapping, sequence or scalar; accessors return an error wrapping
// ErrMalformedTag when asked for a capability the node does not have.
type Node struct {
	kind     NodeKind
	mapping  map[string]*Node
	sequence []*Node
	uintVal  uint64
	negative bool
	floatVal float64
	strVal   []byte
	decoded  bool // strVal already passed through text decoding
}

func NewMapping(fields map[string]*Node) *Node {
	return &Node{kind: NODE_MAPPING, mapping: fields}
}

func NewSequence(items ...*Node) *Node {
	return &Node{kind: NODE_SEQUENCE, sequence: items}
}

func NewInt(v int64) *Node {
	if v < 0 {
		return &Node{kind: NODE_INT, uintVal: uint64(-v), negative: true}
	}
	return &Node{kind: NODE_INT, uintVal: uint64(v)}
}

func NewUint(v uint64) *Node {
	return &Node{kind: NODE_INT, uintVal: v}
}

func NewFloat(v float64) *Node {
	return &Node{kind: NODE_FLOAT, floatVal: v}
}

// NewString wraps text that is already decoded (yaml dumps, literals).
func NewString(s string) *Node {
	return &Node{kind: NODE_STRING, strVal: []byte(s), decoded: true}
}

// NewBytes wraps a raw byte string as read from the binary file; Text
// will run it through the configured charmap.
func NewBytes(b []byte) *Node {
	return &Node{kind: NODE_STRING, strVal: b}
}

func (n *Node) Kind() NodeKind { return n.kind }

func (n *Node) Has(key string) bool {
	if n.kind != NODE_MAPPING {
		return false
	}
	_, ex := n.mapping[key]
	return ex
}

func (n *Node) Field(key string) (*Node, error) {
	if n.kind != NODE_MAPPING {
		return nil, errors.Wrapf(ErrMalformedTag, "field %q: node is a %v, not a mapping", key, n.kind)
	}
	f, ex := n.mapping[key]
	if !ex {
		return nil, errors.Wrapf(ErrMalformedTag, "missing field %q", key)
	}
	return f, nil
}

// At walks a chain of mapping keys; errors name the full path walked so
// far ("shape.data.meshTree").
func (n *Node) At(path ...string) (*Node, error) {
	cur := n
	for i, key := range path {
		next, err := cur.Field(key)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedTag, "at %q: %v", strings.Join(path[:i+1], "."), err)
		}
		cur = next
	}
	return cur, nil
}

func (n *Node) Sequence() ([]*Node, error) {
	if n.kind != NODE_SEQUENCE {
		return nil, errors.Wrapf(ErrMalformedTag, "node is a %v, not a sequence", n.kind)
	}
	return n.sequence, nil
}

func (n *Node) Int() (int64, error) {
	if n.kind != NODE_INT {
		return 0, errors.Wrapf(ErrMalformedTag, "node is a %v, not an int", n.kind)
	}
	if n.negative {
		return -int64(n.uintVal), nil
	}
	if n.uintVal > 1<<63-1 {
		return 0, errors.Wrapf(ErrMalformedTag, "int value %d overflows int64", n.uintVal)
	}
	return int64(n.uintVal), nil
}

func (n *Node) Uint() (uint64, error) {
	if n.kind != NODE_INT {
		return 0, errors.Wrapf(ErrMalformedTag, "node is a %v, not an int", n.kind)
	}
	if n.negative {
		return 0, errors.Wrapf(ErrMalformedTag, "int value -%d is negative", n.uintVal)
	}
	return n.uintVal, nil
}

// Float accepts both float and int scalars, matching the loose numeric
// typing of the source format.
func (n *Node) Float() (float64, error) {
	switch n.kind {
	case NODE_FLOAT:
		return n.floatVal, nil
	case NODE_INT:
		if n.negative {
			return -float64(n.uintVal), nil
		}
		return float64(n.uintVal), nil
	default:
		return 0, errors.Wrapf(ErrMalformedTag, "node is a %v, not a number", n.kind)
	}
}

func (n *Node) Text() (string, error) {
	if n.kind != NODE_STRING {
		return "", errors.Wrapf(ErrMalformedTag, "node is a %v, not a string", n.kind)
	}
	if n.decoded {
		return string(n.strVal), nil
	}
	return utils.BytesToString(n.strVal), nil
}
