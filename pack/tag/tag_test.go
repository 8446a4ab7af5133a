package tag

import (
	"errors"
	"strings"
	"testing"
)

func TestNodeAccessors(t *testing.T) {
	root := NewMapping(map[string]*Node{
		"count":  NewInt(42),
		"offset": NewInt(-7),
		"big":    NewUint(0xFFFFFFFFFFFFFFFF),
		"scale":  NewFloat(1.5),
		"name":   NewString("hull"),
		"items":  NewSequence(NewInt(1), NewInt(2)),
	})

	if root.Kind() != NODE_MAPPING {
		t.Errorf("root kind %v", root.Kind())
	}
	if !root.Has("count") || root.Has("missing") {
		t.Error("Has misreports keys")
	}

	if v, err := mustField(t, root, "count").Int(); err != nil || v != 42 {
		t.Errorf("Int()=%d, %v", v, err)
	}
	if v, err := mustField(t, root, "offset").Int(); err != nil || v != -7 {
		t.Errorf("Int()=%d, %v", v, err)
	}
	if v, err := mustField(t, root, "big").Uint(); err != nil || v != 0xFFFFFFFFFFFFFFFF {
		t.Errorf("Uint()=%d, %v", v, err)
	}
	if v, err := mustField(t, root, "scale").Float(); err != nil || v != 1.5 {
		t.Errorf("Float()=%v, %v", v, err)
	}
	if v, err := mustField(t, root, "name").Text(); err != nil || v != "hull" {
		t.Errorf("Text()=%q, %v", v, err)
	}

	seq, err := mustField(t, root, "items").Sequence()
	if err != nil || len(seq) != 2 {
		t.Errorf("Sequence()=%v, %v", seq, err)
	}
}

func mustField(t *testing.T, n *Node, key string) *Node {
	t.Helper()
	f, err := n.Field(key)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestNodeKindMismatch(t *testing.T) {
	str := NewString("hull")
	num := NewInt(1)

	if _, err := str.Int(); !errors.Is(err, ErrMalformedTag) {
		t.Errorf("Int on string: %v", err)
	}
	if _, err := str.Sequence(); !errors.Is(err, ErrMalformedTag) {
		t.Errorf("Sequence on string: %v", err)
	}
	if _, err := num.Text(); !errors.Is(err, ErrMalformedTag) {
		t.Errorf("Text on int: %v", err)
	}
	if _, err := num.Field("x"); !errors.Is(err, ErrMalformedTag) {
		t.Errorf("Field on int: %v", err)
	}
}

func TestNodeFloatAcceptsInt(t *testing.T) {
	if v, err := NewInt(-3).Float(); err != nil || v != -3 {
		t.Errorf("Float()=%v, %v", v, err)
	}
}

func TestNodeUintRejectsNegative(t *testing.T) {
	if _, err := NewInt(-1).Uint(); !errors.Is(err, ErrMalformedTag) {
		t.Errorf("expected ErrMalformedTag, got %v", err)
	}
}

func TestNodeIntOverflow(t *testing.T) {
	if _, err := NewUint(1 << 63).Int(); !errors.Is(err, ErrMalformedTag) {
		t.Errorf("expected ErrMalformedTag, got %v", err)
	}
}

func TestNodeBytesDecoded(t *testing.T) {
	// cp1251 "Танк", NUL-terminated as stored in the binary file
	n := NewBytes([]byte{0xD2, 0xE0, 0xED, 0xEA, 0x00, 0x00})
	v, err := n.Text()
	if err != nil {
		t.Fatal(err)
	}
	if v != "Танк" {
		t.Errorf("Text()=%q; expected decoded cp1251", v)
	}
}

func TestNodeAtPath(t *testing.T) {
	root := NewMapping(map[string]*Node{
		"shape": NewMapping(map[string]*Node{
			"data": NewMapping(map[string]*Node{
				"meshTree": NewInt(1),
			}),
		}),
	})

	n, err := root.At("shape", "data", "meshTree")
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := n.Int(); v != 1 {
		t.Errorf("unexpected leaf %v", n)
	}

	_, err = root.At("shape", "data", "missing")
	if !errors.Is(err, ErrMalformedTag) {
		t.Fatalf("expected ErrMalformedTag, got %v", err)
	}
	if !strings.Contains(err.Error(), "shape.data.missing") {
		t.Errorf("error should name the walked path: %v", err)
	}
}
