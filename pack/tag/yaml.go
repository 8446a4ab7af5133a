package tag

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Tag trees travel between tools as plain yaml documents: mappings,
// sequences and scalars map one to one onto node kinds. This is the dump
// format the binary deserializer tooling writes; the browser and the
// tests read it back here.

func FromYAMLFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read tag dump %q", path)
	}
	return FromYAML(data)
}

func FromYAML(data []byte) (*Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrapf(err, "Failed to parse tag dump yaml")
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) != 1 {
		return nil, errors.Wrapf(ErrMalformedTag, "expected single yaml document")
	}
	return fromYAMLNode(root.Content[0])
}

func fromYAMLNode(yn *yaml.Node) (*Node, error) {
	switch yn.Kind {
	case yaml.AliasNode:
		return fromYAMLNode(yn.Alias)
	case yaml.MappingNode:
		fields := make(map[string]*Node, len(yn.Content)/2)
		for i := 0; i+1 < len(yn.Content); i += 2 {
			key := yn.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, errors.Wrapf(ErrMalformedTag, "line %d: mapping key is not a scalar", key.Line)
			}
			val, err := fromYAMLNode(yn.Content[i+1])
			if err != nil {
				return nil, err
			}
			fields[key.Value] = val
		}
		return NewMapping(fields), nil
	case yaml.SequenceNode:
		items := make([]*Node, len(yn.Content))
		for i, c := range yn.Content {
			item, err := fromYAMLNode(c)
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return NewSequence(items...), nil
	case yaml.ScalarNode:
		return fromYAMLScalar(yn)
	default:
		return nil, errors.Wrapf(ErrMalformedTag, "line %d: unsupported yaml node kind %v", yn.Line, yn.Kind)
	}
}

func fromYAMLScalar(yn *yaml.Node) (*Node, error) {
	switch yn.Tag {
	case "!!int":
		// base 0 so hex dumps of packed vertices stay readable
		if u, err := strconv.ParseUint(yn.Value, 0, 64); err == nil {
			return NewUint(u), nil
		}
		i, err := strconv.ParseInt(yn.Value, 0, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedTag, "line %d: bad int %q", yn.Line, yn.Value)
		}
		return NewInt(i), nil
	case "!!float":
		f, err := strconv.ParseFloat(yn.Value, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedTag, "line %d: bad float %q", yn.Line, yn.Value)
		}
		return NewFloat(f), nil
	case "!!str":
		return NewString(yn.Value), nil
	default:
		return nil, errors.Wrapf(ErrMalformedTag, "line %d: unsupported scalar tag %q", yn.Line, yn.Tag)
	}
}
