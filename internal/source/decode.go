package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ErrDuplicateKey is returned when an object repeats a key.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrInvalidJSON is returned for input that is not exactly one JSON value.
var ErrInvalidJSON = errors.New("invalid json")

// DecodeJSON reads a single JSON value from r into the ordered tree.
func DecodeJSON(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	return fromResult(gjson.ParseBytes(data))
}

func fromResult(res gjson.Result) (any, error) {
	switch res.Type {
	case gjson.Null:
		return nil, nil
	case gjson.False:
		return false, nil
	case gjson.True:
		return true, nil
	case gjson.String:
		return res.Str, nil
	case gjson.Number:
		if math.IsInf(res.Num, 0) {
			return nil, fmt.Errorf("number %s is out of range", res.Raw)
		}
		return res.Num, nil
	}

	var err error
	if res.IsArray() {
		arr := make([]any, 0)
		res.ForEach(func(_, value gjson.Result) bool {
			var v any
			if v, err = fromResult(value); err != nil {
				return false
			}
			arr = append(arr, v)
			return true
		})
		if err != nil {
			return nil, err
		}
		return arr, nil
	}

	m := NewMap()
	res.ForEach(func(key, value gjson.Result) bool {
		if m.Has(key.Str) {
			err = fmt.Errorf("%w %q", ErrDuplicateKey, key.Str)
			return false
		}
		var v any
		if v, err = fromResult(value); err != nil {
			return false
		}
		m.Set(key.Str, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// DecodeYAML parses YAML (and therefore most JSON) into the ordered tree.
// An empty document decodes to nil.
func DecodeYAML(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return fromNode(&root)
}

func fromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromNode(n.Content[0])
	case yaml.MappingNode:
		m := NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			if m.Has(key) {
				return nil, fmt.Errorf("line %d: %w %q", n.Content[i].Line, ErrDuplicateKey, key)
			}
			v, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(key, v)
		}
		return m, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return nil, nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Line, err)
			}
			return b, nil
		case "!!int", "!!float":
			var f float64
			if err := n.Decode(&f); err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Line, err)
			}
			return f, nil
		default:
			return n.Value, nil
		}
	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", n.Line, n.Kind)
	}
}
