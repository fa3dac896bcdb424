package format

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/state/internal/value"
)

// YAML tags used when building and reading node trees.
const (
	tagNull   = "!!null"
	tagBool   = "!!bool"
	tagInt    = "!!int"
	tagFloat  = "!!float"
	tagStr    = "!!str"
	tagBinary = "!!binary"
	tagSeq    = "!!seq"
	tagMap    = "!!map"
)

// yamlFormat is the YAML document format. It builds yaml.v3 node trees
// directly so Int and Float, Bytes and non-text map keys survive a round
// trip.
type yamlFormat struct{}

// YAML returns the YAML document format. Without pretty the document is a
// single flow-style line.
func YAML() Format {
	return yamlFormat{}
}

func (yamlFormat) Name() string { return "yaml" }

func (y yamlFormat) Encode(v value.Value, pretty bool) ([]byte, error) {
	if err := value.Validate(v); err != nil {
		return nil, mark(err, ErrUnrepresentable, "yaml")
	}
	root, err := toNode(v)
	if err != nil {
		return nil, mark(err, ErrUnrepresentable, "yaml")
	}
	if !pretty {
		root.Style = yaml.FlowStyle
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, mark(err, ErrUnrepresentable, "yaml")
	}
	if err := enc.Close(); err != nil {
		return nil, mark(err, ErrUnrepresentable, "yaml")
	}
	return buf.Bytes(), nil
}

func (y yamlFormat) Decode(data []byte) (value.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, mark(err, ErrParse, "yaml")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, markNew(ErrParse, "yaml: empty document")
	}
	dec := &yamlDecoder{budget: nodeBudget(len(data))}
	v, err := dec.fromNode(doc.Content[0], 0)
	if err != nil {
		return nil, mark(err, ErrParse, "yaml")
	}
	return v, nil
}

// ParseString parses YAML text. YAML is a text format, so this is the
// native path and Decode defers to it.
func (y yamlFormat) ParseString(s string) (value.Value, error) {
	return y.Decode([]byte(s))
}

func scalarNode(tag, text string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
}

func toNode(v value.Value) (*yaml.Node, error) {
	switch val := v.(type) {
	case value.Null:
		return scalarNode(tagNull, "null"), nil
	case value.Bool:
		return scalarNode(tagBool, strconv.FormatBool(bool(val))), nil
	case value.Int:
		return scalarNode(tagInt, strconv.FormatInt(int64(val), 10)), nil
	case value.Float:
		return scalarNode(tagFloat, formatYAMLFloat(float64(val))), nil
	case value.String:
		return scalarNode(tagStr, string(val)), nil
	case value.Bytes:
		return scalarNode(tagBinary, base64.StdEncoding.EncodeToString(val)), nil
	case value.Array:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: tagSeq}
		for i, elem := range val {
			child, err := toNode(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case value.Object:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: tagMap}
		for _, k := range val.SortedKeys() {
			child, err := toNode(val[k])
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			node.Content = append(node.Content, scalarNode(tagStr, k), child)
		}
		return node, nil
	case value.Dict:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: tagMap}
		for i, p := range val {
			key, err := toNode(p.Key)
			if err != nil {
				return nil, fmt.Errorf("dict[%d] key: %w", i, err)
			}
			child, err := toNode(p.Value)
			if err != nil {
				return nil, fmt.Errorf("dict[%d]: %w", i, err)
			}
			node.Content = append(node.Content, key, child)
		}
		return node, nil
	default:
		return nil, fmt.Errorf("unknown Value type: %T", v)
	}
}

func formatYAMLFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s, _ := value.FormatFloat(f)
	return s
}

// yamlDecoder converts a node tree to a value graph. Aliases are expanded,
// so every visited node is charged against budget.
type yamlDecoder struct {
	budget int
}

// nodeBudget bounds the nodes a document of size bytes may expand to. A
// document without aliases has at most about one node per byte.
func nodeBudget(size int) int {
	return 10*size + 1024
}

func (d *yamlDecoder) fromNode(n *yaml.Node, depth int) (value.Value, error) {
	if depth > value.MaxDepth {
		return nil, fmt.Errorf("nesting deeper than %d", value.MaxDepth)
	}
	d.budget--
	if d.budget < 0 {
		return nil, fmt.Errorf("line %d: document expands to too many nodes through aliases", n.Line)
	}
	switch n.Kind {
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("line %d: dangling alias", n.Line)
		}
		return d.fromNode(n.Alias, depth+1)
	case yaml.ScalarNode:
		return fromScalar(n)
	case yaml.SequenceNode:
		arr := make(value.Array, 0, len(n.Content))
		for i, child := range n.Content {
			v, err := d.fromNode(child, depth+1)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.MappingNode:
		return d.fromMapping(n, depth)
	default:
		return nil, fmt.Errorf("line %d: unexpected node kind %d", n.Line, n.Kind)
	}
}

func fromScalar(n *yaml.Node) (value.Value, error) {
	switch n.ShortTag() {
	case tagNull:
		return value.Null{}, nil
	case tagBool:
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return value.Bool(b), nil
	case tagInt:
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return value.Int(i), nil
	case tagFloat:
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return value.Float(f), nil
	case tagBinary:
		clean := strings.Join(strings.Fields(n.Value), "")
		data, err := base64.StdEncoding.DecodeString(clean)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid !!binary: %w", n.Line, err)
		}
		return value.Bytes(data), nil
	default:
		// !!str, !!timestamp and application tags keep their text.
		return value.String(n.Value), nil
	}
}

func (d *yamlDecoder) fromMapping(n *yaml.Node, depth int) (value.Value, error) {
	if len(n.Content)%2 != 0 {
		return nil, fmt.Errorf("line %d: malformed mapping", n.Line)
	}

	keys := make([]value.Value, 0, len(n.Content)/2)
	vals := make([]value.Value, 0, len(n.Content)/2)
	allText := true
	for i := 0; i < len(n.Content); i += 2 {
		key, err := d.fromNode(n.Content[i], depth+1)
		if err != nil {
			return nil, fmt.Errorf("key at line %d: %w", n.Content[i].Line, err)
		}
		if !value.IsScalar(key) {
			return nil, fmt.Errorf("line %d: mapping key of kind %s is not scalar", n.Content[i].Line, value.KindOf(key))
		}
		if _, ok := key.(value.String); !ok {
			allText = false
		}
		v, err := d.fromNode(n.Content[i+1], depth+1)
		if err != nil {
			return nil, fmt.Errorf("value at line %d: %w", n.Content[i+1].Line, err)
		}
		keys = append(keys, key)
		vals = append(vals, v)
	}

	if allText {
		obj := make(value.Object, len(keys))
		for i, k := range keys {
			text := string(k.(value.String))
			if _, dup := obj[text]; dup {
				return nil, fmt.Errorf("line %d: duplicate key %q", n.Content[2*i].Line, text)
			}
			obj[text] = vals[i]
		}
		return obj, nil
	}
	dict := make(value.Dict, len(keys))
	for i := range keys {
		dict[i] = value.Pair{Key: keys[i], Value: vals[i]}
	}
	if err := value.Validate(dict); err != nil {
		return nil, err
	}
	return dict, nil
}
