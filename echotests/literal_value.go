package echotests

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// The largest integer magnitude that survives conversion to a JSON number without rounding.
const maxExactInteger int64 = 1 << 53

var integerText = regexp.MustCompile(`^[-+]?[0-9_]+$`)

// LiteralValue is arbitrary YAML data in a scenario file, decoded into the same types as
// yaml.v3 would use for an interface{}, except that timestamps keep their original text.
type LiteralValue struct {
	value interface{}
}

// IsDefined returns true if the value was present and not null.
func (v LiteralValue) IsDefined() bool {
	return v.value != nil
}

func (v *LiteralValue) UnmarshalYAML(node *yaml.Node) error {
	value, err := decodeLiteral(node)
	if err != nil {
		return err
	}
	v.value = value
	return nil
}

func decodeLiteral(node *yaml.Node) (interface{}, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return decodeLiteral(node.Content[0])
	case yaml.AliasNode:
		return decodeLiteral(node.Alias)
	case yaml.SequenceNode:
		ret := make([]interface{}, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := decodeLiteral(item)
			if err != nil {
				return nil, err
			}
			ret = append(ret, value)
		}
		return ret, nil
	case yaml.MappingNode:
		ret := make(map[string]interface{}, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: property names must be scalars", key.Line)
			}
			value, err := decodeLiteral(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			ret[key.Value] = value
		}
		return ret, nil
	case yaml.ScalarNode:
		return decodeScalar(node)
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", node.Line)
	}
}

func decodeScalar(node *yaml.Node) (interface{}, error) {
	if node.ShortTag() == "!!timestamp" {
		return node.Value, nil
	}
	var value interface{}
	if err := node.Decode(&value); err != nil {
		return nil, err
	}
	tooLarge := false
	switch n := value.(type) {
	case int:
		tooLarge = int64(n) > maxExactInteger || int64(n) < -maxExactInteger
	case int64:
		tooLarge = n > maxExactInteger || n < -maxExactInteger
	case uint64:
		tooLarge = n > uint64(maxExactInteger)
	case float64:
		// integers too large for int64 or uint64 are decoded as floats
		tooLarge = integerText.MatchString(node.Value) && (n > float64(maxExactInteger) || n < -float64(maxExactInteger))
	}
	if tooLarge {
		return nil, fmt.Errorf("line %d: integer %s cannot be sent exactly as a JSON number; quote it to send a string",
			node.Line, node.Value)
	}
	return value, nil
}
