package outputproviders

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// encodeYAML goes through JSON so that the field table and the provider
// types' own JSON names are honoured, then re-emits the tree in block style.
func encodeYAML(w io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return err
	}
	blockStyle(&node)

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(&node); err != nil {
		return err
	}
	return encoder.Close()
}

func blockStyle(node *yaml.Node) {
	if node.Kind == yaml.ScalarNode {
		// strings that would read as another type must keep their quotes
		if node.Tag != "!!str" {
			node.Style = 0
		} else if node.Style == yaml.DoubleQuotedStyle && !looksLikeNonString(node.Value) {
			node.Style = 0
		}
	} else {
		node.Style = 0
	}
	for _, child := range node.Content {
		blockStyle(child)
	}
}

func looksLikeNonString(value string) bool {
	var probe any
	if err := yaml.Unmarshal([]byte(value), &probe); err != nil {
		return true
	}
	_, isString := probe.(string)
	return !isString || value == ""
}
