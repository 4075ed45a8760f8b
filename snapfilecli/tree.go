package snapfilecli

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"go.inout.gg/snapfile/pkg/snaptree"
)

var ErrInvalidTree = errors.New("snapfile: invalid tree document")

// DecodeTree parses a YAML document into a directory value tree.
//
// Mappings become directories. Scalars become text files holding the scalar
// as written, and scalars tagged !!binary become binary files. An empty
// document is an empty tree.
func DecodeTree(data []byte) (snaptree.Dir, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTree, err)
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		return snaptree.Dir{}, nil
	}

	root := resolveAlias(doc.Content[0])
	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		return snaptree.Dir{}, nil
	}

	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: document must be a mapping", ErrInvalidTree, root.Line)
	}

	return decodeMapping(root)
}

func decodeMapping(node *yaml.Node) (snaptree.Dir, error) {
	dir := make(snaptree.Dir, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := resolveAlias(node.Content[i]), resolveAlias(node.Content[i+1])
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d: keys must be scalars", ErrInvalidTree, key.Line)
		}

		if _, ok := dir[key.Value]; ok {
			return nil, fmt.Errorf("%w: line %d: duplicate key %q", ErrInvalidTree, key.Line, key.Value)
		}

		v, err := decodeValue(value)
		if err != nil {
			return nil, err
		}

		dir[key.Value] = v
	}

	return dir, nil
}

func decodeValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.MappingNode:
		return decodeMapping(node)
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!binary":
			data, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(node.Value), ""))
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidTree, node.Line, err)
			}

			return data, nil
		case "!!null":
			return "", nil
		}

		return node.Value, nil
	}

	return nil, fmt.Errorf("%w: line %d: values must be mappings or scalars", ErrInvalidTree, node.Line)
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	return node
}
