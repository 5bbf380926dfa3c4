package report

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// NormalizeModelMeta validates an uploaded model metadata file as YAML and
// re-renders it canonically, preserving key order. Invalid YAML is rejected
// rather than passed through to prompts.
func NormalizeModelMeta(raw []byte) (string, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return "", fmt.Errorf("bad metadata file: %w", err)
	}
	if node.Kind == 0 {
		return "", nil
	}
	out, err := yaml.Marshal(&node)
	if err != nil {
		return "", fmt.Errorf("bad metadata file: %w", err)
	}
	return strings.TrimRight(string(out), "\n") + "\n", nil
}
