package store

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/solvercfg/internal/errors"
)

// YAML is a Store backed by a YAML mapping of sections to mappings.
// Section and key order from the file is preserved.
type YAML struct {
	*Memory
}

// NewYAML returns an empty YAML document.
func NewYAML() *YAML {
	return &YAML{Memory: NewMemory()}
}

// DecodeYAML parses data. Scalars keep the text they were written with.
func DecodeYAML(data []byte) (*YAML, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "parsing YAML")
	}

	doc := NewYAML()
	if root.Kind == 0 || len(root.Content) == 0 {
		return doc, nil
	}

	top := root.Content[0]
	if top.Kind == yaml.ScalarNode && top.Tag == "!!null" {
		return doc, nil
	}
	if top.Kind != yaml.MappingNode {
		return nil, errors.Newf("parsing YAML: line %d: document is not a mapping", top.Line)
	}

	for i := 0; i+1 < len(top.Content); i += 2 {
		section, body := top.Content[i].Value, top.Content[i+1]
		_ = doc.AddSection(section)

		if body.Kind == yaml.ScalarNode && body.Tag == "!!null" {
			continue
		}
		if body.Kind != yaml.MappingNode {
			return nil, errors.Newf("parsing YAML: line %d: section %q is not a mapping", body.Line, section)
		}
		for j := 0; j+1 < len(body.Content); j += 2 {
			key, val := body.Content[j].Value, body.Content[j+1]
			if val.Kind != yaml.ScalarNode {
				return nil, errors.Newf("parsing YAML: line %d: %s.%s is not a scalar", val.Line, section, key)
			}
			doc.put(section, key, val.Value)
		}
	}
	return doc, nil
}

// Encode implements Document. Every value is written as a string scalar.
func (d *YAML) Encode() ([]byte, error) {
	top := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, sec := range d.sections {
		body := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range sec.keys {
			body.Content = append(body.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: sec.values[k]},
			)
		}
		top.Content = append(top.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: sec.name},
			body,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(top); err != nil {
		return nil, errors.Wrap(err, "writing YAML")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "writing YAML")
	}
	return buf.Bytes(), nil
}
