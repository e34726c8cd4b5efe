package manifest

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type yamlRoot struct {
	Blocks []Definition `yaml:"blocks"`
}

// ParseYAML decodes a manifest of the form
//
//	blocks:
//	  - name: acme/notice
//	    category: common
//	    template: <div class="notice"><p></p></div>
//	    attributes:
//	      - name: message
//	        type: array
//	        source: {type: children, selector: p}
func ParseYAML(r io.Reader, filename string) ([]Definition, error) {
	var root yamlRoot
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", filename, err)
	}
	for i := range root.Blocks {
		root.Blocks[i].File = filename
	}
	return root.Blocks, nil
}

// LoadYAMLFile reads and decodes one manifest file.
func LoadYAMLFile(path string) ([]Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseYAML(f, path)
}
