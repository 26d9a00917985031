package genemodel

import (
	"fmt"
	"os"
	"sort"

	"go.yaml.in/yaml/v3"
)

// Load reads a gene model file and returns every model in it. The file may
// be a list of genes or a named collection; collection entries are returned
// in name order. Structural validation runs before decoding, coordinate
// checks after.
func Load(path string) ([]Model, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	models, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("gene model %s: %w", path, err)
	}
	return models, nil
}

// ParseOne reads a gene model file that must hold exactly one gene, the form
// stored for a registered user-defined gene.
func ParseOne(path string) (*Model, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	shape, err := detectShape(data)
	if err != nil {
		return nil, fmt.Errorf("gene model %s: %w", path, err)
	}
	if shape == shapeCollection {
		return nil, fmt.Errorf("gene model %s has top-level names, which makes it a collection; register each gene separately", path)
	}

	models, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("gene model %s: %w", path, err)
	}
	if len(models) != 1 {
		return nil, fmt.Errorf("gene model %s holds %d genes, expected exactly one", path, len(models))
	}
	return &models[0], nil
}

// Parse decodes gene models from raw YAML.
func Parse(data []byte) ([]Model, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if err := result.Err(); err != nil {
		return nil, err
	}

	shape, err := detectShape(data)
	if err != nil {
		return nil, err
	}

	var models []Model
	switch shape {
	case shapeList:
		if err := yaml.Unmarshal(data, &models); err != nil {
			return nil, fmt.Errorf("parsing gene list: %w", err)
		}
	case shapeCollection:
		var coll map[string]Model
		if err := yaml.Unmarshal(data, &coll); err != nil {
			return nil, fmt.Errorf("parsing gene collection: %w", err)
		}
		names := make([]string, 0, len(coll))
		for name := range coll {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			models = append(models, coll[name])
		}
	}

	for i := range models {
		if err := models[i].Check(); err != nil {
			return nil, err
		}
	}
	return models, nil
}

type documentShape int

const (
	shapeList documentShape = iota
	shapeCollection
)

// detectShape unmarshals the document generically and reports whether it is
// a gene list or a named collection.
func detectShape(data []byte) (documentShape, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("unmarshaling YAML: %w", err)
	}
	switch raw.(type) {
	case []interface{}:
		return shapeList, nil
	case map[string]interface{}:
		return shapeCollection, nil
	default:
		return 0, fmt.Errorf("document is %T, expected a gene list", raw)
	}
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
