package stepper

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrEmptyCatalog is returned when a catalog document carries no data.
var ErrEmptyCatalog = errors.New("stepper: catalog document is empty")

type catalogFile struct {
	Steps []Step `yaml:"steps"`
}

// ParseCatalogYAML decodes a catalog document. Unknown keys are rejected so a
// misspelled field such as "requried_role" fails loudly instead of leaving
// the role blank.
func ParseCatalogYAML(data []byte) (Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Catalog{}, ErrEmptyCatalog
	}
	return decodeCatalog(bytes.NewReader(data))
}

// LoadCatalogReader decodes a catalog document from r.
func LoadCatalogReader(r io.Reader) (Catalog, error) {
	return decodeCatalog(r)
}

// LoadCatalogFile decodes the catalog at path. Errors name the file.
func LoadCatalogFile(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("stepper: open catalog: %w", err)
	}
	defer f.Close()
	catalog, err := decodeCatalog(f)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog %s: %w", path, err)
	}
	return catalog, nil
}

func decodeCatalog(r io.Reader) (Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return Catalog{}, ErrEmptyCatalog
		}
		return Catalog{}, fmt.Errorf("stepper: invalid catalog yaml: %w", err)
	}
	return NewCatalog(file.Steps)
}
