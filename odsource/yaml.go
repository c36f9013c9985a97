// SPDX-License-Identifier: MIT

package odsource

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/spatialacc/od"
)

// Document is the YAML layout of an OD table:
//
//	records:
//	  - {origin: "1", destination: a, travel_cost: 12.5, demand: 100, supply: 10}
type Document struct {
	Records []od.Record `yaml:"records"`
}

// ReadYAML decodes a Document. An empty stream yields no records.
func ReadYAML(r io.Reader) ([]od.Record, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("yaml: %w", err)
	}

	return doc.Records, nil
}

// WriteYAML encodes records as a Document.
func WriteYAML(w io.Writer, records []od.Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Document{Records: records}); err != nil {
		return err
	}

	return enc.Close()
}
