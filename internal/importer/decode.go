// Package importer reads a corpus directory into per-subdomain registries and
// writes a registry back out in the same layout.
package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/medcorpus/internal/domain"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath maps a file extension to a document format.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return "", false
	}
}

// DecodeTopic parses one topic document. Unknown fields are rejected in both
// formats.
func DecodeTopic(data []byte, f Format) (*domain.TopicRecord, error) {
	var rec domain.TopicRecord
	if err := decodeStrict(data, f, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// DecodeCategoryIndex parses a subdomain's _category document.
func DecodeCategoryIndex(data []byte, f Format) (*domain.CategoryIndex, error) {
	var idx domain.CategoryIndex
	if err := decodeStrict(data, f, &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}

func decodeStrict(data []byte, f Format, out any) error {
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(out); err != nil {
			if errors.Is(err, io.EOF) {
				return errors.New("empty document")
			}
			return err
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return errors.New("unexpected data after document")
		}
		return nil
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(out); err != nil {
			if errors.Is(err, io.EOF) {
				return errors.New("empty document")
			}
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q", f)
	}
}
