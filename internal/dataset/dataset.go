// Package dataset loads nested record files and flattens them into the rows
// a hierarchical tree layer is built over.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Common errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrNoColumns         = errors.New("dataset has no columns")
	ErrDuplicateID       = errors.New("duplicate record id")
	ErrTooDeep           = errors.New("records nested deeper than the columns")
)

// Record is one object of a level. Records of the next level are its
// children.
type Record struct {
	ID       string
	Fields   map[string]any
	Children []*Record
}

// Field returns the named field. "id" falls back to the record ID.
func (r *Record) Field(name string) any {
	if v, ok := r.Fields[name]; ok {
		return v
	}
	if name == "id" {
		return r.ID
	}
	return nil
}

func (r *Record) String() string {
	return r.ID
}

// Dataset is a named list of top level records and the column paths used
// to show them.
type Dataset struct {
	Name    string
	Columns []string
	Records []*Record
}

// Levels returns the number of levels addressed by the columns.
func (d *Dataset) Levels() int {
	levels := 0
	for _, c := range d.Columns {
		levels = max(levels, strings.Count(c, ".")+1)
	}
	return levels
}

// Validate checks that the dataset has columns, that sibling ids are unique
// and that no record is nested deeper than the columns reach.
func (d *Dataset) Validate() error {
	if len(d.Columns) == 0 {
		return ErrNoColumns
	}
	return validateRecords(d.Records, 0, d.Levels(), "")
}

func validateRecords(records []*Record, level, levels int, parent string) error {
	if len(records) > 0 && level >= levels {
		return fmt.Errorf("%w: %q has children at level %d", ErrTooDeep, parent, level)
	}
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if r.ID != "" {
			if seen[r.ID] {
				return fmt.Errorf("%w: %q below %q", ErrDuplicateID, r.ID, parent)
			}
			seen[r.ID] = true
		}
		if err := validateRecords(r.Children, level+1, levels, r.ID); err != nil {
			return err
		}
	}
	return nil
}

// AssignIDs gives every record without an ID a random one and returns how
// many were assigned. Rows of anonymous records cannot be matched across a
// reload.
func (d *Dataset) AssignIDs() int {
	return assignIDs(d.Records)
}

func assignIDs(records []*Record) int {
	n := 0
	for _, r := range records {
		if r.ID == "" {
			r.ID = uuid.NewString()
			n++
		}
		n += assignIDs(r.Children)
	}
	return n
}

// Format is the encoding of a dataset file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf derives the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads and validates a dataset file.
func Load(path string) (*Dataset, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}
	ds, err := Decode(content, format)
	if err != nil {
		return nil, err
	}
	if ds.Name == "" {
		ds.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return ds, nil
}

// Decode parses and validates dataset content.
func Decode(content []byte, format Format) (*Dataset, error) {
	var data datasetData
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal dataset: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal dataset: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	ds := fromStorageFormat(&data)
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}
	return ds, nil
}

// Encode serialises a dataset.
func Encode(ds *Dataset, format Format) ([]byte, error) {
	data := toStorageFormat(ds)
	var (
		content []byte
		err     error
	)
	switch format {
	case FormatYAML:
		content, err = yaml.Marshal(data)
	case FormatJSON:
		content, err = json.MarshalIndent(data, "", "  ")
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal dataset: %w", err)
	}
	return content, nil
}

// Storage format types

type datasetData struct {
	Name    string       `yaml:"name,omitempty" json:"name,omitempty"`
	Columns []string     `yaml:"columns" json:"columns"`
	Records []recordData `yaml:"records,omitempty" json:"records,omitempty"`
}

type recordData struct {
	ID       string         `yaml:"id,omitempty" json:"id,omitempty"`
	Fields   map[string]any `yaml:"fields,omitempty" json:"fields,omitempty"`
	Children []recordData   `yaml:"children,omitempty" json:"children,omitempty"`
}

// Conversion functions

func toStorageFormat(ds *Dataset) *datasetData {
	return &datasetData{
		Name:    ds.Name,
		Columns: ds.Columns,
		Records: toRecordData(ds.Records),
	}
}

func toRecordData(records []*Record) []recordData {
	var out []recordData
	for _, r := range records {
		out = append(out, recordData{
			ID:       r.ID,
			Fields:   r.Fields,
			Children: toRecordData(r.Children),
		})
	}
	return out
}

func fromStorageFormat(data *datasetData) *Dataset {
	return &Dataset{
		Name:    data.Name,
		Columns: data.Columns,
		Records: fromRecordData(data.Records),
	}
}

func fromRecordData(data []recordData) []*Record {
	var out []*Record
	for i := range data {
		out = append(out, &Record{
			ID:       data[i].ID,
			Fields:   data[i].Fields,
			Children: fromRecordData(data[i].Children),
		})
	}
	return out
}
