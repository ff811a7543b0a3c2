package comma

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed commas.toml
var defaultCatalogTOML []byte

type catalogFile struct {
	Commas []Record `toml:"comma" yaml:"commas"`
}

// Catalog is a read-only list of commas. It is safe for concurrent use.
type Catalog struct {
	commas []Comma
}

// NewCatalog validates records and builds a catalog. Duplicate ratios keep
// the first name seen.
func NewCatalog(records []Record) (*Catalog, error) {
	seen := make(map[string]struct{}, len(records))
	commas := make([]Comma, 0, len(records))
	for i, rec := range records {
		c, err := FromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		key := c.Ratio.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		commas = append(commas, c)
	}
	return &Catalog{commas: commas}, nil
}

// DefaultCatalog returns the catalog shipped with the binary.
func DefaultCatalog() (*Catalog, error) {
	records, err := DefaultRecords()
	if err != nil {
		return nil, err
	}
	return NewCatalog(records)
}

// DefaultRecords returns the raw entries of the shipped catalog.
func DefaultRecords() ([]Record, error) {
	return DecodeTOML(bytes.NewReader(defaultCatalogTOML))
}

// Len returns the number of commas.
func (c *Catalog) Len() int {
	return len(c.commas)
}

// Commas returns a copy of the catalog entries.
func (c *Catalog) Commas() []Comma {
	return append([]Comma(nil), c.commas...)
}

// Records converts the catalog back into records.
func (c *Catalog) Records() []Record {
	out := make([]Record, len(c.commas))
	for i, cm := range c.commas {
		out[i] = cm.Record()
	}
	return out
}

// LoadFile reads records from a .toml, .yaml/.yml or .txt file.
func LoadFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only catalog.
			_ = cerr
		}
	}()

	return decodeByExt(filepath.Ext(path), file)
}

func decodeByExt(ext string, r io.Reader) ([]Record, error) {
	switch strings.ToLower(ext) {
	case ".toml":
		return DecodeTOML(r)
	case ".yaml", ".yml":
		return DecodeYAML(r)
	case ".txt", "":
		return DecodeText(r)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
}

// DecodeTOML reads [[comma]] tables.
func DecodeTOML(r io.Reader) ([]Record, error) {
	var file catalogFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return file.Commas, nil
}

// DecodeYAML reads a top-level "commas" list.
func DecodeYAML(r io.Reader) ([]Record, error) {
	var file catalogFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return file.Commas, nil
}

// DecodeText reads one "ratio name..." entry per line. Blank lines and
// lines starting with # are skipped.
func DecodeText(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cut := strings.IndexFunc(line, unicode.IsSpace)
		if cut < 0 {
			return nil, fmt.Errorf("line %d: expected \"ratio name\"", lineNo)
		}
		records = append(records, Record{
			Ratio: line[:cut],
			Name:  strings.TrimSpace(line[cut:]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
