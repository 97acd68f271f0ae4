// Package output serializes the DuplicateSet list to an output file, in
// either JSON or TOML.
package output

import (
	"encoding/json"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ivoronin/dupereconcile/internal/errs"
	"github.com/ivoronin/dupereconcile/internal/types"
)

// Format names a supported output serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Valid reports whether f is a recognized format tag.
func Valid(f Format) bool {
	return f == FormatJSON || f == FormatTOML
}

// record is the wire shape of one DuplicateSet entry.
type record struct {
	Size  int64    `json:"size" toml:"size"`
	Hash  string   `json:"hash" toml:"hash"`
	Files []string `json:"files" toml:"files"`
}

// document is the top-level shape: a list of records. TOML has no bare
// top-level array, so it's wrapped under a "sets" key; JSON stays a bare
// array.
type document struct {
	Sets []record `toml:"sets"`
}

func toRecords(sets []*types.DuplicateSet) []record {
	records := make([]record, len(sets))
	for i, s := range sets {
		files := make([]string, len(s.Files))
		for j, f := range s.Files {
			files[j] = f.Path
		}
		records[i] = record{Size: s.Size, Hash: s.Hash, Files: files}
	}
	return records
}

// Write serializes sets to path in the given format. An empty sets slice
// still produces a file containing an empty list, never a missing file.
func Write(path string, format Format, sets []*types.DuplicateSet) error {
	if !Valid(format) {
		return errs.Newf(errs.InvalidConfig, "unknown output format %q", format)
	}

	records := toRecords(sets)
	if records == nil {
		records = []record{}
	}

	f, err := os.Create(path)
	if err != nil {
		return errs.New(errs.ActionError, err)
	}
	defer func() { _ = f.Close() }()

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return errs.New(errs.ActionError, err)
		}
	case FormatTOML:
		enc := toml.NewEncoder(f)
		if err := enc.Encode(document{Sets: records}); err != nil {
			return errs.New(errs.ActionError, err)
		}
	}

	return nil
}
