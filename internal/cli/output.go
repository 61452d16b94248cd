package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	Verbose bool
}

// JSON writes the value as indented JSON with a trailing newline. Go
// maps marshal with sorted keys, so the output is deterministic and
// safe to pin in golden files.
func (f *OutputFormatter) JSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = f.Writer.Write(data)
	return err
}

// Record prints a single record: JSON in json format, "key: value"
// lines sorted by key in text format.
func (f *OutputFormatter) Record(rec map[string]any) error {
	if f.Format == "json" {
		return f.JSON(rec)
	}
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(f.Writer, "%s: %v\n", k, rec[k])
	}
	return nil
}

// Table prints a whole table as a map of records keyed by record key.
func (f *OutputFormatter) Table(t map[string]any) error {
	if f.Format == "json" {
		return f.JSON(t)
	}
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(f.Writer, "%s\t%v\n", k, t[k])
	}
	return nil
}

// List prints a plain string list, one entry per line in text format.
func (f *OutputFormatter) List(items []string) error {
	if f.Format == "json" {
		return f.JSON(items)
	}
	for _, it := range items {
		fmt.Fprintln(f.Writer, it)
	}
	return nil
}

// VerboseLog writes a diagnostic line only when verbose mode is on.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.Writer, format+"\n", args...)
}
