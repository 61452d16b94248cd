package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/tablesync/internal/record"
)

// marshalRecord converts a record to JSON TEXT for storage. HTML
// escaping is disabled so stored payloads stay byte-comparable with
// what callers wrote.
func marshalRecord(rec record.Record) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	// Encoder adds a trailing newline, remove it.
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// unmarshalRecord parses JSON TEXT into a record. Numbers decode as
// json.Number so numeric ids survive coercion to string without
// float64 precision loss.
func unmarshalRecord(data string) (record.Record, error) {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()
	var rec record.Record
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return rec, nil
}
