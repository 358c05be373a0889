package serial

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Encode writes records as an indented JSON array.
func Encode(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if records == nil {
		records = []Record{}
	}
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("serial: encode: %w", err)
	}
	return nil
}

// Decode reads a JSON array of records. Numbers are kept as json.Number
// until they are applied to a uniform slot of known kind.
func Decode(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var records []Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("serial: decode: %w", err)
	}
	for i, rec := range records {
		if rec.ShaderClassName == "" {
			return nil, fmt.Errorf("serial: decode: record %d has no shaderClassName", i)
		}
	}
	return records, nil
}

// Marshal returns the JSON encoding of records.
func Marshal(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes records from data.
func Unmarshal(data []byte) ([]Record, error) {
	return Decode(bytes.NewReader(data))
}

// WriteFile encodes records into the named file.
func WriteFile(path string, records []Record) error {
	data, err := Marshal(records)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile decodes records from the named file.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
