// Package transporters holds the log.Transporter implementations.
package transporters

import (
	"encoding/json"
	"io"
	"os"

	"faal-poster/pkg/log"
)

// JSON writes line-delimited JSON entries.
type JSON struct {
	writer io.Writer
}

// NewJSON creates a JSON transporter writing to stderr.
// Stdout is left to the command's own status output.
func NewJSON() *JSON {
	return &JSON{writer: os.Stderr}
}

// NewJSONWithWriter creates a JSON transporter with a custom writer.
func NewJSONWithWriter(w io.Writer) *JSON {
	return &JSON{writer: w}
}

func (j *JSON) Name() string {
	return "json"
}

func (j *JSON) Write(entry log.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = j.writer.Write(data)
	return err
}

func (j *JSON) Close() error {
	return nil
}
