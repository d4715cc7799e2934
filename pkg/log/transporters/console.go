package transporters

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"faal-poster/pkg/log"
)

// Console writes one human-readable line per entry:
//
//	15:04:05 INFO  message key=value key2="quoted value"
type Console struct {
	writer io.Writer
}

// NewConsole creates a console transporter writing to stderr.
func NewConsole() *Console {
	return &Console{writer: os.Stderr}
}

// NewConsoleWithWriter creates a console transporter with a custom writer.
func NewConsoleWithWriter(w io.Writer) *Console {
	return &Console{writer: w}
}

func (c *Console) Name() string {
	return "console"
}

func (c *Console) Write(entry log.Entry) error {
	var b strings.Builder
	b.WriteString(entry.Timestamp.Local().Format(time.TimeOnly))
	b.WriteByte(' ')
	fmt.Fprintf(&b, "%-5s ", entry.Level)
	b.WriteString(entry.Message)

	if entry.RunID != "" {
		writePair(&b, "run_id", entry.RunID)
	}

	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writePair(&b, k, entry.Fields[k])
	}
	b.WriteByte('\n')

	_, err := io.WriteString(c.writer, b.String())
	return err
}

func (c *Console) Close() error {
	return nil
}

func writePair(b *strings.Builder, key string, value any) {
	s := fmt.Sprint(value)
	if strings.ContainsAny(s, " \t\n\"=") {
		s = fmt.Sprintf("%q", s)
	}
	fmt.Fprintf(b, " %s=%s", key, s)
}
