package feed

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/cognicore/rhetoric/pkg/rhetoric/speech"
)

// Entry is one decoded line
type Entry struct {
	Record   speech.Record
	Line     int
	Warnings []string
}

type reader struct {
	loc    *time.Location
	author string
	logger *log.Logger
}

// Option configures Read
type Option func(*reader)

// WithLocation sets the zone for timestamps that carry none
func WithLocation(loc *time.Location) Option {
	return func(r *reader) { r.loc = loc }
}

// WithExpectedAuthor warns about records whose author differs from name
func WithExpectedAuthor(name string) Option {
	return func(r *reader) { r.author = name }
}

// WithLogger replaces the default logger
func WithLogger(l *log.Logger) Option {
	return func(r *reader) { r.logger = l }
}

var fixedFields = map[string]bool{
	"title": true, "author": true, "text": true, "source": true, "timestamp": true,
}

// Read decodes one JSON object per line. Blank lines are ignored and
// malformed lines are logged and skipped; a timestamp that cannot be parsed
// stops the read with a *TimestampError
func Read(in io.Reader, name string, opts ...Option) ([]Entry, error) {
	r := &reader{loc: DefaultLocation(), logger: log.Default()}
	for _, opt := range opts {
		opt(r)
	}

	var entries []Entry
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		var raw map[string]any
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			r.logger.Printf("Warning: skipping malformed JSON at line %d in %s: %v", n, name, err)
			continue
		}

		e, err := r.decode(raw, n)
		if err != nil {
			return entries, fmt.Errorf("%s:%d: %w", name, n, err)
		}
		for _, w := range e.Warnings {
			r.logger.Printf("Warning: %s:%d: %s", name, n, w)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return entries, fmt.Errorf("read %s: %w", name, err)
	}
	return entries, nil
}

// ReadFile reads the named file
func ReadFile(path string, opts ...Option) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, path, opts...)
}

func (r *reader) decode(raw map[string]any, line int) (Entry, error) {
	e := Entry{Line: line}
	rec := &e.Record

	rec.Title = stringField(raw, "title", &e)
	rec.Author = stringField(raw, "author", &e)
	rec.Source = stringField(raw, "source", &e)
	rec.Text = stringField(raw, "text", &e)
	if LooksLikeHTML(rec.Text) {
		rec.Text = FlattenHTML(rec.Text)
	}

	ts, err := ParseTimestamp(stringField(raw, "timestamp", &e), r.loc)
	if err != nil {
		return e, err
	}
	rec.Timestamp = ts

	rec.Metadata = make(map[string]any)
	for k, v := range raw {
		if !fixedFields[k] {
			rec.Metadata[k] = v
		}
	}

	if r.author != "" && rec.Author != r.author {
		e.Warnings = append(e.Warnings, fmt.Sprintf("author %q, expected %q", rec.Author, r.author))
	}
	return e, nil
}

func stringField(raw map[string]any, key string, e *Entry) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	e.Warnings = append(e.Warnings, fmt.Sprintf("field %q is %T, not a string", key, v))
	return fmt.Sprint(v)
}

// Speeches binds every entry to pipe
func Speeches(entries []Entry, pipe *speech.Pipeline) []*speech.Speech {
	out := make([]*speech.Speech, len(entries))
	for i, e := range entries {
		out[i] = speech.New(e.Record, pipe)
	}
	return out
}
