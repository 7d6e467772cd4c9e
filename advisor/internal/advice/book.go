package advice

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed advice.yaml
var embedded []byte

// General is the answer for a topic the book does not cover.
const General = "General agricultural advice: Focus on soil health, proper irrigation, " +
	"integrated pest management, and sustainable farming practices."

// Entry is the advice for one topic.
type Entry struct {
	ID     string   `yaml:"id" json:"id"`
	Title  string   `yaml:"title" json:"title"`
	Advice []string `yaml:"advice" json:"advice"`
}

// Answer is the result of a lookup. Exactly one of Entry and Fallback is set.
type Answer struct {
	Topic    string `yaml:"topic" json:"topic"`
	Entry    *Entry `yaml:"entry,omitempty" json:"entry,omitempty"`
	Fallback string `yaml:"fallback,omitempty" json:"fallback,omitempty"`
}

// Found reports whether the topic matched an entry.
func (a Answer) Found() bool { return a.Entry != nil }

// Book is an immutable, ordered set of advice topics.
type Book struct {
	order   []string
	entries map[string]Entry
}

var defaultBook = sync.OnceValues(func() (*Book, error) {
	return Parse(embedded)
})

// Default returns the book built from the embedded topics.
func Default() (*Book, error) {
	return defaultBook()
}

// Parse decodes a book from YAML.
func Parse(data []byte) (*Book, error) {
	var f struct {
		Topics []Entry `yaml:"topics"`
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("advice: parse yaml: %w", err)
	}
	b := &Book{entries: make(map[string]Entry, len(f.Topics))}
	for i, e := range f.Topics {
		id := strings.ToLower(strings.TrimSpace(e.ID))
		if id == "" {
			return nil, fmt.Errorf("advice: topics[%d]: id is required", i)
		}
		if _, dup := b.entries[id]; dup {
			return nil, fmt.Errorf("advice: topics[%d]: duplicate id %q", i, id)
		}
		e.ID = id
		b.order = append(b.order, id)
		b.entries[id] = e
	}
	return b, nil
}

// Topics returns the topic ids in book order.
func (b *Book) Topics() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Lookup finds a topic ignoring case and surrounding space. An unknown topic
// yields the general advice followed by the list of known topics.
func (b *Book) Lookup(topic string) Answer {
	e, ok := b.entries[strings.ToLower(strings.TrimSpace(topic))]
	if !ok {
		return Answer{Topic: topic, Fallback: b.fallback()}
	}
	e.Advice = append([]string(nil), e.Advice...)
	return Answer{Topic: topic, Entry: &e}
}

func (b *Book) fallback() string {
	if len(b.order) == 0 {
		return General
	}
	return General + " For detailed guidance, try topics like: " + strings.Join(b.order, ", ") + "."
}
