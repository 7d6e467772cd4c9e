package croptable

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/cropadvisor/cropadvisor/pkg/types"
)

// MaxCrops bounds the number of records a table may hold.
const MaxCrops = 1024

var (
	// ErrUnknownCrop is returned by lookups that must name an existing crop.
	ErrUnknownCrop = errors.New("croptable: unknown crop")

	// ErrUnknownGuidance is returned for a guidance kind other than
	// fielding, management or maintenance.
	ErrUnknownGuidance = errors.New("croptable: unknown guidance type")
)

//go:embed crops.yaml
var embedded []byte

// file is the on-disk layout of a crop table.
type file struct {
	Crops []types.CropRecord `yaml:"crops"`
}

// Table is an immutable crop reference table. Lookups hand out deep
// copies, so a Table is safe for concurrent use without locking.
type Table struct {
	order   []string
	records map[string]types.CropRecord
}

// Category groups crop ids that share a category, in table order.
type Category struct {
	Name  string
	Crops []string
}

var defaultTable = sync.OnceValues(func() (*Table, error) {
	return Parse(embedded)
})

// Default returns the table built from the embedded dataset. The dataset is
// parsed on first use and the same *Table is returned afterwards.
func Default() (*Table, error) {
	return defaultTable()
}

// Load reads and parses a crop table YAML file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("croptable: read file: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, err
	}
	slog.Info("croptable: loaded", "path", path, "crops", t.Len())
	return t, nil
}

// Parse decodes a crop table from YAML.
func Parse(data []byte) (*Table, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("croptable: parse yaml: %w", err)
	}
	return New(f.Crops)
}

// New builds a table from records in the given order. Records are copied.
func New(records []types.CropRecord) (*Table, error) {
	if len(records) > MaxCrops {
		return nil, fmt.Errorf("croptable: %d crops exceeds limit of %d", len(records), MaxCrops)
	}
	t := &Table{
		order:   make([]string, 0, len(records)),
		records: make(map[string]types.CropRecord, len(records)),
	}
	for i, rec := range records {
		if err := validate(rec); err != nil {
			return nil, fmt.Errorf("croptable: crops[%d]: %w", i, err)
		}
		if _, dup := t.records[rec.ID]; dup {
			return nil, fmt.Errorf("croptable: crops[%d]: duplicate id %q", i, rec.ID)
		}
		t.order = append(t.order, rec.ID)
		t.records[rec.ID] = rec.Clone()
	}
	return t, nil
}

// validate checks one record's id and intervals.
func validate(rec types.CropRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("id is required")
	}
	if rec.ID != strings.ToLower(rec.ID) {
		return fmt.Errorf("id %q must be lowercase", rec.ID)
	}
	if err := rec.Optimal.Validate(); err != nil {
		return fmt.Errorf("%q: optimal_conditions.%w", rec.ID, err)
	}
	return nil
}

// Len returns the number of crops.
func (t *Table) Len() int {
	return len(t.order)
}

// List returns crop ids in table order.
func (t *Table) List() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Get returns the record stored under exactly id.
func (t *Table) Get(id string) (types.CropRecord, bool) {
	rec, ok := t.records[id]
	if !ok {
		return types.CropRecord{}, false
	}
	return rec.Clone(), true
}

// Lookup is Get with the id lowercased first.
func (t *Table) Lookup(id string) (types.CropRecord, bool) {
	return t.Get(strings.ToLower(id))
}

// Categories returns the categories in order of first appearance, each
// listing its crops in table order.
func (t *Table) Categories() []Category {
	var out []Category
	index := make(map[string]int)
	for _, id := range t.order {
		cat := t.records[id].Category
		i, ok := index[cat]
		if !ok {
			i = len(out)
			index[cat] = i
			out = append(out, Category{Name: cat})
		}
		out[i].Crops = append(out[i].Crops, id)
	}
	return out
}

// Guidance returns one guidance group for a crop. Both arguments are
// matched case-insensitively.
func (t *Table) Guidance(cropID, kind string) (types.Guidance, error) {
	rec, ok := t.Lookup(cropID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCrop, cropID)
	}
	g, ok := rec.Guidance(strings.ToLower(kind))
	if !ok {
		return nil, fmt.Errorf("%w: %q (use %s)", ErrUnknownGuidance, kind, strings.Join(types.GuidanceKinds, ", "))
	}
	return g, nil
}
