package compute

import (
	"github.com/cropadvisor/cropadvisor/pkg/types"
)

// Table is the read-only view of the crop reference table the scorer needs.
// *croptable.Table satisfies it.
type Table interface {
	List() []string
	Get(id string) (types.CropRecord, bool)
	Lookup(id string) (types.CropRecord, bool)
}

// Scorer computes suitability scores against a crop table.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	table Table
}

// NewScorer returns a Scorer over t.
func NewScorer(t Table) *Scorer {
	return &Scorer{table: t}
}

// Score returns the suitability of conditions for the crop stored under
// exactly cropID. Unknown crops score 0.
func (s *Scorer) Score(cropID string, in types.Conditions) float64 {
	out, ok := s.Breakdown(cropID, in)
	if !ok {
		return 0
	}
	return out.Score
}

// Breakdown is Score with the per-factor detail. It reports false for
// unknown crops.
func (s *Scorer) Breakdown(cropID string, in types.Conditions) (Output, bool) {
	rec, ok := s.table.Get(cropID)
	if !ok {
		return Output{}, false
	}
	return Compute(in, rec.Optimal), true
}
