package compute

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cropadvisor/cropadvisor/pkg/types"
)

// TopN is the number of entries in Result.TopRecommendations.
const TopN = 3

// Note is the informational text attached to every Result.
const Note = "Offline recommendation system with detailed guidance"

var (
	// ErrEmptyTable is returned by Recommend when the table has no crops.
	ErrEmptyTable = errors.New("compute: crop table is empty")

	// ErrInvalidInput is returned by Recommend when an observation is NaN
	// or infinite.
	ErrInvalidInput = errors.New("compute: invalid conditions")
)

// Recommender ranks every crop in a table against observed conditions.
// It is safe for concurrent use.
type Recommender struct {
	table  Table
	scorer *Scorer
}

// NewRecommender returns a Recommender over t.
func NewRecommender(t Table) *Recommender {
	return &Recommender{table: t, scorer: NewScorer(t)}
}

// Scorer returns the scorer used for ranking.
func (r *Recommender) Scorer() *Scorer {
	return r.scorer
}

// Rank scores every crop and returns all of them sorted by descending
// confidence. Crops with equal scores keep their table order.
func (r *Recommender) Rank(in types.Conditions) []types.Recommendation {
	ids := r.table.List()
	out := make([]types.Recommendation, 0, len(ids))
	for _, id := range ids {
		out = append(out, types.Recommendation{Crop: id, Confidence: r.scorer.Score(id, in)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

// Recommend ranks the table and describes the best match.
//
// It fails with ErrInvalidInput when in holds a NaN or infinite value and
// with ErrEmptyTable when there is nothing to rank.
func (r *Recommender) Recommend(in types.Conditions) (*types.Result, error) {
	res, _, err := r.RecommendRanked(in)
	return res, err
}

// RecommendRanked is Recommend that also returns the ranking of every crop
// in the table, as Rank would.
func (r *Recommender) RecommendRanked(in types.Conditions) (*types.Result, []types.Recommendation, error) {
	if err := in.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	ranked := r.Rank(in)
	if len(ranked) == 0 {
		return nil, nil, ErrEmptyTable
	}

	best := ranked[0].Crop
	rec, ok := r.table.Get(best)
	if !ok {
		return nil, nil, fmt.Errorf("compute: ranked crop %q vanished from table", best)
	}

	n := min(TopN, len(ranked))
	top := make([]types.Recommendation, n)
	copy(top, ranked[:n])

	return &types.Result{
		InputConditions:    in,
		RecommendedCrop:    best,
		TopRecommendations: top,
		CropDetails:        types.NewCropDetails(rec),
		DetailedGuidance: types.DetailedGuidance{
			Fielding:    rec.Fielding.Clone(),
			Management:  rec.Management.Clone(),
			Maintenance: rec.Maintenance.Clone(),
		},
		Note:        Note,
		OfflineMode: true,
	}, ranked, nil
}

// CropInfo looks a crop up by id, ignoring case.
func (r *Recommender) CropInfo(id string) (types.CropRecord, bool) {
	return r.table.Lookup(id)
}

// ListCrops returns every crop id in table order.
func (r *Recommender) ListCrops() []string {
	return r.table.List()
}
