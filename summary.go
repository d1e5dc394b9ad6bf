package ogprofile

import (
	"github.com/montanaflynn/stats"
)

// Summary describes the qualifying OGs of a run.
type Summary struct {
	Groups           int // OGs in the table.
	Taxa             int // taxa in the table.
	Qualifying       int
	MeanOccurrence   float64
	MedianOccurrence float64
	MeanUniqueness   float64
	MedianUniqueness float64
}

// Summarize returns a Summary of res.
// The means and medians are zero when no OG qualifies.
func (s *Session) Summarize(res *Result) Summary {
	sum := Summary{
		Groups:     s.Table.Len(),
		Taxa:       s.Table.Taxa.Len(),
		Qualifying: len(res.Qualifying),
	}
	if sum.Qualifying == 0 {
		return sum
	}

	occ := make([]float64, 0, len(res.Qualifying))
	uniq := make([]float64, 0, len(res.Qualifying))
	for _, e := range res.Qualifying {
		occ = append(occ, e.Occurrence)
		uniq = append(uniq, e.Uniqueness)
	}
	sum.MeanOccurrence, _ = stats.Mean(occ)
	sum.MedianOccurrence, _ = stats.Median(occ)
	sum.MeanUniqueness, _ = stats.Mean(uniq)
	sum.MedianUniqueness, _ = stats.Median(uniq)
	return sum
}
