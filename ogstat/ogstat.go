// Package ogstat calculates occurrence and uniqueness of orthologous groups.
package ogstat

// Stats holds the percentages of one orthologous group.
type Stats struct {
	Occurrence           float64 // % of all taxa where the OG is present.
	Uniqueness           float64 // % of occurring taxa where the OG is single-copy.
	OccurrenceSingleCopy float64 // % of all taxa where the OG is single-copy.
}

// Calc calculates the statistics of an OG.
//
// taxa holds the taxon of every sequence of the OG, so a taxon
// appears once per sequence. nAll is the number of taxa in the
// taxonomic group. For example, taxa [2 3 4 4] in a group of 4 taxa
// gives 75% occurrence (3 of 4 taxa), 66.7% uniqueness (single-copy
// in 2 of 3 taxa) and 50% occurrence as single-copy (2 of 4 taxa).
//
// taxa must not be empty and nAll must be positive.
func Calc(taxa []string, nAll int) Stats {
	counts := make(map[string]int, len(taxa))
	for _, t := range taxa {
		counts[t]++
	}
	nDistinct := len(counts)
	nSingle := 0
	for _, n := range counts {
		if n == 1 {
			nSingle++
		}
	}

	return Stats{
		Occurrence:           float64(nDistinct) / float64(nAll) * 100,
		Uniqueness:           float64(nSingle) / float64(nDistinct) * 100,
		OccurrenceSingleCopy: float64(nSingle) / float64(nAll) * 100,
	}
}

