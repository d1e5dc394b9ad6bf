package ogprofile

import (
	"bufio"
	"fmt"
	"io"
)

// WriteTable writes the qualifying OGs with their percentages.
func WriteTable(w io.Writer, res *Result) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("#cog\t%_occurence\tthereof_%_singlecopy\t%_occurence_as_singlecopy\n")
	for _, e := range res.Qualifying {
		fmt.Fprintf(bw, "%s\t%.1f\t%.1f\t%.1f\n", e.OG, e.Occurrence, e.Uniqueness, e.OccurrenceSingleCopy)
	}
	return bw.Flush()
}

// WriteSeqIDs writes one line per sequence of each qualifying OG.
func WriteSeqIDs(w io.Writer, s *Session, res *Result) error {
	bw := bufio.NewWriter(w)
	for _, e := range res.Qualifying {
		for _, id := range s.Group(e.OG).SeqIDs {
			fmt.Fprintf(bw, "%s\t%s\n", id, e.OG)
		}
	}
	return bw.Flush()
}

// WriteMissing writes the taxa lacking at least min qualifying OGs
// and how many they lack.
func WriteMissing(w io.Writer, res *Result, min int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "\nTaxids which are missing at least %d OGs which fulfilled the initial condition\n\n", min)
	for _, taxon := range res.Missing.Taxa() {
		n := len(res.Missing.Missing(taxon))
		if n >= min {
			fmt.Fprintf(bw, "%s\t%d\n", taxon, n)
		}
	}
	return bw.Flush()
}
