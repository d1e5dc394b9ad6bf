// Package ogprofile filters orthologous groups by how widely and how often
// as single-copy they occur across the genomes of a taxonomic level, and
// tracks which genomes lack the groups that pass.
package ogprofile

import (
	"fmt"
	"io"
	"runtime"

	"github.com/mingzhi/ogprofile/members"
	"github.com/mingzhi/ogprofile/ogstat"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Log is the logger used by the package. Commands set its level and output.
var Log = logrus.New()

// Thresholds are minimum percentages an OG must reach to qualify.
type Thresholds struct {
	MinOccurrence           float64
	MinUniqueness           float64
	MinOccurrenceSingleCopy float64
}

// ConfigError reports thresholds that should not be combined.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration: " + e.Reason
}

// Validate checks that occurrence/uniqueness and occurrence as single-copy
// are not both set.
func (th Thresholds) Validate() error {
	if (th.MinOccurrence != 0 || th.MinUniqueness != 0) && th.MinOccurrenceSingleCopy != 0 {
		return &ConfigError{Reason: "it doesn't seem to make sense to set min. occurence/min. uniqueness " +
			"AND min. occurence as single-copy at the same time, pick one"}
	}
	names := []string{"min. occurence", "min. uniqueness", "min. occurence as single-copy"}
	for i, v := range []float64{th.MinOccurrence, th.MinUniqueness, th.MinOccurrenceSingleCopy} {
		if v < 0 || v > 100 {
			Log.Warnf("%s should be 0-100, got %g", names[i], v)
		}
	}
	return nil
}

// Pass reports whether s reaches every threshold.
func (th Thresholds) Pass(s ogstat.Stats) bool {
	return s.Occurrence >= th.MinOccurrence &&
		s.Uniqueness >= th.MinUniqueness &&
		s.OccurrenceSingleCopy >= th.MinOccurrenceSingleCopy
}

// LookupError is raised (by panic) when an OG id is not in the table.
// It means a bug, not bad input.
type LookupError struct {
	OG string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("OG %s is not in the members table", e.OG)
}

// Session owns the state of one analysis run.
type Session struct {
	Table *members.Table
}

// NewSession reads a complete members table from r.
func NewSession(r io.Reader) (*Session, error) {
	Log.Info("Reading input...")
	table, err := members.Read(r)
	if err != nil {
		return nil, err
	}
	Log.Infof("read %d OGs in %d taxa", table.Len(), table.Taxa.Len())
	return &Session{Table: table}, nil
}

// Group returns the OG with the given id and panics with a LookupError
// if there is none.
func (s *Session) Group(id string) *members.Group {
	g, found := s.Table.Get(id)
	if !found {
		panic(&LookupError{OG: id})
	}
	return g
}

// Options controls Filter.
type Options struct {
	Thresholds Thresholds
	NumWorkers int // number of goroutines computing statistics; 0 means GOMAXPROCS.
	// Progress is called once per OG as its statistics are computed.
	// It is called from several goroutines and may be nil.
	Progress func()
}

// Evaluation is the statistics of one OG.
type Evaluation struct {
	OG string
	ogstat.Stats
}

// Result holds the OGs that qualified and the taxa missing them.
type Result struct {
	Qualifying []Evaluation
	Missing    *MissingIndex
}

// Filter evaluates every OG of the table and keeps those that reach
// the thresholds, in table order.
func (s *Session) Filter(opt Options) (*Result, error) {
	groups := s.Table.Groups()
	nAll := s.Table.Taxa.Len()

	// The taxon universe is complete, so groups can be evaluated independently.
	// Each worker fills a disjoint chunk of stats.
	stats := make([]ogstat.Stats, len(groups))
	ncpu := opt.NumWorkers
	if ncpu <= 0 {
		ncpu = runtime.GOMAXPROCS(0)
	}
	chunk := (len(groups) + ncpu - 1) / ncpu
	var eg errgroup.Group
	for start := 0; start < len(groups); start += chunk {
		end := min(start+chunk, len(groups))
		eg.Go(func() error {
			for i := start; i < end; i++ {
				stats[i] = ogstat.Calc(groups[i].Taxa, nAll)
				if opt.Progress != nil {
					opt.Progress()
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Missing: NewMissingIndex(s.Table.Taxa)}
	for i, g := range groups {
		st := stats[i]
		Log.Debugf("%s -> occurence, uniqueness, occurence_as_singlecopy: %.3f, %.3f, %.3f",
			g.ID, st.Occurrence, st.Uniqueness, st.OccurrenceSingleCopy)
		if opt.Thresholds.Pass(st) {
			res.Missing.AddGroup(g)
			res.Qualifying = append(res.Qualifying, Evaluation{OG: g.ID, Stats: st})
			Log.Debugf("%s accepted -> num good OGs: %d", g.ID, len(res.Qualifying))
		}
	}

	return res, nil
}

// MissingIndex maps each taxon to the qualifying OGs it lacks.
type MissingIndex struct {
	taxa *members.TaxonSet
	m    map[string][]string
}

// NewMissingIndex returns an empty index over taxa.
func NewMissingIndex(taxa *members.TaxonSet) *MissingIndex {
	return &MissingIndex{taxa: taxa, m: make(map[string][]string)}
}

// AddGroup records g as missing from every taxon without a sequence in g.
func (idx *MissingIndex) AddGroup(g *members.Group) {
	present := make(map[string]bool, len(g.Taxa))
	for _, t := range g.Distinct() {
		present[t] = true
	}
	for _, t := range idx.taxa.Taxa() {
		if !present[t] {
			idx.m[t] = append(idx.m[t], g.ID)
		}
	}
}

// Missing returns the OGs missing from taxon, in the order they were added.
func (idx *MissingIndex) Missing(taxon string) []string {
	return idx.m[taxon]
}

// Taxa returns every taxon of the index.
func (idx *MissingIndex) Taxa() []string {
	return idx.taxa.Taxa()
}
