// Package members reads eggNOG style orthologous group membership tables.
//
// Each line of a members table describes one orthologous group (OG):
//
//	level  og_id  n_seqs  n_taxids  seq_id,seq_id,...  taxid,taxid,...
//
// e.g.
//
//	1	28H59	4	3	565033.GACE_1005,572546.Arcpr_0848,69014.TK0075,69014.TK0091	565033,572546,69014
//
// means: level "1" (root), OG "28H59", 4 sequences in 3 organisms.
package members

// Group is an orthologous group read from one record.
type Group struct {
	ID     string   // OG identifier.
	Level  string   // taxonomic level of the table.
	SeqIDs []string // sequence ids, <taxid>.<local id>.
	Taxa   []string // taxon of each sequence, not deduplicated.
}

// Len returns the number of member sequences.
func (g *Group) Len() int {
	return len(g.SeqIDs)
}

// Distinct returns the distinct taxa of the group in first-seen order.
func (g *Group) Distinct() []string {
	seen := make(map[string]bool, len(g.Taxa))
	var taxa []string
	for _, t := range g.Taxa {
		if !seen[t] {
			seen[t] = true
			taxa = append(taxa, t)
		}
	}
	return taxa
}

// TaxonSet is the set of taxa seen in a table.
// It keeps taxa in the order they were first added.
type TaxonSet struct {
	index map[string]int
	taxa  []string
}

// NewTaxonSet returns an empty TaxonSet.
func NewTaxonSet() *TaxonSet {
	return &TaxonSet{index: make(map[string]int)}
}

// Add adds taxa to the set.
func (s *TaxonSet) Add(taxa ...string) {
	for _, t := range taxa {
		if _, found := s.index[t]; !found {
			s.index[t] = len(s.taxa)
			s.taxa = append(s.taxa, t)
		}
	}
}

// Contains reports whether taxon is in the set.
func (s *TaxonSet) Contains(taxon string) bool {
	_, found := s.index[taxon]
	return found
}

// Len returns the size of the set.
func (s *TaxonSet) Len() int {
	return len(s.taxa)
}

// Taxa returns all taxa in insertion order.
func (s *TaxonSet) Taxa() []string {
	return s.taxa
}

// Table holds the groups of a members table in input order.
type Table struct {
	Taxa   *TaxonSet
	groups []*Group
	index  map[string]int
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{
		Taxa:  NewTaxonSet(),
		index: make(map[string]int),
	}
}

// Add stores g. It returns false if a group with the same id is present.
func (t *Table) Add(g *Group) bool {
	if _, found := t.index[g.ID]; found {
		return false
	}
	t.index[g.ID] = len(t.groups)
	t.groups = append(t.groups, g)
	return true
}

// Get returns the group with the given id.
func (t *Table) Get(id string) (*Group, bool) {
	i, found := t.index[id]
	if !found {
		return nil, false
	}
	return t.groups[i], true
}

// Groups returns all groups in input order.
func (t *Table) Groups() []*Group {
	return t.groups
}

// Len returns the number of groups.
func (t *Table) Len() int {
	return len(t.groups)
}
