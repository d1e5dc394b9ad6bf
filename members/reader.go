package members

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// number of tab separated fields in a record.
const numFields = 6

// FormatError describes a record that is inconsistent with itself
// or with the records read before it.
type FormatError struct {
	LineNo   int
	Line     string
	OG       string
	Reason   string
	Expected int
	Actual   int
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("line %d", e.LineNo)
	if e.OG != "" {
		msg += fmt.Sprintf(" (OG %s)", e.OG)
	}
	msg += ": " + e.Reason
	if e.Expected != 0 || e.Actual != 0 {
		msg += fmt.Sprintf(": expected %d, got %d", e.Expected, e.Actual)
	}
	return msg + "\n" + e.Line
}

// Read reads a members table from r.
// It stops at the first malformed record.
func Read(r io.Reader) (*Table, error) {
	t := NewTable()
	rd := bufio.NewReader(r)
	lineNo := 0
	for {
		line, err := rd.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("reading members table: %w", err)
		}
		if line != "" {
			lineNo++
			if perr := t.parseLine(lineNo, line); perr != nil {
				return nil, perr
			}
		}
		if err == io.EOF {
			break
		}
	}
	return t, nil
}

// parseLine validates one record and stores it in t.
func (t *Table) parseLine(lineNo int, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	fail := func(og, reason string, expected, actual int) error {
		return &FormatError{
			LineNo:   lineNo,
			Line:     line,
			OG:       og,
			Reason:   reason,
			Expected: expected,
			Actual:   actual,
		}
	}

	fields := strings.Split(line, "\t")
	if len(fields) != numFields {
		return fail("", "wrong number of fields", numFields, len(fields))
	}
	level, og, nSeqsField, nTaxaField, seqField, taxField := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]

	// Taxids where the OG occurs.
	taxa := strings.Split(taxField, ",")
	t.Taxa.Add(taxa...)
	nTaxa, err := strconv.Atoi(nTaxaField)
	if err != nil {
		return fail(og, fmt.Sprintf("taxon count %q is not an integer", nTaxaField), 0, 0)
	}
	if nTaxa < 1 {
		return fail(og, "empty OG", 0, 0)
	}
	declared := make(map[string]bool, len(taxa))
	for _, taxon := range taxa {
		if taxon == "" {
			return fail(og, "empty taxid", 0, 0)
		}
		declared[taxon] = true
	}
	if len(taxa) != nTaxa {
		return fail(og, "taxid list length differs from taxon count", nTaxa, len(taxa))
	}
	if len(declared) != nTaxa {
		return fail(og, "duplicate taxids", nTaxa, len(declared))
	}

	// Sequences comprising the OG.
	nSeqs, err := strconv.Atoi(nSeqsField)
	if err != nil {
		return fail(og, fmt.Sprintf("sequence count %q is not an integer", nSeqsField), 0, 0)
	}
	seqIDs := strings.Split(seqField, ",")
	if len(seqIDs) != nSeqs {
		return fail(og, "sequence list length differs from sequence count", nSeqs, len(seqIDs))
	}
	seqTaxa := make([]string, len(seqIDs))
	for i, id := range seqIDs {
		taxon := seqTaxon(id)
		if taxon == "" {
			return fail(og, fmt.Sprintf("sequence id %q has no taxid", id), 0, 0)
		}
		if !declared[taxon] {
			return fail(og, fmt.Sprintf("taxid of sequence %s is not in the taxid list", id), 0, 0)
		}
		seqTaxa[i] = taxon
	}

	g := &Group{ID: og, Level: level, SeqIDs: seqIDs, Taxa: seqTaxa}
	if !t.Add(g) {
		return fail(og, "duplicate OG", 0, 0)
	}
	return nil
}

// seqTaxon returns the taxid prefix of a sequence id.
func seqTaxon(id string) string {
	if i := strings.IndexByte(id, '.'); i >= 0 {
		return id[:i]
	}
	return id
}
