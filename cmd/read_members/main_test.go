package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mingzhi/ogprofile"
)

const members = "2\tA\t2\t2\t1.a1,2.a1\t1,2\n" +
	"2\tB\t2\t1\t1.b1,1.b2\t1\n" +
	"2\tC\t1\t1\t3.c1\t3\n"

func writeFile(t *testing.T, dir, name, content string) string {
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestParseArgs(t *testing.T) {
	dir := t.TempDir()
	conf := writeFile(t, dir, "config.yaml", "min_occurrence: 40\nmin_uniqueness: 10\nmissing: 1\n")

	cfg, err := parseArgs([]string{"--config", conf, "--min-uniqueness", "20", "in.tsv"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.membersFile != "in.tsv" {
		t.Errorf("members file: %s", cfg.membersFile)
	}
	if cfg.thresholds.MinOccurrence != 40 {
		t.Errorf("min occurrence from config: %g", cfg.thresholds.MinOccurrence)
	}
	if cfg.thresholds.MinUniqueness != 20 {
		t.Errorf("flag should override config: %g", cfg.thresholds.MinUniqueness)
	}
	if !cfg.hasMissing || cfg.missing != 1 {
		t.Errorf("missing: %d %v", cfg.missing, cfg.hasMissing)
	}
	if cfg.ncpu <= 0 {
		t.Errorf("ncpu: %d", cfg.ncpu)
	}
}

func TestParseArgsDefaults(t *testing.T) {
	cfg, err := parseArgs(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.membersFile != "-" || cfg.hasMissing || cfg.seqIDsOut != "" {
		t.Errorf("defaults: %s", cfg)
	}
	if cfg.thresholds != (ogprofile.Thresholds{}) {
		t.Errorf("thresholds: %+v", cfg.thresholds)
	}
}

func TestParseArgsNegativeMissing(t *testing.T) {
	_, err := parseArgs([]string{"--missing=-1"})
	var ce *ogprofile.ConfigError
	if !errors.As(err, &ce) {
		t.Errorf("expected ConfigError, got %v", err)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "2_members.tsv", members)
	seqIDs := filepath.Join(dir, "seqids.tsv")

	cfg, err := parseArgs([]string{"--min-occurence", "50", "--seqids-out", seqIDs, "--missing", "1", in})
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := run(cfg, &out); err != nil {
		t.Fatal(err)
	}

	want := "#cog\t%_occurence\tthereof_%_singlecopy\t%_occurence_as_singlecopy\n" +
		"A\t66.7\t100.0\t66.7\n" +
		"\nTaxids which are missing at least 1 OGs which fulfilled the initial condition\n\n" +
		"3\t1\n"
	if out.String() != want {
		t.Errorf("expected\n%q\ngot\n%q", want, out.String())
	}

	data, err := os.ReadFile(seqIDs)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "1.a1\tA\n2.a1\tA\n" {
		t.Errorf("seqids: %q", data)
	}
}

func TestRunConflictingThresholds(t *testing.T) {
	cfg, err := parseArgs([]string{"--min-occurence", "50", "--min-occurence-as-singlecopy", "97", "does-not-exist.tsv"})
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	err = run(cfg, &out)
	var ce *ogprofile.ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestRunFormatErrorWritesNothing(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "bad.tsv", members+"2\tD\t3\t1\t1.d1\t1\n")
	cfg, err := parseArgs([]string{in})
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	err = run(cfg, &out)
	if err == nil || !strings.Contains(err.Error(), "OG D") {
		t.Fatalf("expected a format error for D, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestParseArgsFlagPrecedence(t *testing.T) {
	dir := t.TempDir()
	conf := writeFile(t, dir, "config.yaml", "min_occurrence_as_singlecopy: 97\nseqids_out: from-config.tsv\nncpu: 3\n")

	cfg, err := parseArgs([]string{"--config", conf})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.thresholds.MinOccurrenceSingleCopy != 97 || cfg.seqIDsOut != "from-config.tsv" || cfg.ncpu != 3 {
		t.Errorf("config values should survive absent flags: %s", cfg)
	}
	if cfg.hasMissing {
		t.Error("missing was not given")
	}

	cfg, err = parseArgs([]string{"--config", conf, "--min-occurence-as-singlecopy", "0", "--seqids-out", "flag.tsv", "--missing", "0"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.thresholds.MinOccurrenceSingleCopy != 0 || cfg.seqIDsOut != "flag.tsv" {
		t.Errorf("flags given explicitly should win, even when zero: %s", cfg)
	}
	if !cfg.hasMissing || cfg.missing != 0 {
		t.Errorf("--missing 0 should enable the listing: %s", cfg)
	}
}

func TestRunMissingZeroListsAllTaxa(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "2_members.tsv", members)
	cfg, err := parseArgs([]string{"--missing", "0", "--ncpu", "2", "--progress", in})
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := run(cfg, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(out.String(), "\n\n1\t1\n2\t2\n3\t2\n") {
		t.Errorf("got %q", out.String())
	}
}

func TestRunSeqIDsErrorWritesNothing(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "2_members.tsv", members)
	seqIDs := filepath.Join(dir, "no-such-dir", "seqids.tsv")
	cfg, err := parseArgs([]string{"--seqids-out", seqIDs, in})
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := run(cfg, &out); err == nil {
		t.Fatal("expected an error creating the seqids file")
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output %q", out.String())
	}
}
