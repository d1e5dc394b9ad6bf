package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mingzhi/ogprofile"
	"github.com/sirupsen/logrus"
	"gopkg.in/cheggaaa/pb.v1"
)

func main() {
	cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		fatal(err)
	}
	if err := run(cfg, os.Stdout); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	color.New(color.FgRed).Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}

// run reads the members table and writes the reports.
// Nothing is written to stdout unless the whole table is valid.
func run(cfg *cmdConfig, stdout io.Writer) error {
	level, err := logrus.ParseLevel(cfg.logLevel)
	if err != nil {
		return err
	}
	ogprofile.Log.SetLevel(level)
	ogprofile.Log.SetOutput(os.Stderr)

	if err := cfg.thresholds.Validate(); err != nil {
		return err
	}
	ogprofile.Log.Info(cfg)

	in, err := ogprofile.OpenMembers(cfg.membersFile)
	if err != nil {
		return err
	}
	session, err := ogprofile.NewSession(in)
	in.Close()
	if err != nil {
		return err
	}

	opt := ogprofile.Options{
		Thresholds: cfg.thresholds,
		NumWorkers: cfg.ncpu,
	}
	var pbar *pb.ProgressBar
	if cfg.progress {
		pbar = pb.New(session.Table.Len())
		pbar.Output = os.Stderr
		pbar.Start()
		opt.Progress = func() { pbar.Increment() }
	}
	res, err := session.Filter(opt)
	if pbar != nil {
		pbar.Finish()
	}
	if err != nil {
		return err
	}

	// The stdout report is built in memory and written only once every
	// other output has succeeded.
	ogprofile.Log.Info("Outputting result...")
	var report bytes.Buffer
	if err := ogprofile.WriteTable(&report, res); err != nil {
		return err
	}
	if cfg.hasMissing {
		if err := ogprofile.WriteMissing(&report, res, cfg.missing); err != nil {
			return err
		}
	}

	if cfg.seqIDsOut != "" {
		if err := writeSeqIDs(cfg.seqIDsOut, session, res); err != nil {
			return err
		}
	}

	if _, err := report.WriteTo(stdout); err != nil {
		return err
	}

	sum := session.Summarize(res)
	ogprofile.Log.WithFields(logrus.Fields{
		"ogs":               sum.Groups,
		"taxa":              sum.Taxa,
		"qualifying":        sum.Qualifying,
		"mean_occurence":    fmt.Sprintf("%.1f", sum.MeanOccurrence),
		"median_occurence":  fmt.Sprintf("%.1f", sum.MedianOccurrence),
		"mean_uniqueness":   fmt.Sprintf("%.1f", sum.MeanUniqueness),
		"median_uniqueness": fmt.Sprintf("%.1f", sum.MedianUniqueness),
	}).Info("done")

	return nil
}

func writeSeqIDs(filename string, session *ogprofile.Session, res *ogprofile.Result) error {
	w, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := ogprofile.WriteSeqIDs(w, session, res); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
