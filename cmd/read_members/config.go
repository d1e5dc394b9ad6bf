package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/mingzhi/ogprofile"
	"github.com/spf13/viper"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Config keys, shared by the config file and OGPROFILE_* environment variables.
const (
	keyMinOccurrence           = "min_occurrence"
	keyMinUniqueness           = "min_uniqueness"
	keyMinOccurrenceSingleCopy = "min_occurrence_as_singlecopy"
	keySeqIDsOut               = "seqids_out"
	keyMissing                 = "missing"
	keyNCPU                    = "ncpu"
)

// cmdConfig holds the settings of a run.
type cmdConfig struct {
	membersFile string // members table, "-" for stdin.
	configFile  string // optional config file.
	logLevel    string
	progress    bool

	thresholds ogprofile.Thresholds
	seqIDsOut  string // output file of sequence ids.
	missing    int    // list taxa missing at least this many OGs.
	hasMissing bool   // whether missing was given at all.
	ncpu       int
}

func (cfg *cmdConfig) String() string {
	return fmt.Sprintf("members_file=%s min_occurence=%g min_uniqueness=%g min_occurence_as_singlecopy=%g seqids_out=%q missing=%d(set=%v) ncpu=%d",
		cfg.membersFile, cfg.thresholds.MinOccurrence, cfg.thresholds.MinUniqueness,
		cfg.thresholds.MinOccurrenceSingleCopy, cfg.seqIDsOut, cfg.missing, cfg.hasMissing, cfg.ncpu)
}

// markSet returns a flag action recording that the flag was given.
func markSet(set *bool) kingpin.Action {
	return func(*kingpin.ParseContext) error {
		*set = true
		return nil
	}
}

// parseArgs parses command arguments, the config file and the environment.
// Flags given on the command line take precedence.
func parseArgs(args []string) (*cmdConfig, error) {
	app := kingpin.New("read_members", "Parse eggNOG members file and determine OGs")
	app.Version("v0.1")

	var setByUser [6]bool
	membersArg := app.Arg("members-file", "members table, may be gzipped; - for stdin").Default("-").String()
	minOccFlag := app.Flag("min-occurence", "minimum occurence (percent of genomes where gene is present); should be 0-100").
		PlaceHolder("PERCENT").Action(markSet(&setByUser[0])).Float64()
	minUniqFlag := app.Flag("min-uniqueness", "minimum uniqueness if present (percent of genomes where gene is present as single-copy); should be 0-100").
		PlaceHolder("PERCENT").Action(markSet(&setByUser[1])).Float64()
	minOccSCFlag := app.Flag("min-occurence-as-singlecopy", "minimum combined occurence+uniqueness (e.g. single-copy in 97% of all genomes); should be 0-100").
		PlaceHolder("PERCENT").Action(markSet(&setByUser[2])).Float64()
	seqIDsFlag := app.Flag("seqids-out", "output seqids of proteins in matching OGs").
		PlaceHolder("FILE").Action(markSet(&setByUser[3])).String()
	missingFlag := app.Flag("missing", "output taxids lacking at least this number of matching OGs").
		PlaceHolder("NUM").Action(markSet(&setByUser[4])).Int()
	ncpuFlag := app.Flag("ncpu", "number of CPUs").Default("0").Action(markSet(&setByUser[5])).Int()
	configFlag := app.Flag("config", "config file (YAML, JSON or TOML)").Default("").String()
	logLevelFlag := app.Flag("log-level", "log level").Default("warning").
		Enum("debug", "info", "warning", "error")
	progressFlag := app.Flag("progress", "show progress").Default("false").Bool()
	if _, err := app.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault(keyMinOccurrence, 0.0)
	v.SetDefault(keyMinUniqueness, 0.0)
	v.SetDefault(keyMinOccurrenceSingleCopy, 0.0)
	v.SetDefault(keySeqIDsOut, "")
	v.SetDefault(keyNCPU, 0)
	if *configFlag != "" {
		v.SetConfigFile(*configFlag)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", *configFlag, err)
		}
	}
	v.SetEnvPrefix("ogprofile")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	keys := []string{keyMinOccurrence, keyMinUniqueness, keyMinOccurrenceSingleCopy, keySeqIDsOut, keyMissing, keyNCPU}
	values := []interface{}{*minOccFlag, *minUniqFlag, *minOccSCFlag, *seqIDsFlag, *missingFlag, *ncpuFlag}
	for i, key := range keys {
		if setByUser[i] {
			v.Set(key, values[i])
		}
	}

	cfg := &cmdConfig{
		membersFile: *membersArg,
		configFile:  *configFlag,
		logLevel:    *logLevelFlag,
		progress:    *progressFlag,
		thresholds: ogprofile.Thresholds{
			MinOccurrence:           v.GetFloat64(keyMinOccurrence),
			MinUniqueness:           v.GetFloat64(keyMinUniqueness),
			MinOccurrenceSingleCopy: v.GetFloat64(keyMinOccurrenceSingleCopy),
		},
		seqIDsOut:  v.GetString(keySeqIDsOut),
		missing:    v.GetInt(keyMissing),
		hasMissing: v.IsSet(keyMissing),
		ncpu:       v.GetInt(keyNCPU),
	}
	if cfg.missing < 0 {
		return nil, &ogprofile.ConfigError{Reason: fmt.Sprintf("missing must not be negative, got %d", cfg.missing)}
	}
	if cfg.ncpu <= 0 {
		cfg.ncpu = runtime.NumCPU()
	}

	return cfg, nil
}
