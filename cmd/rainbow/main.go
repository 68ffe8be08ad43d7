// Package main implements the rainbow binary for generating rainbow tables and
// looking up hash digests against them.
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/gostonefire/rainbowtable"
	"github.com/gostonefire/rainbowtable/crt"
	"github.com/gostonefire/rainbowtable/internal/seeds"
)

// Config - Optional configuration file contents, flags take precedence over it
type Config struct {
	// Number of parallel workers for generation and lookup.
	Workers int `yaml:"workers"`

	// Path to a seed wordlist used for chain starts during create.
	SeedFilePath string `yaml:"seed_file_path"`
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "create":
		err = runCreate(os.Args[2:])
	case "search":
		err = runSearch(os.Args[2:])
	case "stat":
		err = runStat(os.Args[2:])
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: rainbow <command> [flags]

Commands:
  create   Generate a rainbow table and serialize it to disk
  search   Look up a hash digest using a corresponding rainbow table
  stat     Show chain statistics for an existing rainbow table

Run 'rainbow <command> --help' for command flags.`)
}

// setupLogging - Configures logrus the same way for every command
func setupLogging(debug bool) {
	formatter := new(log.TextFormatter)
	formatter.FullTimestamp = true
	log.SetFormatter(formatter)
	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

// parseConfig - Reads the optional yaml configuration file
func parseConfig(configFilePath string) (*Config, error) {
	f, err := os.Open(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("unable to open: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var config Config
	err = yaml.NewDecoder(f).Decode(&config)
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal: %w", err)
	}

	return &config, nil
}

// checkPassLength - The file format and core support other lengths, but the command line
// keeps to the lengths the bundled seed lists exist for
func checkPassLength(passLength int64) error {
	if passLength != 5 && passLength != 6 {
		return fmt.Errorf("only plaintext lengths of 5 or 6 bytes are supported currently for demonstration")
	}
	return nil
}

func runCreate(args []string) error {
	flags := flag.NewFlagSet("create", flag.ExitOnError)
	chainCount := flags.Int64("chain-count", 0, "number of rainbow chains")
	chainLength := flags.Int64("chain-length", 0, "length of each rainbow chain")
	passLength := flags.Int64("pass-length", 0, "length of encoded plaintexts in bytes (5 or 6)")
	path := flags.StringP("path", "p", "", "path to write rainbow table to (.zst for compression)")
	seedFile := flags.String("seed-file", "", "path to a seed wordlist for chain starts")
	workers := flags.Int("workers", 0, "number of parallel workers, 0 means one per CPU")
	configFilePath := flags.String("config", "", "path to an optional configuration file")
	debug := flags.Bool("debug", false, "whether to enable debug logging")
	if err := flags.Parse(args); err != nil {
		return err
	}

	setupLogging(*debug)

	if *configFilePath != "" {
		config, err := parseConfig(*configFilePath)
		if err != nil {
			return fmt.Errorf("unable to read configuration file: %w", err)
		}
		if !flags.Changed("workers") {
			*workers = config.Workers
		}
		if !flags.Changed("seed-file") {
			*seedFile = config.SeedFilePath
		}
	}

	if err := checkPassLength(*passLength); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("missing required flag --path")
	}

	conf := rainbowtable.RainbowConf{
		ChainCount:  *chainCount,
		ChainLength: *chainLength,
		PassLength:  *passLength,
		Workers:     *workers,
	}

	if *seedFile != "" {
		loaded, skipped, err := seeds.LoadSeeds(*seedFile, *passLength, *chainCount)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"path":    *seedFile,
			"loaded":  len(loaded),
			"skipped": skipped,
		}).Info("loaded seed wordlist")
		conf.Seeds = loaded
	}

	_, info, err := rainbowtable.NewRainbowTable(*path, conf)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"path":      *path,
		"chains":    info.ChainCount,
		"file_size": info.FileSize,
	}).Info("wrote rainbow table")

	return nil
}

func runSearch(args []string) error {
	flags := flag.NewFlagSet("search", flag.ExitOnError)
	path := flags.StringP("path", "p", "", "path to read rainbow table from")
	passLength := flags.Int64("pass-length", 0, "length of encoded plaintexts in bytes (5 or 6)")
	workers := flags.Int("workers", 0, "number of parallel workers, 0 means one per CPU")
	configFilePath := flags.String("config", "", "path to an optional configuration file")
	debug := flags.Bool("debug", false, "whether to enable debug logging")
	if err := flags.Parse(args); err != nil {
		return err
	}

	setupLogging(*debug)

	if *configFilePath != "" {
		config, err := parseConfig(*configFilePath)
		if err != nil {
			return fmt.Errorf("unable to read configuration file: %w", err)
		}
		if !flags.Changed("workers") {
			*workers = config.Workers
		}
	}

	if err := checkPassLength(*passLength); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("missing required flag --path")
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("expected exactly one hash digest in hexadecimal notation")
	}

	digest, err := hex.DecodeString(flags.Arg(0))
	if err != nil {
		return crt.NewFormatError(fmt.Sprintf("expected hash digest in hexadecimal notation, but found: '%s'", flags.Arg(0)))
	}

	table, info, err := rainbowtable.NewFromExistingFile(*path, nil)
	if err != nil {
		return err
	}
	if info.PassLength != *passLength {
		return fmt.Errorf("table was created with plaintext length %d, but %d was given", info.PassLength, *passLength)
	}
	table.SetWorkers(*workers)

	pass, err := table.Search(digest)
	if errors.Is(err, crt.NotFoundError{}) {
		// A miss is a legitimate answer given probabilistic coverage, not a failure
		log.Info("no plaintext found for the given digest")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println(string(pass))

	return nil
}

func runStat(args []string) error {
	flags := flag.NewFlagSet("stat", flag.ExitOnError)
	path := flags.StringP("path", "p", "", "path to read rainbow table from")
	debug := flags.Bool("debug", false, "whether to enable debug logging")
	if err := flags.Parse(args); err != nil {
		return err
	}

	setupLogging(*debug)

	if *path == "" {
		return fmt.Errorf("missing required flag --path")
	}

	table, info, err := rainbowtable.NewFromExistingFile(*path, nil)
	if err != nil {
		return err
	}

	stat := table.Stat()
	log.WithFields(log.Fields{
		"chains":              stat.Chains,
		"distinct_ends":       stat.DistinctEnds,
		"merged_chains":       stat.MergedChains,
		"largest_merge_group": stat.LargestMergeGroup,
		"chain_length":        info.ChainLength,
		"pass_length":         info.PassLength,
	}).Info("rainbow table statistics")

	return nil
}
