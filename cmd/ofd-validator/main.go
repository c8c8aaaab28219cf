// Package main implements the ofd-validator CLI tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	ofdvalidator "github.com/ofdb/validator"
	"github.com/ofdb/validator/config"
	"github.com/ofdb/validator/dataset"
	"github.com/ofdb/validator/engine"
	"github.com/ofdb/validator/schema"
	"github.com/ofdb/validator/schemas"
)

type cliFlags struct {
	configPath string
	dataDir    string
	storesDir  string
	schemasDir string
	workers    int
	jsonOut    bool
	verbose    bool
}

// errValidationFailed signals findings were reported; it carries no
// message of its own beyond the summary already printed.
var errValidationFailed = errors.New("validation failed")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errValidationFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &cliFlags{}

	root := &cobra.Command{
		Use:     "ofd-validator",
		Short:   "Validate an Open Filament Database catalog",
		Long:    "ofd-validator checks a filament catalog's JSON files, logos, folder names,\nstore references and GTIN/EAN codes against the catalog schemas.",
		Version: ofdvalidator.Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChecks(cmd, flags, nil)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "path to a YAML config file")
	pf.StringVar(&flags.dataDir, "data-dir", "", "root of the brand hierarchy (default \"data\")")
	pf.StringVar(&flags.storesDir, "stores-dir", "", "root of the store catalog (default \"stores\")")
	pf.StringVar(&flags.schemasDir, "schemas-dir", "", "load schemas from a directory instead of the embedded set")
	pf.IntVar(&flags.workers, "workers", 0, "validation pool size (0 = number of CPUs minus one)")
	pf.BoolVar(&flags.jsonOut, "json", false, "emit the aggregate result as JSON")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log progress to stderr")

	root.AddCommand(&cobra.Command{
		Use:          "all",
		Short:        "Run every check family (the default)",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChecks(cmd, flags, nil)
		},
	})

	for _, fam := range checkFamilies {
		fam := fam
		root.AddCommand(&cobra.Command{
			Use:          fam.name,
			Short:        fam.short,
			Args:         cobra.NoArgs,
			SilenceUsage: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runChecks(cmd, flags, fam.only)
			},
		})
	}

	return root
}

// checkFamilies lists the subcommands that run a single family of checks.
// only maps a full-run config to one that enables just that family.
var checkFamilies = []struct {
	name  string
	short string
	only  func(*config.ChecksConfig)
}{
	{"json-files", "Validate JSON files against their schemas",
		func(c *config.ChecksConfig) { c.JSONFiles = true }},
	{"logos", "Validate brand and store logo images",
		func(c *config.ChecksConfig) { c.Logos = true }},
	{"folder-names", "Check folder names against their JSON files",
		func(c *config.ChecksConfig) { c.FolderNames = true }},
	{"store-ids", "Check purchase link store_id references",
		func(c *config.ChecksConfig) { c.StoreIDs = true }},
	{"gtin", "Check GTIN and EAN codes in sizes files",
		func(c *config.ChecksConfig) { c.GTIN = true }},
	{"missing-files", "Check that required JSON files exist",
		func(c *config.ChecksConfig) { c.MissingFiles = true }},
}

func runChecks(cmd *cobra.Command, flags *cliFlags, only func(*config.ChecksConfig)) error {
	logger := newLogger(flags.verbose)

	cfg, err := buildConfig(cmd, flags, only)
	if err != nil {
		return err
	}

	store, err := loadSchemaStore(cfg.SchemasDir)
	if err != nil {
		return err
	}

	ds := dataset.FromDirectories(cfg.DataDir, cfg.StoresDir, store)
	logger.Info("dataset loaded",
		"json_files", len(ds.JSONEntries),
		"logos", len(ds.LogoEntries),
		"stores", len(ds.ValidStoreIDs))

	eng := engine.New(ds.Schemas, engineOptions(cfg)...)
	eng.SetLogger(logger)

	result, err := eng.ValidateDataSet(context.Background(), ds)
	if err != nil {
		return err
	}

	if flags.jsonOut {
		if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else {
		writeReport(cmd.OutOrStdout(), result)
	}

	if !result.IsValid() {
		return errValidationFailed
	}
	return nil
}

// buildConfig layers CLI flags over the config file over the defaults.
func buildConfig(cmd *cobra.Command, flags *cliFlags, only func(*config.ChecksConfig)) (*config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flags.dataDir != "" {
		cfg.DataDir = flags.dataDir
	}
	if flags.storesDir != "" {
		cfg.StoresDir = flags.storesDir
	}
	if flags.schemasDir != "" {
		cfg.SchemasDir = flags.schemasDir
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = flags.workers
	}

	if only != nil {
		cfg.Checks = config.ChecksConfig{}
		only(&cfg.Checks)
	}
	return cfg, nil
}

func engineOptions(cfg *config.Config) []ofdvalidator.Option {
	return []ofdvalidator.Option{
		ofdvalidator.WithWorkerCount(cfg.Workers),
		ofdvalidator.WithLogoSizeBounds(cfg.Logo.MinSize, cfg.Logo.MaxSize),
		ofdvalidator.WithJSONFiles(cfg.Checks.JSONFiles),
		ofdvalidator.WithLogos(cfg.Checks.Logos),
		ofdvalidator.WithFolderNames(cfg.Checks.FolderNames),
		ofdvalidator.WithStoreIDs(cfg.Checks.StoreIDs),
		ofdvalidator.WithGTIN(cfg.Checks.GTIN),
		ofdvalidator.WithMissingFiles(cfg.Checks.MissingFiles),
	}
}

// loadSchemaStore loads schemas from dir when given, otherwise from the
// embedded set.
func loadSchemaStore(dir string) (*schema.Store, error) {
	var fsys fs.FS = schemas.Files
	if dir != "" {
		fsys = os.DirFS(dir)
	}
	store, err := schema.NewStoreFromFS(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("load schemas: %w", err)
	}
	return store, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// writeReport prints findings grouped by category, then a summary line.
func writeReport(w io.Writer, result *ofdvalidator.ValidationResult) {
	byCategory := result.ByCategory()

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, c := range categories {
		fmt.Fprintf(w, "%s validation:\n", c)
		for _, v := range byCategory[c] {
			fmt.Fprintf(w, "  %s\n", v.String())
		}
		fmt.Fprintln(w, strings.Repeat("-", 80))
	}

	if result.IsValid() {
		if result.WarningCount() > 0 {
			fmt.Fprintf(w, "All validations passed with %d warnings.\n", result.WarningCount())
		} else {
			fmt.Fprintln(w, "All validations passed!")
		}
		return
	}
	fmt.Fprintf(w, "Validation failed: %d errors, %d warnings\n",
		result.ErrorCount(), result.WarningCount())
}

func writeJSON(w io.Writer, result *ofdvalidator.ValidationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
