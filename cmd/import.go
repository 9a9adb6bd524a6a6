package cmd

import (
	"context"
	"fmt"

	"github.com/acdh-oeaw/minedb/internal/iodb"
	"github.com/acdh-oeaw/minedb/internal/ioimport"
	"github.com/acdh-oeaw/minedb/internal/iolegacy"
	"github.com/acdh-oeaw/minedb/internal/iostore"
	"github.com/acdh-oeaw/minedb/pkg/config"
	"github.com/spf13/cobra"
)

// getImportCmd returns the import command.
func getImportCmd() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import PERSON_QUERY",
		Short: "Import legacy data from the APIS API",
		Long: `Import persons and their relation graph from the legacy APIS
REST API into the MINE database.

PERSON_QUERY is either a numeric legacy person id or a JSON object of
list query parameters understood by the APIS person endpoint.

The run is idempotent: records whose legacy id is already present are
skipped. Failed records are logged and counted; the command exits
non-zero when any record failed. Use --fail-fast to abort on the
first failure instead.

Examples:
  minedb import 42
  minedb import '{"name__icontains": "Boltzmann"}'
  minedb import 42 --voc-file relations.csv --labels-file labels.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	importCmd.Flags().String("voc-file", "",
		"CSV mapping legacy relation-type ids to relation kinds")
	importCmd.Flags().String("labels-file", "",
		"CSV of alternate labels and images keyed by legacy id")
	importCmd.Flags().String("log-file", "",
		"path of the log file (default: the app log directory)")
	importCmd.Flags().String("log-level", "",
		"log level: debug, info, warn or error")
	importCmd.Flags().Bool("fail-fast", false,
		"abort the run on the first record that fails")

	return importCmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	flags := cmd.Flags()

	var importOpts []config.Option
	if flags.Changed("voc-file") {
		s, _ := flags.GetString("voc-file")
		importOpts = append(importOpts, config.OptVocFile(s))
	}
	if flags.Changed("labels-file") {
		s, _ := flags.GetString("labels-file")
		importOpts = append(importOpts, config.OptLabelsFile(s))
	}
	if flags.Changed("fail-fast") {
		b, _ := flags.GetBool("fail-fast")
		importOpts = append(importOpts, config.OptFailFast(b))
	}
	cfg.Update(importOpts)

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		printError(err)
		return err
	}
	defer op.Close()

	store, err := iostore.NewFromPool(op.Pool())
	if err != nil {
		printError(err)
		return err
	}

	cache := iolegacy.NewCache()
	client := iolegacy.New(&cfg.API, cache)
	imp := ioimport.New(client, store, &cfg.Import, nil)

	stats, runErr := imp.Run(ctx, args[0])
	if stats != nil {
		fmt.Printf(
			"Imported %d persons, %d relations, %d labels, %d images "+
				"(%d skipped, %d failed)\n",
			stats.Persons, stats.Relations, stats.Labels, stats.Images,
			stats.Skipped, stats.Failed,
		)
	}
	if runErr != nil {
		printError(runErr)
		return runErr
	}
	return nil
}
