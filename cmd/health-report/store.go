// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/health-report/internal/extract"
	"github.com/pdiddy/health-report/internal/store"
	"github.com/pdiddy/health-report/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the local item store (ingest, list, export, runs)",
	Long: `Store keeps extraction runs in a local SQLite database. Use subcommands to
ingest result files, list items by deliverable or source, export them for
report assembly, or inspect and remove runs.`,
}

// --- ingest subcommand ---

var storeIngestCmd = &cobra.Command{
	Use:   "ingest <results-file>...",
	Short: "Store extraction result files as a new run",
	Long: `Ingest reads YAML or JSON files written by extract and stores their items
as one new run. Results that recorded an error are counted but not stored.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStoreIngest,
}

func runStoreIngest(cmd *cobra.Command, args []string) error {
	var results []types.ExtractionResult
	for _, path := range args {
		r, err := extract.ReadResults(path)
		if err != nil {
			return err
		}
		results = append(results, r...)
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	run, err := s.Ingest(cmd.Context(), results)
	if err != nil {
		return err
	}
	fmt.Printf("run %s: documents: %d, items: %d, failed: %d\n", run.ID, run.Documents, run.Items, run.Failed)
	if run.Failed > 0 {
		return fmt.Errorf("%d result(s) recorded extraction errors", run.Failed)
	}
	return nil
}

// --- list subcommand ---

var storeListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List stored items with filters",
	Long: `List prints stored items matching the filters, in ingestion order. A query
matches title or body text, case-insensitively.`,
	RunE: runStoreList,
}

func runStoreList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	items, err := s.List(cmd.Context(), queryOptsFromFlags(cmd, args))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatListOutput(items, jsonOutput)
}

func formatListOutput(items []store.StoredItem, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if len(items) == 0 {
		fmt.Println("No items found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-6s  %-30s  %-18s  %-40s  %-4s  %s\n",
		"Index", "Source", "Type", "Title", "Conf", "Deliverables")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 130))

	for _, it := range items {
		fmt.Fprintf(os.Stdout, "%-6d  %-30s  %-18s  %-40s  %.2f  %s\n",
			it.OrdinalIndex, truncate(string(it.SourceFile), 30), truncate(it.ContentType, 18),
			truncate(it.Title, 40), it.ConfidenceScore, strings.Join(it.TargetDeliverables, ","))
	}

	fmt.Fprintf(os.Stdout, "\n%d items\n", len(items))
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- export subcommand ---

var storeExportCmd = &cobra.Command{
	Use:   "export [query]",
	Short: "Export stored items to YAML or JSON",
	Long: `Export writes stored items (or a filtered subset) to export.yaml or
export.json in the store directory. With --grouped, items are grouped by
deliverable and written to stdout.`,
	RunE: runStoreExport,
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	grouped, _ := cmd.Flags().GetBool("grouped")

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	opts := queryOptsFromFlags(cmd, args)

	if grouped {
		groups, err := s.ByDeliverable(cmd.Context(), opts)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(groups)
	}

	var path string
	switch format {
	case extract.FormatYAML, "":
		path, err = s.ExportYAML(cmd.Context(), opts)
	case extract.FormatJSON:
		path, err = s.ExportJSON(cmd.Context(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Println("Exported to", path)
	return nil
}

// --- runs subcommand ---

var storeRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored runs, or delete one with --delete",
	RunE:  runStoreRuns,
}

func runStoreRuns(cmd *cobra.Command, args []string) error {
	del, _ := cmd.Flags().GetString("delete")

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if del != "" {
		if err := s.DeleteRun(cmd.Context(), del); err != nil {
			return err
		}
		fmt.Println("Deleted run", del)
		return nil
	}

	runs, err := s.Runs(cmd.Context())
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Printf("%s  %s  documents: %d, items: %d, failed: %d\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Documents, r.Items, r.Failed)
	}
	return nil
}

// --- shared helpers ---

func queryOptsFromFlags(cmd *cobra.Command, args []string) store.QueryOptions {
	query, _ := cmd.Flags().GetString("query")
	if query == "" && len(args) > 0 {
		query = strings.Join(args, " ")
	}
	run, _ := cmd.Flags().GetString("run")
	deliverable, _ := cmd.Flags().GetString("deliverable")
	source, _ := cmd.Flags().GetString("source")
	dimension, _ := cmd.Flags().GetString("dimension")
	contentType, _ := cmd.Flags().GetString("content-type")
	minConf, _ := cmd.Flags().GetFloat64("min-confidence")
	limit, _ := cmd.Flags().GetInt("limit")

	return store.QueryOptions{
		RunID:         run,
		Deliverable:   deliverable,
		Source:        types.SourceFileType(source),
		DimensionCode: dimension,
		ContentType:   contentType,
		MinConfidence: minConf,
		Query:         query,
		MaxResults:    limit,
	}
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("query", "", "case-insensitive text filter on title and body")
	cmd.Flags().String("run", "", "filter by run ID")
	cmd.Flags().String("deliverable", "", "filter by target deliverable")
	cmd.Flags().String("source", "", "filter by source file type")
	cmd.Flags().String("dimension", "", "filter by dimension code")
	cmd.Flags().String("content-type", "", "filter by content type")
	cmd.Flags().Float64("min-confidence", 0, "minimum confidence score")
}

func init() {
	storeCmd.PersistentFlags().String("store-dir", "store", "directory holding the item database and exports")
	_ = viper.BindPFlag("store.dir", storeCmd.PersistentFlags().Lookup("store-dir"))

	addFilterFlags(storeListCmd)
	storeListCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	storeListCmd.Flags().Bool("json", false, "output items as JSON")

	addFilterFlags(storeExportCmd)
	storeExportCmd.Flags().String("format", extract.FormatYAML, "export format: yaml or json")
	storeExportCmd.Flags().Bool("grouped", false, "group items by deliverable and write JSON to stdout")

	storeRunsCmd.Flags().String("delete", "", "delete the run with this ID and its items")

	storeCmd.AddCommand(storeIngestCmd)
	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeRunsCmd)

	rootCmd.AddCommand(storeCmd)
}
