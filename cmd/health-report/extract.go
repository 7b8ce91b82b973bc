// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/health-report/internal/extract"
	"github.com/pdiddy/health-report/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [markup-file]",
	Short: "Extract scored, routed content items from analysis markup",
	Long: `Extract reads the markup of one analysis document, locates fragments with
the configured selectors, and writes the resulting content items as YAML or
JSON. Each item carries its dimension, confidence score, data markers, and
the deliverables and sections it is routed to.

With --manifest, every document listed in the manifest is extracted in
parallel. Each document is given its own range of ordinal indexes so output
order follows the manifest.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	manifest, _ := cmd.Flags().GetString("manifest")
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")
	ingest, _ := cmd.Flags().GetBool("ingest")

	if manifest == "" && len(args) == 0 {
		return fmt.Errorf("a markup file or --manifest is required")
	}
	if manifest != "" && len(args) > 0 {
		return fmt.Errorf("use either a markup file or --manifest, not both")
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	var results []types.ExtractionResult
	if manifest != "" {
		results, err = extractManifest(ctx, cmd, engine, manifest)
	} else {
		results, err = extractSingle(ctx, cmd, engine, args[0])
	}
	if err != nil {
		return err
	}

	if err := writeOutput(outPath, func(w io.Writer) error {
		return extract.WriteResults(w, results, format)
	}); err != nil {
		return err
	}

	if ingest {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		run, err := s.Ingest(ctx, results)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "stored run %s (%d items)\n", run.ID, run.Items)
	}
	return nil
}

func extractSingle(ctx context.Context, cmd *cobra.Command, engine *extract.Engine, path string) ([]types.ExtractionResult, error) {
	srcType, _ := cmd.Flags().GetString("type")
	selPath, _ := cmd.Flags().GetString("selectors")
	offset, _ := cmd.Flags().GetInt("offset")

	if srcType == "" {
		return nil, fmt.Errorf("--type is required for a single document")
	}
	src := types.SourceFileType(srcType)
	if !src.Known() {
		logger.Warn("unknown source file type, routing may fall back", zap.String("type", srcType))
	}

	markup, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var selectors []types.Selector
	if selPath != "" {
		selectors, err = extract.LoadSelectors(selPath)
		if err != nil {
			return nil, err
		}
	}

	doc := &types.SourceDocument{SourceFileType: src, Markup: string(markup)}
	items, err := engine.Extract(ctx, doc, selectors, offset)
	if err != nil {
		return nil, err
	}
	logger.Info("document extracted",
		zap.String("path", path),
		zap.String("source_file", srcType),
		zap.Int("items", len(items)))

	return []types.ExtractionResult{{SourceFile: src, Items: items}}, nil
}

func extractManifest(ctx context.Context, cmd *cobra.Command, engine *extract.Engine, path string) ([]types.ExtractionResult, error) {
	offset, _ := cmd.Flags().GetInt("offset")

	inputs, err := extract.LoadManifest(path)
	if err != nil {
		return nil, err
	}
	return engine.ExtractBatch(ctx, inputs, extract.BatchOptions{
		Workers:     cfg.Extract.Workers,
		IndexStride: cfg.Extract.IndexStride,
		Offset:      offset,
	})
}

// writeOutput runs write against path, or stdout when path is empty.
func writeOutput(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func init() {
	extractCmd.Flags().String("type", "", "source file type of the document (e.g. deep-dive-performance-health)")
	extractCmd.Flags().String("selectors", "", "YAML selectors file (default: built-in selectors for the document family)")
	extractCmd.Flags().Int("offset", 0, "first ordinal index")
	extractCmd.Flags().String("manifest", "", "YAML manifest of documents to extract in parallel")
	extractCmd.Flags().Int("workers", 4, "parallel documents in manifest mode")
	extractCmd.Flags().Int("index-stride", 1000, "ordinal indexes reserved per document in manifest mode")
	extractCmd.Flags().String("format", extract.FormatYAML, "output format: yaml or json")
	extractCmd.Flags().String("out", "", "output file (default: stdout)")
	extractCmd.Flags().Bool("ingest", false, "also store the results as a new run")

	extractCmd.Flags().String("tables", "", "YAML chapter and dimension tables (default: built-in)")
	extractCmd.Flags().String("registry-file", "", "YAML content registry file")
	extractCmd.Flags().String("registry-url", "", "base URL of a networked content registry")

	_ = viper.BindPFlag("extract.tables_file", extractCmd.Flags().Lookup("tables"))
	_ = viper.BindPFlag("registry.file", extractCmd.Flags().Lookup("registry-file"))
	_ = viper.BindPFlag("registry.url", extractCmd.Flags().Lookup("registry-url"))
	_ = viper.BindPFlag("extract.workers", extractCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("extract.index_stride", extractCmd.Flags().Lookup("index-stride"))

	rootCmd.AddCommand(extractCmd)
}
