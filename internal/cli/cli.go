package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/DimStarGB/COD42WOLFET-BRUSH-PORTER/internal/config"
	"github.com/DimStarGB/COD42WOLFET-BRUSH-PORTER/internal/convert"
	"github.com/DimStarGB/COD42WOLFET-BRUSH-PORTER/internal/filewalker"
	"github.com/DimStarGB/COD42WOLFET-BRUSH-PORTER/internal/texture"
	"github.com/DimStarGB/COD42WOLFET-BRUSH-PORTER/internal/worker"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "brushporter",
		Short: "Brush geometry porter for CoD4 to Wolf:ET map sources",
		Long:  "Converts Call of Duty 4 .map brush geometry to Wolfenstein: Enemy Territory format, optionally inlining misc_prefab geometry and rewriting face materials.",
	}

	rootCmd.AddCommand(convertCmd(cfg))
	rootCmd.AddCommand(batchCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// convertFlags holds the pipeline switches shared by convert and batch.
// Defaults come from the environment config, flags override per run.
type convertFlags struct {
	expandPrefabs     bool
	prefabRoot        string
	textureMode       string
	removeToolBrushes bool
	placeholderPrefix string
	maxPrefabDepth    int
}

func registerConvertFlags(cmd *cobra.Command, cfg *config.Config, f *convertFlags) {
	cmd.Flags().BoolVar(&f.expandPrefabs, "expand-prefabs", cfg.ExpandPrefabs, "Inline misc_prefab geometry into the world entity")
	cmd.Flags().StringVar(&f.prefabRoot, "prefab-root", cfg.PrefabRoot, "Directory prefab model paths are resolved against")
	cmd.Flags().StringVar(&f.textureMode, "texture-mode", cfg.TextureMode, "Output material policy: caulk_all or placeholders")
	cmd.Flags().BoolVar(&f.removeToolBrushes, "remove-tool-brushes", cfg.RemoveToolBrushes, "Drop clip/hint/portal/lightgrid brushes instead of remapping them")
	cmd.Flags().StringVar(&f.placeholderPrefix, "placeholder-prefix", cfg.PlaceholderPrefix, "Material prefix used in placeholders mode")
	cmd.Flags().IntVar(&f.maxPrefabDepth, "max-prefab-depth", cfg.MaxPrefabDepth, "Recursion ceiling for prefab-in-prefab expansion")
}

// options validates the flag set and turns it into pipeline options.
func (f *convertFlags) options() (convert.Options, error) {
	mode, err := texture.ParseMode(f.textureMode)
	if err != nil {
		return convert.Options{}, err
	}
	return convert.Options{
		ExpandPrefabs:     f.expandPrefabs,
		PrefabRoot:        f.prefabRoot,
		TextureMode:       mode,
		RemoveToolBrushes: f.removeToolBrushes,
		PlaceholderPrefix: f.placeholderPrefix,
		MaxPrefabDepth:    f.maxPrefabDepth,
	}, nil
}

func convertCmd(cfg *config.Config) *cobra.Command {
	f := &convertFlags{}
	cmd := &cobra.Command{
		Use:   "convert <input.map> <output.map>",
		Short: "Convert a single map file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args[0], args[1], f)
		},
	}
	registerConvertFlags(cmd, cfg, f)
	return cmd
}

func batchCmd(cfg *config.Config) *cobra.Command {
	f := &convertFlags{}
	var workers int
	cmd := &cobra.Command{
		Use:   "batch <input-dir> <output-dir>",
		Short: "Convert every map file under a directory tree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(args[0], args[1], f, workers)
		},
	}
	registerConvertFlags(cmd, cfg, f)
	cmd.Flags().IntVar(&workers, "workers", cfg.WorkerCount, "Parallel file conversions")
	return cmd
}

// runConvert handles the `convert` command.
func runConvert(inputPath, outputPath string, f *convertFlags) error {
	opts, err := f.options()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	stats, err := convert.Convert(inputPath, outputPath, opts)
	if err != nil {
		return fmt.Errorf("convert %s: %w", inputPath, err)
	}

	logStats(inputPath, outputPath, stats)
	return nil
}

// runBatch handles the `batch` command.
func runBatch(inputDir, outputDir string, f *convertFlags, workers int) error {
	ctx, cancel := setupContext()
	defer cancel()

	opts, err := f.options()
	if err != nil {
		return err
	}

	w := filewalker.NewWalker()
	entries, err := w.Walk(inputDir)
	if err != nil {
		return fmt.Errorf("walk input directory: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	log.Info().Int("files", len(entries)).Msg("Starting batch conversion")

	pool := worker.NewPool[filewalker.FileEntry, *convert.Stats](workers,
		func(ctx context.Context, entry filewalker.FileEntry) (*convert.Stats, error) {
			outPath := filepath.Join(outputDir, entry.RelPath)
			if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
				return nil, fmt.Errorf("create output directory: %w", err)
			}
			stats, err := convert.Convert(entry.Path, outPath, opts)
			if err != nil {
				return nil, err
			}
			logStats(entry.Path, outPath, stats)
			return stats, nil
		},
	)
	results := pool.Execute(ctx, entries)

	total := &convert.Stats{}
	converted, failed := 0, 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		if r.Result == nil {
			continue
		}
		converted++
		total.Add(r.Result)
	}

	log.Info().
		Int("files", converted).
		Int("failed", failed).
		Int("faces", total.FacesConverted).
		Int("brushes_added", total.BrushesAdded).
		Int("placeholders", total.PlaceholderCount).
		Str("output", outputDir).
		Msg("Batch conversion complete")

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(entries))
	}
	return nil
}

// logStats reports one file's conversion counters.
func logStats(inputPath, outputPath string, stats *convert.Stats) {
	log.Info().
		Str("input", inputPath).
		Str("output", outputPath).
		Int("faces_converted", stats.FacesConverted).
		Int("faces_skipped", stats.FacesSkipped).
		Int("mesh_brushes_removed", stats.MeshBrushesRemoved).
		Int("tool_faces_remapped", stats.ToolFacesRemapped).
		Int("caulk_faces_preserved", stats.CaulkFacesPreserved).
		Int("tool_brushes_removed", stats.ToolBrushesRemoved).
		Int("tool_brushes_kept", stats.ToolBrushesKept).
		Int("prefabs_found", stats.PrefabsFound).
		Int("prefabs_expanded", stats.PrefabsExpanded).
		Int("brushes_added", stats.BrushesAdded).
		Int("missing_prefab_files", stats.MissingPrefabFiles).
		Int("placeholders", stats.PlaceholderCount).
		Msg("File converted")
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}
