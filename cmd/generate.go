package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chriserin/jsxgen/internal/db"
	"github.com/chriserin/jsxgen/internal/generate"
	"github.com/chriserin/jsxgen/internal/logging"
	"github.com/chriserin/jsxgen/internal/parser"
	"github.com/chriserin/jsxgen/internal/ui"
	"github.com/chriserin/jsxgen/internal/writer"
	"github.com/spf13/cobra"
)

type GenerateOptions struct {
	File      string // outline file, input.file when empty
	Out       string
	Overwrite string
	DryRun    bool
	Confirmer writer.Confirmer // asks before overwriting under the prompt policy
}

var generateOpts GenerateOptions

var generateCmd = &cobra.Command{
	Use:   "generate [file]",
	Short: "Generate React component files from an outline",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := generateOpts
		if len(args) == 1 {
			opts.File = args[0]
		}
		opts.Confirmer = writer.NewConfirmer(os.Stdin)
		return RunGenerate(cmd.OutOrStdout(), opts)
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateOpts.Out, "out", "o", "", "output directory (default from config)")
	generateCmd.Flags().StringVar(&generateOpts.Overwrite, "overwrite", "", "overwrite policy: never, always, prompt or unchanged")
	generateCmd.Flags().BoolVarP(&generateOpts.DryRun, "dry-run", "n", false, "report what would be written without touching files")
	rootCmd.AddCommand(generateCmd)
}

func RunGenerate(w io.Writer, opts GenerateOptions) error {
	log := logging.GetLogger("generate")
	defer logging.LogOperationStart(log, "generate")()

	overrides := map[string]interface{}{}
	if opts.File != "" {
		overrides["input.file"] = opts.File
	}
	if opts.Out != "" {
		overrides["output.dir"] = opts.Out
	}
	if opts.Overwrite != "" {
		overrides["output.overwrite"] = opts.Overwrite
	}
	cfg, err := loadConfig(overrides)
	if err != nil {
		return err
	}

	src, err := readSource(cfg.Input.File)
	if err != nil {
		return err
	}
	t, err := parser.Parse(src)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", cfg.Input.File, err)
	}

	gen, err := generate.New(cfg.GenerateOptions())
	if err != nil {
		return err
	}
	artifacts, err := gen.Generate(t)
	if err != nil {
		return fmt.Errorf("generating %s: %w", cfg.Input.File, err)
	}

	sqlDB, err := db.Open(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()
	store := db.NewStore(sqlDB)

	outDir, err := filepath.Abs(cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", cfg.Output.Dir, err)
	}
	runID, err := store.RecordRun(cfg.Input.File, outDir, string(cfg.Output.Overwrite), opts.DryRun)
	if err != nil {
		return err
	}

	wr := writer.New(writer.Options{
		OutputDir: cfg.Output.Dir,
		Policy:    cfg.Output.Overwrite,
		DryRun:    opts.DryRun,
		Confirmer: opts.Confirmer,
		History:   store,
		RunID:     runID,
	})
	results, err := wr.Write(artifacts)
	for _, r := range results {
		ui.ActionLine(w, r.Action, filepath.Join(cfg.Output.Dir, r.Path))
	}
	if err != nil {
		return err
	}

	log.Info().
		Int64("run", runID).
		Int("artifacts", len(artifacts)).
		Bool("dry_run", opts.DryRun).
		Msg("Generation complete")
	ui.SummaryLine(w, results, opts.DryRun)
	return nil
}
