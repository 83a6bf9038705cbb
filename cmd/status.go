package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chriserin/jsxgen/internal/ui"
	"github.com/chriserin/jsxgen/internal/writer"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show generated files that were modified or deleted since generation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunStatus(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func RunStatus(w io.Writer) error {
	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	tracked, err := store.Tracked()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Tracked files: %d\n", len(tracked))

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	var modified, deleted int
	for _, rec := range tracked {
		data, err := os.ReadFile(rec.Path)
		switch {
		case os.IsNotExist(err):
			deleted++
			ui.StatusLine(w, ui.StateDeleted, displayPath(wd, rec.Path))
		case err != nil:
			return fmt.Errorf("reading %s: %w", rec.Path, err)
		case writer.Hash(data) != rec.Hash:
			modified++
			ui.StatusLine(w, ui.StateModified, displayPath(wd, rec.Path))
		}
	}

	if modified+deleted == 0 {
		fmt.Fprintln(w, "All generated files match their last generation")
		return nil
	}
	fmt.Fprintf(w, "  %s: %d\n", ui.StateModified, modified)
	fmt.Fprintf(w, "  %s: %d\n", ui.StateDeleted, deleted)
	return nil
}

// displayPath shortens a recorded absolute path relative to the working
// directory when it lies beneath it.
func displayPath(wd, path string) string {
	rel, err := filepath.Rel(wd, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
