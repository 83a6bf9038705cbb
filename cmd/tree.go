package cmd

import (
	"fmt"
	"io"

	"github.com/chriserin/jsxgen/internal/parser"
	"github.com/chriserin/jsxgen/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var treeFormat string

var treeCmd = &cobra.Command{
	Use:   "tree [file]",
	Short: "Print the component hierarchy of an outline",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := ""
		if len(args) == 1 {
			file = args[0]
		}
		return RunTree(cmd.OutOrStdout(), file, treeFormat)
	},
}

func init() {
	treeCmd.Flags().StringVarP(&treeFormat, "format", "f", "text", "output format: text or yaml")
	rootCmd.AddCommand(treeCmd)
}

func RunTree(w io.Writer, file, format string) error {
	if format != "text" && format != "yaml" {
		return fmt.Errorf("unknown format %q, use text or yaml", format)
	}

	t, file, err := parseOutline(file)
	if err != nil {
		return err
	}
	outline, err := parser.Transform(t)
	if err != nil {
		return fmt.Errorf("transforming %s: %w", file, err)
	}

	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(outline); err != nil {
			return fmt.Errorf("encoding outline: %w", err)
		}
		return enc.Close()
	}
	fmt.Fprintln(w, ui.Tree(outline))
	return nil
}
