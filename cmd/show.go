package cmd

import (
	"fmt"
	"io"

	"github.com/chriserin/jsxgen/internal/generate"
	"github.com/chriserin/jsxgen/internal/parser"
	"github.com/chriserin/jsxgen/internal/tree"
	"github.com/chriserin/jsxgen/internal/writer"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <file> <Component>",
	Short: "Print the generated source of one component",
	Long: "Print the generated source of one component without writing files.\n" +
		"Use Config for the entry file and App for the root component.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunShow(cmd.OutOrStdout(), args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func RunShow(w io.Writer, file, name string) error {
	t, file, err := parseOutline(file)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(map[string]interface{}{"input.file": file})
	if err != nil {
		return err
	}
	gen, err := generate.New(cfg.GenerateOptions())
	if err != nil {
		return err
	}

	lookup := name
	if name == "index" {
		lookup = parser.ConfigName
	}
	artifact, err := gen.GenerateOne(t, lookup)
	if err != nil {
		return fmt.Errorf("showing %s: %w", name, err)
	}

	path, err := writer.Path(artifact)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "// %s\n", path)
	fmt.Fprint(w, artifact.Content)
	return nil
}

// parseOutline reads and parses file, falling back to the configured input
// when file is empty. It returns the path it read.
func parseOutline(file string) (*tree.Tree[*parser.Element], string, error) {
	if file == "" {
		cfg, err := loadConfig(nil)
		if err != nil {
			return nil, "", err
		}
		file = cfg.Input.File
	}
	src, err := readSource(file)
	if err != nil {
		return nil, "", err
	}
	t, err := parser.Parse(src)
	if err != nil {
		return nil, "", fmt.Errorf("parsing %s: %w", file, err)
	}
	return t, file, nil
}
