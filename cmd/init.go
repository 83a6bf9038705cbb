package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chriserin/jsxgen/internal/config"
	"github.com/chriserin/jsxgen/internal/db"
	"github.com/spf13/cobra"
)

const sampleOutline = `<Config router bootstrap/>
<App link switch route>
  <Home useState/>
  <Todos map fetch useEffect/>
  <Signup forminput-email forminput-password fetch=post/>
</App>
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize jsxgen in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunInit(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func RunInit(w io.Writer) error {
	// project config
	if _, err := os.Stat(config.ProjectFile); err == nil {
		fmt.Fprintf(w, "%s already exists\n", config.ProjectFile)
	} else {
		defaults, err := config.Default()
		if err != nil {
			return err
		}
		if err := config.Save(config.ProjectFile, defaults); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s created\n", config.ProjectFile)
	}

	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}

	// sample outline
	if _, err := os.Stat(cfg.Input.File); err == nil {
		fmt.Fprintf(w, "%s already exists\n", cfg.Input.File)
	} else {
		if err := os.WriteFile(cfg.Input.File, []byte(sampleOutline), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", cfg.Input.File, err)
		}
		fmt.Fprintf(w, "%s created\n", cfg.Input.File)
	}

	// database
	_, err = os.Stat(cfg.History.Path)
	dbExists := err == nil
	sqlDB, err := db.Open(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	sqlDB.Close()
	if dbExists {
		fmt.Fprintf(w, "%s already exists\n", cfg.History.Path)
	} else {
		fmt.Fprintf(w, "%s created\n", cfg.History.Path)
	}

	// gitignore
	msgs, err := ensureGitignore(gitignoreEntry(cfg.History.Path))
	if err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	for _, msg := range msgs {
		fmt.Fprintln(w, msg)
	}

	return nil
}

// gitignoreEntry ignores the directory holding the database and its WAL
// files, or the database file itself when it sits in the project root.
func gitignoreEntry(dbPath string) string {
	dir := filepath.ToSlash(filepath.Dir(dbPath))
	if dir == "." {
		return filepath.ToSlash(dbPath)
	}
	return strings.TrimSuffix(dir, "/") + "/"
}

func ensureGitignore(entry string) ([]string, error) {
	data, err := os.ReadFile(".gitignore")
	if os.IsNotExist(err) {
		if err := os.WriteFile(".gitignore", []byte(entry+"\n"), 0o644); err != nil {
			return nil, err
		}
		return []string{".gitignore created", entry + " added to .gitignore"}, nil
	}
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(data), "\n")
	for _, line := range lines {
		if strings.TrimSpace(line) == entry {
			return []string{entry + " already in .gitignore"}, nil
		}
	}

	content := string(data)
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry + "\n"

	if err := os.WriteFile(".gitignore", []byte(content), 0o644); err != nil {
		return nil, err
	}
	return []string{entry + " added to .gitignore"}, nil
}
