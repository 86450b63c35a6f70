package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/milkrun/internal/config"
)

var flagConfigOut string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default game configuration",
	Long: `Print the built-in configuration as YAML.

Save it, edit the values you care about and pass the file with --config.
Fields you leave out keep their defaults.

Examples:
  milkrun config > my-milkrun.yaml
  milkrun config --out ~/.milkrun/milkrun.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		data := config.GetDefaultYAML()
		if flagConfigOut == "" {
			_, err := os.Stdout.Write(data)
			return err
		}
		path := expandHome(flagConfigOut)
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	configCmd.Flags().StringVar(&flagConfigOut, "out", "", "Write to this file instead of stdout (never overwrites)")
}

func expandHome(path string) string {
	if len(path) > 1 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
