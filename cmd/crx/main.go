// Command crx inspects signed browser-extension packages: header info,
// member listing, content extraction, and pattern search.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/meigma/crx"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "crx",
	Short:         "Inspect and search extension packages",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// logger returns a debug text logger when --verbose is set, nil
// otherwise.
func logger() *slog.Logger {
	if !verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// loadPackage reads and parses the package at path.
func loadPackage(path string) (*crx.Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read package: %w", err)
	}
	pkg, err := crx.Parse(data, crx.WithLogger(logger()))
	if err != nil {
		return nil, fmt.Errorf("parse package: %w", err)
	}
	return pkg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "crx:", err)
		os.Exit(1)
	}
}
