package main

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/meigma/crx/pattern"
)

var lsFlags struct {
	filter        string
	regex         bool
	caseSensitive bool
	categories    []string
}

var lsCmd = &cobra.Command{
	Use:   "ls <package>",
	Short: "List package files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := buildFilter()
		if err != nil {
			return err
		}

		pkg, err := loadPackage(args[0])
		if err != nil {
			return err
		}

		for _, node := range pkg.Files() {
			if !filter.Match(node.Path) {
				continue
			}
			cmd.Printf("%10s  %-8s %s\n",
				humanize.IBytes(node.Size), pattern.Classify(node.Path).String(), node.Path)
		}
		return nil
	},
}

// buildFilter compiles the ls flags into a pattern filter.
func buildFilter() (*pattern.Filter, error) {
	filter := &pattern.Filter{}
	if lsFlags.filter != "" {
		name, err := pattern.CompileName(lsFlags.filter, pattern.NameOptions{
			Regex:         lsFlags.regex,
			CaseSensitive: lsFlags.caseSensitive,
		})
		if err != nil {
			return nil, err
		}
		filter.Name = name
	}
	for _, label := range lsFlags.categories {
		cat, err := pattern.ParseCategory(label)
		if err != nil {
			return nil, err
		}
		filter.Categories = append(filter.Categories, cat)
	}
	return filter, nil
}

func init() {
	lsCmd.Flags().StringVarP(&lsFlags.filter, "filter", "f", "", "name filter (glob: *, **, ?)")
	lsCmd.Flags().BoolVar(&lsFlags.regex, "regex", false, "treat the filter as a regular expression")
	lsCmd.Flags().BoolVar(&lsFlags.caseSensitive, "case-sensitive", false, "match the filter case-sensitively")
	lsCmd.Flags().StringSliceVar(&lsFlags.categories, "category", nil, "restrict to categories (image, code, markup, locale, other)")
	rootCmd.AddCommand(lsCmd)
}
