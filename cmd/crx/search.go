package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meigma/crx/pattern"
	"github.com/meigma/crx/search"
)

var searchFlags struct {
	caseSensitive bool
	wholeWord     bool
	regex         bool
	contextLines  int
	include       []string
	exclude       []string
	html          bool
}

var searchCmd = &cobra.Command{
	Use:   "search <package> <query>",
	Short: "Search decoded file contents",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pat, err := pattern.CompileContent(args[1], pattern.ContentOptions{
			CaseSensitive: searchFlags.caseSensitive,
			WholeWord:     searchFlags.wholeWord,
			Regex:         searchFlags.regex,
		})
		if err != nil {
			return err
		}

		pkg, err := loadPackage(args[0])
		if err != nil {
			return err
		}
		files, err := pkg.Contents(cmd.Context(), nil)
		if err != nil {
			return err
		}

		session := search.NewSession(search.WithLogger(logger()))
		task := session.Start("", pat, files,
			search.WithContextLines(searchFlags.contextLines),
			search.WithInclude(searchFlags.include...),
			search.WithExclude(searchFlags.exclude...),
		)

		var result *search.Result
		for ev := range task.Events() {
			switch ev.Kind {
			case search.EventProgress:
				fmt.Fprintf(os.Stderr, "\rscanned %d/%d files, %d matches",
					ev.Progress.FilesProcessed, ev.Progress.TotalFiles, ev.Progress.MatchesFound)
			case search.EventComplete:
				fmt.Fprintln(os.Stderr)
				result = ev.Result
			case search.EventError:
				fmt.Fprintln(os.Stderr)
				return ev.Err
			}
		}
		if result == nil {
			return fmt.Errorf("search cancelled")
		}

		printResult(cmd, pat, result)
		return nil
	},
}

func printResult(cmd *cobra.Command, pat *pattern.Content, result *search.Result) {
	for _, file := range result.Files {
		cmd.Printf("%s (%d matches)\n", file.Path, len(file.Matches))
		for _, m := range file.Matches {
			line := m.LineText
			if searchFlags.html {
				line = search.HighlightHTML(line, pat)
			}
			cmd.Printf("  %d:%d: %s\n", m.Line+1, m.Column+1, line)
		}
	}
	cmd.Printf("%d matches in %d files (%.1f per file)\n",
		result.Stats.TotalMatches, result.Stats.MatchedFiles, result.Stats.AvgMatchesPerFile)
}

func init() {
	searchCmd.Flags().BoolVar(&searchFlags.caseSensitive, "case-sensitive", false, "match case-sensitively")
	searchCmd.Flags().BoolVarP(&searchFlags.wholeWord, "word", "w", false, "match whole words only")
	searchCmd.Flags().BoolVar(&searchFlags.regex, "regex", false, "treat the query as a regular expression")
	searchCmd.Flags().IntVarP(&searchFlags.contextLines, "context", "C", search.DefaultContextLines, "context lines around each match")
	searchCmd.Flags().StringSliceVar(&searchFlags.include, "include", nil, "only scan paths matching these globs")
	searchCmd.Flags().StringSliceVar(&searchFlags.exclude, "exclude", nil, "skip paths matching these globs")
	searchCmd.Flags().BoolVar(&searchFlags.html, "html", false, "print HTML-highlighted match lines")
	rootCmd.AddCommand(searchCmd)
}
