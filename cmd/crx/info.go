package main

import (
	"maps"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <package>",
	Short: "Show package header and aggregate statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkg, err := loadPackage(args[0])
		if err != nil {
			return err
		}

		h := pkg.Header()
		s := pkg.Summary()
		cmd.Printf("format version:    %d\n", h.Version)
		cmd.Printf("payload offset:    %d\n", h.PayloadOffset)
		cmd.Printf("files:             %d\n", s.FileCount)
		cmd.Printf("directories:       %d\n", s.DirCount)
		cmd.Printf("uncompressed size: %s\n", humanize.IBytes(s.TotalUncompressedSize))
		cmd.Printf("compressed size:   %s\n", humanize.IBytes(s.TotalCompressedSize))
		cmd.Printf("compression ratio: %.2f\n", s.CompressionRatio)

		cmd.Println("categories:")
		for _, cat := range slices.Sorted(maps.Keys(s.CategoryCounts)) {
			cmd.Printf("  %-8s %d\n", cat.String(), s.CategoryCounts[cat])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
