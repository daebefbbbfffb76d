package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"go-pdfbinder/internal/pdf"
)

var outlineCmd = &cobra.Command{
	Use:   "outline FILE",
	Short: "List the top-level bookmarks of a PDF",
	Long: `outline prints the top-level bookmarks of FILE in document order, for
checking a merged PDF after a run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := pdf.Open(args[0])
		if err != nil {
			return err
		}
		entries, err := doc.Outline()
		if err != nil {
			return fmt.Errorf("read outline of %s: %w", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderOutline(entries, useRichTable(cmd.OutOrStdout())))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(outlineCmd)
}

func renderOutline(entries []pdf.OutlineEntry, rich bool) string {
	if len(entries) == 0 {
		return "no bookmarks"
	}
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		page := "?"
		if e.Page > 0 {
			page = strconv.Itoa(e.Page)
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), page, e.Title})
	}
	return renderTable([]string{"#", "页码", "书签名"}, rows, []int{1, 2}, rich)
}
