package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-pdfbinder/internal/bookmark"
)

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "Show the bookmark table a run would apply",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := bookmarkRows(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderBookmarks(rows, useRichTable(cmd.OutOrStdout())))
		return nil
	},
}

func init() {
	addBookmarkFlags(bookmarksCmd)
	rootCmd.AddCommand(bookmarksCmd)
}

func renderBookmarks(rows []bookmark.Row, rich bool) string {
	out := make([][]string, 0, len(rows))
	for i, r := range rows {
		state := "ok"
		if _, err := bookmark.ParseRow(r); err != nil {
			state = "skipped: invalid page"
		}
		out = append(out, []string{fmt.Sprint(i + 1), r.Page, r.Label, state})
	}
	return renderTable(
		[]string{"#", "页码", "书签名", "State"},
		out,
		[]int{1, 2},
		rich,
	)
}
