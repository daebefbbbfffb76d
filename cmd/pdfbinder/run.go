package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go-pdfbinder/internal/batch"
	"go-pdfbinder/internal/bookmark"
	"go-pdfbinder/internal/config"
	"go-pdfbinder/internal/logsink"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Merge and bookmark every folder under the input folder",
	Long: `run processes every folder below --input, at any depth. Folders without
PDFs are skipped with a warning; a folder that fails is logged and the run
continues with the next one. The exit status is non-zero when any folder
failed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := bookmarkRows(cmd)
		if err != nil {
			return err
		}

		sink := logsink.New(cmd.OutOrStdout(), 0)
		sum, err := batch.NewRunner(sink).Run(cmd.Context(), batch.Request{
			InputDir:  viper.GetString("input_dir"),
			OutputDir: viper.GetString("output_dir"),
			Rows:      rows,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "folders: %d, merged: %d, skipped: %d, failed: %d\n",
			sum.Dirs, sum.Merged, sum.Skipped, sum.Failed)
		if sum.Failed > 0 {
			return fmt.Errorf("%d folder(s) failed", sum.Failed)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringP("input", "i", "", "input folder")
	runCmd.Flags().StringP("output", "o", config.DefaultOutputDir(), "output folder")
	addBookmarkFlags(runCmd)

	_ = viper.BindPFlag("input_dir", runCmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("output_dir", runCmd.Flags().Lookup("output"))

	rootCmd.AddCommand(runCmd)
}

func addBookmarkFlags(cmd *cobra.Command) {
	cmd.Flags().String("bookmarks", "", "bookmark preset file (.toml, .yaml, .yml)")
	cmd.Flags().StringArray("bookmark", nil, `bookmark row as PAGE=LABEL, repeatable; replaces the preset (e.g. --bookmark "1=封面")`)
}

// bookmarkRows returns the rows given with --bookmark, or else the preset
// named by --bookmarks / PDFBINDER_BOOKMARKS, or else the built-in defaults.
func bookmarkRows(cmd *cobra.Command) ([]bookmark.Row, error) {
	specs, err := cmd.Flags().GetStringArray("bookmark")
	if err != nil {
		return nil, err
	}
	if len(specs) > 0 {
		return parseBookmarkFlags(specs)
	}

	path, _ := cmd.Flags().GetString("bookmarks")
	if path == "" {
		path = viper.GetString("bookmarks")
	}
	return config.LoadBookmarkRows(path)
}

func parseBookmarkFlags(specs []string) ([]bookmark.Row, error) {
	t := bookmark.NewTable()
	for _, spec := range specs {
		page, label, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --bookmark %q: expected PAGE=LABEL", spec)
		}
		if _, err := t.Add(strings.TrimSpace(page), strings.TrimSpace(label)); err != nil {
			if errors.Is(err, bookmark.ErrEmptyField) {
				return nil, fmt.Errorf("invalid --bookmark %q: %w", spec, err)
			}
			return nil, err
		}
	}
	return t.Rows(), nil
}
