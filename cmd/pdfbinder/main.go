// Package main is the command-line front-end of go-pdfbinder.
//
// It gathers the input folder, output folder and bookmark rows from flags,
// environment and an optional config file, then runs one batch.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "pdfbinder",
	Short: "Merge the PDFs of every folder and stamp bookmarks onto the result",
	Long: `pdfbinder walks an input folder and, for every folder below it, merges the
PDFs found directly inside into "<folder>_合并后的pdf.pdf" in the output folder.
Files whose name starts with 封面 come first. Each merged PDF then receives the
same list of (page, title) bookmarks.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdfbinder.yaml or ~/.config/pdfbinder/pdfbinder.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdfbinder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdfbinder"))
		}
	}

	// Values from .env become PDFBINDER_* environment variables.
	_ = godotenv.Load()

	viper.SetEnvPrefix("PDFBINDER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
