package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "newsbrief",
	Short: "Search recent news and read extractive summaries",
	Long: `newsbrief searches recent news on a topic, scrapes each article and
summarizes it by word-frequency scoring, with named entities highlighted.`,
	SilenceUsage: true,
}
