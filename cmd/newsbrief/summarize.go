package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/deusflow/newsbrief/internal/entities"
	"github.com/deusflow/newsbrief/internal/logger"
	"github.com/deusflow/newsbrief/internal/summarizer"
)

var (
	sumSentences int
	sumLanguage  string
	sumOrder     string
	sumEntities  bool
	sumExplain   bool

	// swapped in tests
	newExtractor = func() entities.Extractor { return entities.ProseExtractor{} }
	newSegmenter = func() summarizer.Segmenter { return summarizer.ProseSegmenter{} }
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file]",
	Short: "Summarize a text file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSummarize,
}

func init() {
	summarizeCmd.Flags().IntVarP(&sumSentences, "sentences", "n", 5, "number of sentences in the summary")
	summarizeCmd.Flags().StringVar(&sumLanguage, "language", "en", "stop-word language (en, da)")
	summarizeCmd.Flags().StringVar(&sumOrder, "order", "score", "sentence order: score or document")
	summarizeCmd.Flags().BoolVar(&sumEntities, "entities", false, "highlight named entities")
	summarizeCmd.Flags().BoolVar(&sumExplain, "explain", false, "print word frequencies and sentence scores")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	logger.InitWithWriter(cmd.ErrOrStderr())

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	order, err := summarizer.ParseOrder(sumOrder)
	if err != nil {
		return err
	}
	s, err := summarizer.New(sumLanguage, order, summarizer.WithSegmenter(newSegmenter()))
	if err != nil {
		return err
	}

	a, err := s.Analyze(text, sumSentences)
	if err != nil {
		return err
	}

	if sumExplain {
		printExplain(cmd, a)
	}

	if !sumEntities {
		fmt.Fprintln(cmd.OutOrStdout(), a.Summary)
		return nil
	}

	ents, err := newExtractor().Extract(a.Summary)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderEntities(a.Summary, ents))
	return nil
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}

func printExplain(cmd *cobra.Command, a *summarizer.Analysis) {
	words := make([]string, 0, len(a.Frequencies))
	for w := range a.Frequencies {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		fi, fj := a.Frequencies[words[i]], a.Frequencies[words[j]]
		if fi != fj {
			return fi > fj
		}
		return words[i] < words[j]
	})

	fmt.Fprintln(cmd.OutOrStdout(), "Word frequencies:")
	for _, w := range words {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-20s %d  %.3f\n", w, a.Counts[w], a.Frequencies[w])
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Sentence scores:")
	for _, sent := range a.Sentences {
		score, ok := a.Scores[sent.Position]
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "  [%d] -      %s\n", sent.Position, sent.Text)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  [%d] %.3f  %s\n", sent.Position, score, sent.Text)
	}
	fmt.Fprintln(cmd.OutOrStdout())
}

var (
	entityStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220"))
	labelStyle  = lipgloss.NewStyle().Faint(true)
)

func renderEntities(text string, ents []entities.Entity) string {
	out := ""
	last := 0
	for _, e := range ents {
		if e.Start < last || e.End > len(text) {
			continue
		}
		out += text[last:e.Start] + entityStyle.Render(e.Text) + labelStyle.Render("["+e.Label+"]")
		last = e.End
	}
	return out + text[last:]
}
