package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/topn2024/ai-bookkeeping-sub009/internal/cli"
)

func batchCmd() *cobra.Command {
	var (
		filePath string
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Analyze a file of utterances, one per line",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := slog.Default()

			eng, err := buildEngine(logger)
			if err != nil {
				return err
			}

			file, err := os.Open(filePath)
			if err != nil {
				return fmt.Errorf("failed to open input file: %w", err)
			}
			defer func() { _ = file.Close() }()

			var utterances []string
			scanner := bufio.NewScanner(file)
			for scanner.Scan() {
				if line := strings.TrimSpace(scanner.Text()); line != "" {
					utterances = append(utterances, line)
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input file: %w", err)
			}

			bar := progressbar.NewOptions(len(utterances),
				progressbar.OptionSetDescription("analyzing"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
			)

			var complete, incomplete, navigations, noiseOnly int
			for _, utterance := range utterances {
				ctx, cancel := context.WithTimeout(cmd.Context(), analysisTimeout())
				result := eng.Analyze(ctx, utterance, nil)
				cancel()

				complete += len(result.CompleteIntents)
				incomplete += len(result.IncompleteIntents)
				if result.Navigation != nil {
					navigations++
				}
				if result.Empty() {
					noiseOnly++
				}

				if verbose {
					fmt.Println()
					fmt.Println(cli.SubtleStyle.Render("> " + utterance))
					fmt.Print(cli.RenderResult(result))
				}
				_ = bar.Add(1)
			}
			fmt.Println()

			fmt.Printf("utterances: %d  complete: %d  incomplete: %d  navigations: %d  unactionable: %d\n",
				len(utterances), complete, incomplete, navigations, noiseOnly)
			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "input file with one utterance per line")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "print each result")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
