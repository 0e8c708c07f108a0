package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/topn2024/ai-bookkeeping-sub009/internal/cli"
	"github.com/topn2024/ai-bookkeeping-sub009/internal/model"
	"github.com/topn2024/ai-bookkeeping-sub009/internal/service"
)

func analyzeCmd() *cobra.Command {
	var (
		asJSON      bool
		priorIntent string
	)

	cmd := &cobra.Command{
		Use:   "analyze <utterance>",
		Short: "Analyze one transcribed utterance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.Default()

			eng, err := buildEngine(logger)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), analysisTimeout())
			defer cancel()

			var sctx service.SessionContext
			if priorIntent != "" {
				category := model.IntentCategory(priorIntent)
				if !category.Valid() {
					return fmt.Errorf("invalid prior intent category: %s", priorIntent)
				}
				sctx = service.PriorIntent(category)
			}

			result := eng.Analyze(ctx, args[0], sctx)

			if asJSON {
				encoded, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode result: %w", err)
				}
				fmt.Println(string(encoded))
				return nil
			}

			fmt.Print(cli.RenderResult(result))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw result as JSON")
	cmd.Flags().StringVar(&priorIntent, "prior-intent", "", "intent category of the previous turn, for context boosting")

	return cmd
}
