package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fatehq/fate-cli/internal/engine"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank the catalog under a sort strategy",
	Long: `Sorts the full catalog under one of the ranking strategies and prints
each tool with its strategy score and display score.

Strategies:
  freedom   open source, privacy, and protocol support weighted double
  ease      ease of use alone
  balanced  unweighted sum of all rated dimensions (default)

Examples:
  rank --strategy freedom
  rank --strategy ease --format csv --output ranking.csv
  rank --weights freedom --format json`,
	RunE: runRank,
}

func init() {
	f := rankCmd.Flags()
	f.String("strategy", "balanced", "sort strategy: freedom, ease, or balanced")
	f.String("weights", "card", "display score weight table: card or freedom")
	f.String("format", "table", "output format: table, csv, or json")
	f.String("output", "", "output file path (default: stdout)")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	if err := validateFormat(format); err != nil {
		return err
	}

	strategyName, _ := cmd.Flags().GetString("strategy")
	strategy, err := engine.ParseStrategy(strategyName)
	if err != nil {
		return err
	}

	weightsName, _ := cmd.Flags().GetString("weights")
	weights, err := engine.TableByName(weightsName)
	if err != nil {
		return err
	}

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	sorted := engine.SortCatalog(cat.Tools(), strategy)

	type rankRow struct {
		Rank         int     `json:"rank"`
		ToolID       string  `json:"tool_id"`
		Name         string  `json:"name"`
		Score        float64 `json:"score"`
		DisplayScore int     `json:"display_score"`
	}
	rows := make([][]string, 0, len(sorted))
	jsonRows := make([]rankRow, 0, len(sorted))
	for i, t := range sorted {
		score := engine.StrategyScore(t, strategy)
		display := engine.DisplayScore(t, weights)
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			t.ID,
			t.Name,
			fmt.Sprintf("%.1f", score),
			strconv.Itoa(display),
		})
		jsonRows = append(jsonRows, rankRow{
			Rank: i + 1, ToolID: t.ID, Name: t.Name, Score: score, DisplayScore: display,
		})
	}

	if format == "table" {
		fmt.Printf("%s ranking (revision %s)\n\n", titler.String(string(strategy)), cat.Revision())
	}

	return outputResults(outputData{
		Header: []string{"Rank", "ID", "Name", "Score", "Display"},
		Rows:   rows,
		JSON: map[string]any{
			"strategy": string(strategy),
			"revision": cat.Revision(),
			"entries":  jsonRows,
		},
	}, format, outputPath)
}
