package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/fatehq/fate-cli/internal/engine"
	"github.com/fatehq/fate-cli/internal/model"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Browse the tool catalog",
}

var toolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all evaluated tools with display scores",
	RunE:  runToolsList,
}

var toolsShowCmd = &cobra.Command{
	Use:   "show <tool-id>",
	Short: "Show one tool in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runToolsShow,
}

func init() {
	f := toolsListCmd.Flags()
	f.String("sort", "", "sort strategy: freedom, ease, or balanced (default: authored order)")
	f.String("format", "table", "output format: table, csv, or json")
	f.String("output", "", "output file path (default: stdout)")

	toolsCmd.AddCommand(toolsListCmd)
	toolsCmd.AddCommand(toolsShowCmd)
	rootCmd.AddCommand(toolsCmd)
}

func runToolsList(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	if err := validateFormat(format); err != nil {
		return err
	}

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	tools := cat.Tools()
	if sortName, _ := cmd.Flags().GetString("sort"); sortName != "" {
		strategy, err := engine.ParseStrategy(sortName)
		if err != nil {
			return err
		}
		tools = engine.SortCatalog(tools, strategy)
	}

	weights := engine.CardWeights()

	type toolRow struct {
		model.Tool
		DisplayScore int `json:"display_score"`
	}
	rows := make([][]string, 0, len(tools))
	jsonRows := make([]toolRow, 0, len(tools))
	for _, t := range tools {
		score := engine.DisplayScore(t, weights)
		rows = append(rows, []string{
			t.ID,
			t.Name,
			strconv.Itoa(score),
			string(t.OpenSourceLevel),
			string(t.PrivacyLevel),
			t.Pricing.Type,
		})
		jsonRows = append(jsonRows, toolRow{Tool: t, DisplayScore: score})
	}

	return outputResults(outputData{
		Header: []string{"ID", "Name", "Score", "Open Source", "Privacy", "Pricing"},
		Rows:   rows,
		JSON:   jsonRows,
	}, format, outputPath)
}

func runToolsShow(_ *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	tool, ok := cat.Tool(args[0])
	if !ok {
		return eris.Errorf("tools: no tool with id %q", args[0])
	}

	fmt.Printf("ID:          %s\n", tool.ID)
	fmt.Printf("Name:        %s\n", tool.Name)
	if tool.Tagline != "" {
		fmt.Printf("Tagline:     %s\n", tool.Tagline)
	}
	fmt.Printf("URL:         %s\n", tool.URL)
	fmt.Printf("Open Source: %s\n", tool.OpenSourceLevel)
	fmt.Printf("Privacy:     %s\n", tool.PrivacyLevel)
	fmt.Printf("Pricing:     %s", tool.Pricing.Type)
	if tool.Pricing.StartingPrice != "" {
		fmt.Printf(" (from %s)", tool.Pricing.StartingPrice)
	}
	fmt.Println()
	fmt.Printf("Score:       %d / 100\n", engine.DisplayScore(tool, engine.CardWeights()))

	fmt.Println("\nDimensions:")
	for _, dim := range cat.Dimensions() {
		if v, ok := tool.Score(dim.ID); ok {
			fmt.Printf("  %-20s %d / 5\n", dim.Name, v)
		}
	}

	if len(tool.Protocols) > 0 {
		fmt.Println("\nProtocols:")
		for _, p := range tool.Protocols {
			mark := "no"
			if p.Supported {
				mark = "yes"
			}
			fmt.Printf("  %-20s %-4s (%s)\n", p.Name, mark, p.Quality)
		}
	}

	if len(tool.BestFor) > 0 {
		fmt.Printf("\nBest for: %s\n", strings.Join(tool.BestFor, ", "))
	}
	return nil
}
