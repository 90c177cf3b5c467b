package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fatehq/fate-cli/internal/engine"
	"github.com/fatehq/fate-cli/internal/explain"
	"github.com/fatehq/fate-cli/internal/model"
	"github.com/fatehq/fate-cli/pkg/anthropic"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Recommendation quiz",
}

var quizQuestionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print the question bank",
	RunE:  runQuizQuestions,
}

var quizScoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a set of quiz answers",
	Long: `Scores an answers file against the question bank and prints the ranked
tools plus any requirement mismatches.

The answers file maps question id to option id:

  priority: freedom
  privacy: critical
  openSource: essential

Unknown question or option ids are ignored; a partial file is fine.`,
	RunE: runQuizScore,
}

func init() {
	f := quizScoreCmd.Flags()
	f.String("answers", "", "path to the answers YAML file (required)")
	f.Bool("explain", false, "generate a narrative recommendation via the Anthropic API")
	f.String("format", "table", "output format: table, csv, or json")
	f.String("output", "", "output file path (default: stdout)")
	_ = quizScoreCmd.MarkFlagRequired("answers")

	quizCmd.AddCommand(quizQuestionsCmd)
	quizCmd.AddCommand(quizScoreCmd)
	rootCmd.AddCommand(quizCmd)
}

func runQuizQuestions(_ *cobra.Command, _ []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	for _, q := range cat.Questions() {
		fmt.Printf("%s: %s\n", q.ID, q.Question)
		if q.Description != "" {
			fmt.Printf("  %s\n", q.Description)
		}
		for _, o := range q.Options {
			fmt.Printf("  - %s: %s\n", o.ID, o.Label)
		}
		fmt.Println()
	}
	return nil
}

func runQuizScore(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	if err := validateFormat(format); err != nil {
		return err
	}

	answersPath, _ := cmd.Flags().GetString("answers")
	answers, err := loadAnswers(answersPath)
	if err != nil {
		return err
	}

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	ranked := engine.ScoreQuiz(cat, answers)
	mismatches := engine.FindMismatches(cat, answers, ranked)

	type resultRow struct {
		Rank   int     `json:"rank"`
		ToolID string  `json:"tool_id"`
		Name   string  `json:"name"`
		Score  float64 `json:"score"`
	}
	rows := make([][]string, 0, len(ranked))
	jsonRows := make([]resultRow, 0, len(ranked))
	for i, rt := range ranked {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			rt.Tool.ID,
			rt.Tool.Name,
			fmt.Sprintf("%.1f", rt.Score),
		})
		jsonRows = append(jsonRows, resultRow{Rank: i + 1, ToolID: rt.Tool.ID, Name: rt.Tool.Name, Score: rt.Score})
	}

	if err := outputResults(outputData{
		Header: []string{"Rank", "ID", "Name", "Score"},
		Rows:   rows,
		JSON: map[string]any{
			"results":    jsonRows,
			"mismatches": mismatches,
		},
	}, format, outputPath); err != nil {
		return err
	}

	if format == "table" {
		printMismatches(mismatches)
	}

	if doExplain, _ := cmd.Flags().GetBool("explain"); doExplain {
		return runExplain(ctx, ranked, mismatches)
	}
	return nil
}

func loadAnswers(path string) (model.Answers, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "quiz: read answers %s", path)
	}
	var answers model.Answers
	if err := yaml.Unmarshal(raw, &answers); err != nil {
		return nil, eris.Wrapf(err, "quiz: parse answers %s", path)
	}
	return answers, nil
}

func printMismatches(mismatches []model.RequirementMismatch) {
	if len(mismatches) == 0 {
		return
	}
	fmt.Println("\nRequirement mismatches:")
	for _, m := range mismatches {
		fmt.Printf("  [%s] %s\n", m.Severity, m.Issue)
		for _, alt := range m.BetterMatches {
			fmt.Printf("      consider: %s\n", alt.Name)
		}
	}
}

func runExplain(ctx context.Context, ranked []model.RankedTool, mismatches []model.RequirementMismatch) error {
	if cfg.Anthropic.Key == "" {
		return eris.New("quiz: --explain requires an Anthropic API key (FATE_ANTHROPIC_KEY)")
	}

	e := explain.New(anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model, cfg.Anthropic.MaxTokens)
	narrative, err := e.Explain(ctx, ranked, mismatches)
	if err != nil {
		return err
	}

	fmt.Println("\n" + narrative)
	return nil
}
