package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/fatehq/fate-cli/internal/catalog"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Strictly validate the dataset files",
	Long: `Validates every tool and question record and reports all failures,
including stale quiz weight references. Unlike normal loading, which drops
bad entries and keeps going, validate exits non-zero on any problem. Run it
before committing dataset edits.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	errs := catalog.Lint(cfg.Catalog.ToolsPath, cfg.Catalog.QuestionsPath)
	if len(errs) == 0 {
		fmt.Println("Dataset is valid.")
		return nil
	}

	for _, err := range errs {
		fmt.Printf("  - %v\n", err)
	}
	return eris.Errorf("validate: %d problem(s) found", len(errs))
}
