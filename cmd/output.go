package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fatehq/fate-cli/internal/catalog"
)

// titler renders identifiers as display labels in table output.
var titler = cases.Title(language.English)

// loadCatalog builds the catalog from the configured dataset paths, falling
// back to the embedded copies.
func loadCatalog() (*catalog.Catalog, error) {
	return catalog.LoadFiles(cfg.Catalog.ToolsPath, cfg.Catalog.QuestionsPath)
}

// outputData carries one result set in both tabular and structured form so
// a command can render any of the three formats from it.
type outputData struct {
	Header []string
	Rows   [][]string
	JSON   any
}

func outputResults(data outputData, format, outputPath string) error {
	var w *os.File
	if outputPath != "" {
		var err error
		w, err = os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "output: create file %s", outputPath)
		}
		defer w.Close() //nolint:errcheck
	} else {
		w = os.Stdout
	}

	switch format {
	case "table":
		return writeTable(w, data.Header, data.Rows)
	case "csv":
		return writeCSV(w, data.Header, data.Rows)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(data.JSON), "output: encode JSON")
	default:
		return eris.Errorf("output: unsupported format %q", format)
	}
}

func writeTable(w *os.File, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	total := 0
	for i, h := range header {
		if _, err := fmt.Fprintf(w, "%-*s  ", widths[i], h); err != nil {
			return eris.Wrap(err, "output: write table header")
		}
		total += widths[i] + 2
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", total)); err != nil {
		return eris.Wrap(err, "output: write table separator")
	}

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if _, err := fmt.Fprintf(w, "%-*s  ", widths[i], cell); err != nil {
				return eris.Wrap(err, "output: write table row")
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(w *os.File, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	lower := make([]string, len(header))
	for i, h := range header {
		lower[i] = strings.ReplaceAll(strings.ToLower(h), " ", "_")
	}
	if err := cw.Write(lower); err != nil {
		return eris.Wrap(err, "output: write CSV header")
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "output: write CSV row")
		}
	}
	return nil
}

func validateFormat(format string) error {
	switch format {
	case "table", "csv", "json":
		return nil
	}
	return eris.Errorf("--format must be table, csv, or json (got %q)", format)
}
