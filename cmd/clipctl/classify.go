package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ZinnunMalikov/clipsmart-main/internal/classifier"
	"github.com/ZinnunMalikov/clipsmart-main/internal/domain"
)

const maxCellRunes = 48

type classifiedSample struct {
	Text       string                      `json:"text"`
	Result     domain.ClassificationResult `json:"result"`
	Categories []domain.Category          `json:"categories"`
}

func newClassifyCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "classify [text...]",
		Short: "Classify text as link, date, math and address",
		Long: "Classify each argument. With no arguments every non-empty line of " +
			"standard input is classified.",
		RunE: func(cmd *cobra.Command, args []string) error {
			texts := args
			if len(texts) == 0 {
				var err error
				if texts, err = readLines(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			if len(texts) == 0 {
				return fmt.Errorf("nothing to classify")
			}

			samples := classifyAll(texts)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(samples)
			}
			renderTable(cmd.OutOrStdout(), samples)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return lines, nil
}

func classifyAll(texts []string) []classifiedSample {
	out := make([]classifiedSample, 0, len(texts))
	for _, t := range texts {
		res := classifier.Classify(t)
		out = append(out, classifiedSample{Text: t, Result: res, Categories: res.Categories()})
	}
	return out
}

func renderTable(w io.Writer, samples []classifiedSample) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := table.Row{"Text"}
	for _, c := range domain.AllCategories {
		header = append(header, strings.ToUpper(string(c)))
	}
	t.AppendHeader(header)

	for _, s := range samples {
		row := table.Row{cell(s.Text)}
		for _, c := range domain.AllCategories {
			row = append(row, mark(s.Result.Has(c)))
		}
		t.AppendRow(row)
	}
	t.Render()
}

func cell(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	if r := []rune(text); len(r) > maxCellRunes {
		return string(r[:maxCellRunes]) + "..."
	}
	return text
}

func mark(ok bool) string {
	if ok {
		return "yes"
	}
	return "-"
}
