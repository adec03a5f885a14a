// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/buildmatrix/cmd/ci-matrix/cli"
	"github.com/bureau-foundation/buildmatrix/lib/matrix"
	"github.com/bureau-foundation/buildmatrix/lib/runner"
)

type summaryParams struct {
	InputParams
	SelectionParams
	NoColor bool `json:"-" flag:"no-color" desc:"disable colored output"`
}

func summaryCommand(stdout, stderr io.Writer) *cli.Command {
	var params summaryParams

	return &cli.Command{
		Name:    "summary",
		Summary: "Show how many jobs each matrix would run",
		Description: `Generate the matrices with the same flags as ci-matrix itself and
print the number of entries per matrix, shard and platform instead
of the document.`,
		Examples: []cli.Example{
			{
				Description: "Size of a pull request's build with three shards",
				Command:     "ci-matrix summary --max-shards 3 --labels 'platform:linux,build:pgo'",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("summary", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			logger, err := params.Logger(stderr)
			if err != nil {
				return err
			}
			document, err := generateDocument(&params.InputParams, &params.SelectionParams, logger)
			if err != nil {
				return err
			}
			renderer := newRenderer(stdout, params.NoColor)
			_, err = io.WriteString(stdout, renderSummary(renderer, summarize(document))+"\n")
			return err
		},
	}
}

// summaryRow counts the entries of one matrix shard on one platform.
type summaryRow struct {
	matrix   matrix.Type
	shard    string
	platform runner.Platform
	entries  int
}

func summarize(document *matrix.Document) []summaryRow {
	var rows []summaryRow

	if document.PythonBuild != nil {
		if document.PythonBuild.IsSharded() {
			for index, shard := range document.PythonBuild.Shards() {
				rows = append(rows, countByPlatform(matrix.TypePythonBuild, strconv.Itoa(index), shard,
					func(entry matrix.PythonBuildEntry) runner.Platform { return entry.Platform })...)
			}
		} else {
			rows = append(rows, countByPlatform(matrix.TypePythonBuild, "-", document.PythonBuild.Entries(),
				func(entry matrix.PythonBuildEntry) runner.Platform { return entry.Platform })...)
		}
	}
	if document.DockerBuild != nil {
		rows = append(rows, countByPlatform(matrix.TypeDockerBuild, "-", document.DockerBuild.Entries(),
			func(matrix.DockerBuildEntry) runner.Platform { return runner.Linux })...)
	}
	if document.CrateBuild != nil {
		rows = append(rows, countByPlatform(matrix.TypeCrateBuild, "-", document.CrateBuild.Entries(),
			func(entry matrix.CrateBuildEntry) runner.Platform { return entry.Platform })...)
	}
	return rows
}

// countByPlatform returns one row per platform in first-seen order. An
// empty shard still gets a row so every shard is listed.
func countByPlatform[T any](matrixType matrix.Type, shard string, entries []T, platformOf func(T) runner.Platform) []summaryRow {
	if len(entries) == 0 {
		return []summaryRow{{matrix: matrixType, shard: shard, platform: "-", entries: 0}}
	}
	var rows []summaryRow
	index := make(map[runner.Platform]int)
	for _, entry := range entries {
		platform := platformOf(entry)
		position, seen := index[platform]
		if !seen {
			position = len(rows)
			index[platform] = position
			rows = append(rows, summaryRow{matrix: matrixType, shard: shard, platform: platform})
		}
		rows[position].entries++
	}
	return rows
}

// newRenderer returns a lipgloss renderer for w. Color is disabled by
// --no-color, by NO_COLOR, and when w is not a terminal.
func newRenderer(w io.Writer, noColor bool) *lipgloss.Renderer {
	profile := termenv.ANSI256
	if noColor || os.Getenv("NO_COLOR") != "" || !cli.IsTerminal(w) {
		profile = termenv.Ascii
	}
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	// Renderer.ColorProfile re-detects from the writer unless set.
	renderer.SetColorProfile(profile)
	return renderer
}

func renderSummary(renderer *lipgloss.Renderer, rows []summaryRow) string {
	headerStyle := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle := renderer.NewStyle().Padding(0, 1)
	countStyle := cellStyle.Align(lipgloss.Right)
	emptyStyle := cellStyle.Foreground(lipgloss.Color("8"))

	summaryTable := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(renderer.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("MATRIX", "SHARD", "PLATFORM", "ENTRIES").
		StyleFunc(func(row, column int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row >= 0 && row < len(rows) && rows[row].entries == 0:
				return emptyStyle
			case column == 3:
				return countStyle
			}
			return cellStyle
		})

	totals := make(map[matrix.Type]int)
	var order []matrix.Type
	for _, row := range rows {
		if _, seen := totals[row.matrix]; !seen {
			order = append(order, row.matrix)
		}
		totals[row.matrix] += row.entries
		summaryTable.Row(string(row.matrix), row.shard, string(row.platform), strconv.Itoa(row.entries))
	}

	output := summaryTable.Render()
	for _, matrixType := range order {
		output += fmt.Sprintf("\n%s: %d entries", matrixType, totals[matrixType])
	}
	return output
}
