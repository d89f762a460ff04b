package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sceneforge/sceneport/pkg/export"
)

// formatsCommand creates the formats command listing supported formats.
func (c *CLI) formatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported export formats",
		Long: `List the supported export formats.

Shows each format's file extension, MIME type, and whether the payload is
binary or text.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printFormatsTable()
			return nil
		},
	}
}

// printFormatsTable renders the format descriptor table.
func printFormatsTable() {
	var rows [][]string
	for _, f := range export.AllFormats() {
		encoding := "text"
		if f.Binary() {
			encoding = "binary"
		}
		rows = append(rows, []string{string(f), f.Extension(), f.ContentType(), encoding})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Format", "Extension", "Content type", "Encoding").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleHighlight
			}
			return StyleValue
		})

	fmt.Println(t)
}
