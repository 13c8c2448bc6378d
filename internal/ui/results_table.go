package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Alignment represents column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

// ColumnDef defines a column in a ResultsTable.
type ColumnDef struct {
	Name       string         // Header name (used for width lookup, not displayed)
	WidthRatio float64        // Proportion of available width (0.0-1.0), 0 means fixed width
	MinWidth   int            // Minimum width in characters
	MaxWidth   int            // Maximum width (0 = no limit)
	Align      Alignment      // Text alignment
	Style      lipgloss.Style // Style to apply to cells in this column
}

// ResultRow represents a single row in the results table.
type ResultRow struct {
	Num   int      // Row number (1-indexed)
	Cells []string // Cell values for each column
}

// ResultsTable renders model listings with width-aware columns.
type ResultsTable struct {
	display *DisplayContext
	columns []ColumnDef
	rows    []ResultRow
}

// Standard column definitions for model listings.
var (
	// ColNum is the row number column (fixed width, right-aligned, muted).
	ColNum = ColumnDef{
		Name:     "num",
		MinWidth: 4,
		MaxWidth: 6,
		Align:    AlignRight,
		Style:    Muted,
	}

	// ColModel is the model id column (flexible width, accent).
	ColModel = ColumnDef{
		Name:       "model",
		WidthRatio: 0.45,
		MinWidth:   24,
		MaxWidth:   60,
		Align:      AlignLeft,
		Style:      Accent,
	}

	// ColTask is the pipeline tag / library column.
	ColTask = ColumnDef{
		Name:       "task",
		WidthRatio: 0.30,
		MinWidth:   16,
		MaxWidth:   40,
		Align:      AlignLeft,
	}

	// ColStats is the downloads/likes column.
	ColStats = ColumnDef{
		Name:       "stats",
		WidthRatio: 0.25,
		MinWidth:   14,
		MaxWidth:   28,
		Align:      AlignLeft,
		Style:      Muted,
	}
)

// ModelListLayout is used for search results: [num, model, task, stats]
var ModelListLayout = []ColumnDef{ColNum, ColModel, ColTask, ColStats}

// NewResultsTable creates a new ResultsTable with the given display context and column layout.
func NewResultsTable(display *DisplayContext, columns []ColumnDef) *ResultsTable {
	return &ResultsTable{
		display: display,
		columns: columns,
		rows:    make([]ResultRow, 0),
	}
}

// AddRow adds a row to the table.
func (t *ResultsTable) AddRow(row ResultRow) {
	t.rows = append(t.rows, row)
}

// ContentWidth returns the calculated width for a specific column by name.
// Callers can truncate cell content to the actual available width.
func (t *ResultsTable) ContentWidth(columnName string) int {
	widths := t.calculateWidths()
	for i, col := range t.columns {
		if col.Name == columnName {
			return widths[i]
		}
	}
	return 60 // fallback
}

// calculateWidths computes column widths based on terminal size and column definitions.
func (t *ResultsTable) calculateWidths() []int {
	widths := make([]int, len(t.columns))

	// First pass: calculate fixed widths and total ratio
	var totalRatio float64
	var fixedWidth int
	const columnPadding = 2 // padding between columns

	for i, col := range t.columns {
		if col.WidthRatio == 0 {
			widths[i] = col.MinWidth
			if col.MaxWidth > 0 && widths[i] > col.MaxWidth {
				widths[i] = col.MaxWidth
			}
			fixedWidth += widths[i]
		} else {
			totalRatio += col.WidthRatio
		}
	}

	// Calculate available space for flexible columns
	totalPadding := (len(t.columns) - 1) * columnPadding
	leftMargin := 2 // indent for aesthetic
	available := t.display.TermWidth - fixedWidth - totalPadding - leftMargin

	if available < 0 {
		available = 0
	}

	// Second pass: distribute available space by ratio
	for i, col := range t.columns {
		if col.WidthRatio > 0 {
			ratio := col.WidthRatio / totalRatio
			width := int(float64(available) * ratio)

			if width < col.MinWidth {
				width = col.MinWidth
			}
			if col.MaxWidth > 0 && width > col.MaxWidth {
				width = col.MaxWidth
			}

			widths[i] = width
		}
	}

	return widths
}

// Render generates the table output as a string.
func (t *ResultsTable) Render() string {
	if len(t.rows) == 0 {
		return ""
	}

	widths := t.calculateWidths()

	tableRows := make([][]string, len(t.rows))
	for i, row := range t.rows {
		tableRow := make([]string, len(t.columns))
		for j := range t.columns {
			if j < len(row.Cells) {
				tableRow[j] = row.Cells[j]
			}
		}
		tableRows[i] = tableRow
	}

	tbl := table.New().
		Border(lipgloss.Border{
			Top:    "─",
			Bottom: "─",
			Left:   "",
			Right:  "",
			Middle: "─",
		}).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderRow(true).
		BorderColumn(false).
		BorderStyle(Muted).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col >= len(t.columns) {
				return lipgloss.NewStyle()
			}

			colDef := t.columns[col]
			style := colDef.Style
			if style.Value() == "" {
				style = lipgloss.NewStyle()
			}

			style = style.Width(widths[col])

			switch colDef.Align {
			case AlignRight:
				style = style.Align(lipgloss.Right)
			case AlignCenter:
				style = style.Align(lipgloss.Center)
			default:
				style = style.Align(lipgloss.Left)
			}

			// Add right padding except for last column
			if col < len(t.columns)-1 {
				style = style.PaddingRight(2)
			}

			return style
		}).
		Rows(tableRows...)

	return tbl.Render()
}

// TruncateWithEllipsis truncates a string to maxLen, adding ellipsis if needed.
// It tries to break at word boundaries.
func TruncateWithEllipsis(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}

	truncated := s[:maxLen-3]
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > maxLen/2 {
		truncated = truncated[:lastSpace]
	}
	return truncated + "..."
}

// FormatRowNum formats a row number with consistent width.
func FormatRowNum(num, maxNum int) string {
	width := len(fmt.Sprintf("%d", maxNum))
	if width < 2 {
		width = 2
	}
	return fmt.Sprintf("%*d", width, num)
}
