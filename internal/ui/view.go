package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"checkreg/checkreg/internal/grid"
)

const (
	minColumnWidth = 8
	maxColumnWidth = 20

	// headerY is the screen row of the header labels, under the top border.
	headerY = 1
)

// headerLabel is the header text of col including its sort indicator.
func (m Model) headerLabel(col int) string {
	name := m.session.View().Columns[col].Name
	state := m.session.SortState()
	if !state.IsSorted() || state.Column != col {
		return name
	}
	if state.Direction == grid.SortAscending {
		return name + " ▲"
	}
	return name + " ▼"
}

// calculateColumnWidths sizes each column to its content, clamped. Room for
// a sort indicator is always reserved so toggling never shifts the layout.
func (m Model) calculateColumnWidths() []int {
	view := m.session.View()
	if view == nil {
		return []int{}
	}

	columnWidths := make([]int, len(view.Columns))
	for i, c := range view.Columns {
		columnWidths[i] = runewidth.StringWidth(c.Name) + 2
	}

	for _, row := range view.Rows {
		for i, v := range row {
			if w := runewidth.StringWidth(v.String()); w > columnWidths[i] {
				columnWidths[i] = w
			}
		}
	}

	for i := range columnWidths {
		columnWidths[i] = min(max(columnWidths[i], minColumnWidth), maxColumnWidth)
	}
	return columnWidths
}

func (m Model) columnWidth(col int) int {
	widths := m.calculateColumnWidths()
	if col < 0 || col >= len(widths) {
		return minColumnWidth
	}
	return widths[col]
}

func (m Model) calculateVisibleColumns() (int, int) {
	columnWidths := m.calculateColumnWidths()
	if len(columnWidths) == 0 {
		return 0, 0
	}

	// Left and right borders plus a safety margin.
	availableWidth := m.width - 2 - 4

	startCol := min(max(m.viewportX, 0), len(columnWidths)-1)

	currentWidth := 0
	endCol := startCol
	for i := startCol; i < len(columnWidths); i++ {
		// Content, one cell of padding each side, separator after the first.
		columnSpace := columnWidths[i] + 2
		if i > startCol {
			columnSpace++
		}
		if currentWidth+columnSpace > availableWidth {
			break
		}
		currentWidth += columnSpace
		endCol = i + 1
	}

	// Always show at least one column
	if endCol <= startCol {
		endCol = startCol + 1
	}
	return startCol, endCol
}

// headerColumnAt maps a screen position to the header it falls on.
func (m Model) headerColumnAt(x, y int) (int, bool) {
	if y != headerY || m.columnCount() == 0 {
		return -1, false
	}
	widths := m.calculateColumnWidths()
	startCol, endCol := m.calculateVisibleColumns()

	left := 1 // left border
	for i := startCol; i < endCol; i++ {
		right := left + widths[i] + 2
		if x >= left && x < right {
			return i, true
		}
		left = right + 1 // separator
	}
	return -1, false
}

func (m Model) View() string {
	if m.picker != nil {
		return "Select a CSV file\n\n" + m.picker.View() + "\nenter select • esc cancel"
	}

	styles := createTableStyles(m.renderer, m.typeColors, m.dimColors)

	var body string
	if m.columnCount() == 0 {
		body = "No data to display"
	} else {
		body = m.renderTable(styles)
	}

	return strings.Join([]string{body, m.renderStatus(styles), m.renderFooter(styles)}, "\n")
}

func (m Model) renderTable(styles styleConfig) string {
	view := m.session.View()
	widths := m.calculateColumnWidths()
	startCol, endCol := m.calculateVisibleColumns()

	startRow := m.viewportY
	endRow := min(startRow+m.maxRows(), len(view.Rows))

	headers := make([]string, 0, endCol-startCol)
	for col := startCol; col < endCol; col++ {
		if m.search != nil && m.search.column == col {
			headers = append(headers, m.search.input.View())
			continue
		}
		headers = append(headers, runewidth.Truncate(m.headerLabel(col), widths[col], "…"))
	}

	rows := make([][]string, 0, max(endRow-startRow, 0))
	for i := startRow; i < endRow; i++ {
		cells := make([]string, 0, endCol-startCol)
		for col := startCol; col < endCol; col++ {
			cells = append(cells, runewidth.Truncate(view.Rows[i][col].String(), widths[col], "…"))
		}
		rows = append(rows, cells)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(m.renderer.NewStyle().Foreground(lipgloss.Color("238"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			actualCol := startCol + col
			width := widths[actualCol] + 2

			if row == table.HeaderRow {
				if actualCol == m.cursorCol {
					return styles.activeHeader.Width(width)
				}
				return styles.headerStyle.Width(width)
			}

			actualRow := startRow + row
			if actualRow == m.cursorRow && actualCol == m.cursorCol {
				return styles.selectedStyle.Width(width)
			}

			kind := view.Columns[actualCol].Kind
			color := styles.typeColors[kind]
			if row%2 == 0 {
				color = styles.dimTypeColors[kind]
			}
			return styles.baseStyle.Foreground(color).Width(width)
		})

	return t.String()
}

// renderStatus is the two-part readout: row count, then what the view shows.
func (m Model) renderStatus(styles styleConfig) string {
	status := m.session.Status()
	detail := status.Detail
	if m.statusErr != "" {
		detail = "Error: " + m.statusErr
	}
	if detail == "" {
		return styles.statusRows.Render(status.Rows)
	}
	return styles.statusRows.Render(status.Rows) + styles.statusDetail.Render(detail)
}

func (m Model) renderFooter(styles styleConfig) string {
	switch {
	case m.errMsg != "":
		return styles.errorStyle.Render(m.errMsg + "\n\n(press any key)")
	case m.search != nil:
		return "FILTER - type to filter " + m.session.View().Columns[m.search.column].Name + ", enter/esc to close"
	case m.hoverHeader:
		return styles.hintStyle.Render(headerHint)
	}
	return m.help.View(m.keys)
}
