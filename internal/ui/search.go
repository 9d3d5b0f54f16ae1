package ui

import "github.com/charmbracelet/bubbles/textinput"

// headerSearch is the inline filter box over one column header. A fresh one
// is created for every open and dropped when the box closes.
type headerSearch struct {
	column int
	input  textinput.Model
}

func newHeaderSearch(column, width int) *headerSearch {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "filter"
	// One cell is left for the cursor.
	in.Width = max(width-1, 1)
	in.Focus()
	return &headerSearch{column: column, input: in}
}
