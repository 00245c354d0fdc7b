package session

// Field is one labelled cell inside a Tab.
type Field struct {
	Label    string
	Cell     *Cell
	HelpText string
}

// Tab groups the fields of one category.
type Tab struct {
	Title  string
	Fields []Field
}

// HelpText returns the help shown next to an option: its help text, if
// any, followed by a "(type: T)" annotation.
func HelpText(help, declaredType string) string {
	annotation := "(type: " + declaredType + ")"
	if help == "" {
		return annotation
	}
	return help + " " + annotation
}

// Tabs describes the session for a presenter: one tab per category in
// registration order, one field per option in registration order.
func (s *Session) Tabs() []Tab {
	var tabs []Tab
	pos := make(map[string]int)
	for _, c := range s.cells {
		i, ok := pos[c.category]
		if !ok {
			i = len(tabs)
			pos[c.category] = i
			tabs = append(tabs, Tab{Title: c.category})
		}
		tabs[i].Fields = append(tabs[i].Fields, Field{
			Label:    c.name,
			Cell:     c,
			HelpText: HelpText(c.help, c.declared),
		})
	}
	return tabs
}
