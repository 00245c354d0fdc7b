// Package tui is a full-screen terminal presenter built on tview.
//
// Each category gets a page holding a form: numeric options as input
// fields, booleans as checkboxes, and the help text to the right of every
// field. Ctrl-N/F3 and Ctrl-P/F2 cycle tabs, Ctrl-S confirms, Esc cancels.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/internal/option"
	"github.com/thoreinstein/solvercfg/internal/presenter"
	"github.com/thoreinstein/solvercfg/internal/session"
)

const fieldWidth = 20

// Presenter runs an editing episode in a tview application.
type Presenter struct {
	screen tcell.Screen
}

var _ presenter.Presenter = (*Presenter)(nil)

// Option configures a Presenter.
type Option func(*Presenter)

// WithScreen draws on screen instead of the process terminal.
func WithScreen(screen tcell.Screen) Option {
	return func(p *Presenter) { p.screen = screen }
}

// New creates a terminal presenter.
func New(opts ...Option) *Presenter {
	p := &Presenter{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Present implements presenter.Presenter.
func (p *Presenter) Present(ctx context.Context, tabs []session.Tab, actions presenter.Actions) error {
	app := tview.NewApplication()
	if p.screen != nil {
		app.SetScreen(p.screen)
	}

	v := newView(tabs, actions)
	v.stop = app.Stop
	v.focus = func(item tview.Primitive) { app.SetFocus(item) }
	app.SetInputCapture(v.handleKey)

	stopWatch := context.AfterFunc(ctx, func() {
		app.QueueUpdate(v.cancel)
	})
	defer stopWatch()

	if err := app.SetRoot(v.root, true).SetFocus(v.forms[0]).EnableMouse(true).Run(); err != nil {
		return errors.Wrap(err, "running terminal UI")
	}
	if err := ctx.Err(); err != nil && !v.confirmed {
		return err
	}
	return nil
}

// view holds the widgets and editing state of one episode. All methods run
// on the tview event goroutine.
type view struct {
	actions presenter.Actions

	root   *tview.Flex
	pages  *tview.Pages
	bar    *tview.TextView
	status *tview.TextView
	forms  []*tview.Form

	current   int
	invalid   map[*session.Cell]string
	done      bool
	confirmed bool

	stop  func()
	focus func(tview.Primitive)
}

func newView(tabs []session.Tab, actions presenter.Actions) *view {
	v := &view{
		actions: actions,
		pages:   tview.NewPages(),
		bar:     tview.NewTextView().SetDynamicColors(true).SetRegions(true).SetWrap(false),
		status:  tview.NewTextView().SetDynamicColors(true),
		invalid: make(map[*session.Cell]string),
	}

	if len(tabs) == 0 {
		tabs = []session.Tab{{Title: "(no options)"}}
	}
	for i, tab := range tabs {
		name := pageName(i)
		form, page := v.buildPage(tab)
		v.forms = append(v.forms, form)
		v.pages.AddPage(name, page, true, i == 0)
		fmt.Fprintf(v.bar, `["%s"] %s [""] `, name, tview.Escape(tab.Title))
	}
	v.bar.Highlight(pageName(0))
	v.setStatus("")

	v.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.bar, 1, 0, false).
		AddItem(v.pages, 0, 1, true).
		AddItem(v.status, 1, 0, false)
	return v
}

// buildPage lays a form next to a column of help lines, one per field.
func (v *view) buildPage(tab session.Tab) (*tview.Form, tview.Primitive) {
	form := tview.NewForm().SetItemPadding(0)
	help := tview.NewTextView().SetWrap(false)
	help.SetBorderPadding(1, 1, 1, 1)

	labelWidth := 0
	var lines []string
	for _, field := range tab.Fields {
		labelWidth = max(labelWidth, len(field.Label))
		form.AddFormItem(v.item(field))
		lines = append(lines, field.HelpText)
	}
	help.SetText(strings.Join(lines, "\n"))

	form.AddButton("OK", v.confirm).AddButton("Cancel", v.cancel)
	form.SetBorder(true).SetTitle(" " + tab.Title + " ")

	page := tview.NewFlex().
		AddItem(form, labelWidth+fieldWidth+6, 0, true).
		AddItem(help, 0, 1, false)
	return form, page
}

// item builds the form widget for one field, dispatching on its type tag.
func (v *view) item(field session.Field) tview.FormItem {
	c := field.Cell
	switch c.Type() {
	case option.TypeBool:
		checked, _ := c.Get().Bool()
		return tview.NewCheckbox().
			SetLabel(field.Label).
			SetChecked(checked).
			SetChangedFunc(func(checked bool) { v.onCheck(c, checked) })
	case option.TypeInt:
		return v.input(field, tview.InputFieldInteger)
	default:
		return v.input(field, tview.InputFieldFloat)
	}
}

func (v *view) input(field session.Field, accept func(string, rune) bool) *tview.InputField {
	c := field.Cell
	return tview.NewInputField().
		SetLabel(field.Label).
		SetText(c.Text()).
		SetFieldWidth(fieldWidth).
		SetAcceptanceFunc(accept).
		SetChangedFunc(func(text string) { v.onText(c, text) })
}

func (v *view) onText(c *session.Cell, text string) {
	if v.done {
		return
	}
	if err := c.SetText(text); err != nil {
		v.invalid[c] = text
		v.setStatus(fmt.Sprintf("[red]%s: %q is not a valid %s", c.Ref(), text, c.DeclaredType()))
		return
	}
	delete(v.invalid, c)
	v.setStatus("")
}

func (v *view) onCheck(c *session.Cell, checked bool) {
	if v.done {
		return
	}
	_ = c.Set(option.BoolValue(checked))
}

// confirm commits unless a field still holds text that does not coerce.
func (v *view) confirm() {
	if v.done {
		return
	}
	if len(v.invalid) > 0 {
		refs := make([]string, 0, len(v.invalid))
		for c := range v.invalid {
			refs = append(refs, c.Ref())
		}
		v.setStatus("[red]fix invalid fields first: " + strings.Join(refs, ", "))
		return
	}
	v.done = true
	v.confirmed = v.actions.Confirm() == nil
	v.halt()
}

func (v *view) cancel() {
	if v.done {
		return
	}
	v.done = true
	v.actions.Cancel()
	v.halt()
}

func (v *view) halt() {
	if v.stop != nil {
		v.stop()
	}
}

func (v *view) switchTab(delta int) {
	n := len(v.forms)
	v.current = ((v.current+delta)%n + n) % n
	name := pageName(v.current)
	v.pages.SwitchToPage(name)
	v.bar.Highlight(name)
	if v.focus != nil {
		v.focus(v.forms[v.current])
	}
}

func (v *view) handleKey(ev *tcell.EventKey) *tcell.EventKey {
	switch ev.Key() {
	case tcell.KeyCtrlN, tcell.KeyF3:
		v.switchTab(1)
	case tcell.KeyCtrlP, tcell.KeyF2:
		v.switchTab(-1)
	case tcell.KeyCtrlS:
		v.confirm()
	case tcell.KeyEscape:
		v.cancel()
	default:
		return ev
	}
	return nil
}

func (v *view) setStatus(msg string) {
	if msg == "" {
		msg = "[grey]Ctrl-N/Ctrl-P switch tabs  Ctrl-S apply  Esc discard"
	}
	v.status.SetText(msg)
}

func pageName(i int) string { return strconv.Itoa(i) }
