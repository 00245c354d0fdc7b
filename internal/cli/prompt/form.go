package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/thoreinstein/solvercfg/internal/errors"
	"github.com/thoreinstein/solvercfg/internal/presenter"
	"github.com/thoreinstein/solvercfg/internal/session"
)

// Form commands.
const (
	cmdOK     = ":ok"
	cmdCancel = ":cancel"
	cmdShow   = ":show"
	cmdHelp   = ":help"
)

// Form is a line-oriented presenter. It prints every tab and then reads
// "name=value" or "category.name=value" lines until the operator confirms
// or cancels. EOF cancels.
type Form struct {
	reader io.Reader
	writer io.Writer
}

var _ presenter.Presenter = (*Form)(nil)

// NewForm creates a Form using stdin and stdout.
func NewForm() *Form {
	return &Form{reader: os.Stdin, writer: os.Stdout}
}

// NewFormWithIO creates a Form with custom reader and writer for testing.
func NewFormWithIO(r io.Reader, w io.Writer) *Form {
	return &Form{reader: r, writer: w}
}

// Present implements presenter.Presenter.
func (f *Form) Present(ctx context.Context, tabs []session.Tab, actions presenter.Actions) error {
	f.render(tabs)
	f.usage()

	// The reader stops at the next line once Present has returned.
	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		scanner := bufio.NewScanner(f.reader)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(f.writer, "> ")
		var line string
		select {
		case <-ctx.Done():
			actions.Cancel()
			return ctx.Err()
		case err := <-readErr:
			fmt.Fprintln(f.writer)
			actions.Cancel()
			if err != nil {
				return errors.Wrap(err, "reading input")
			}
			return nil
		case line = <-lines:
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case cmdOK:
			if err := actions.Confirm(); err != nil {
				fmt.Fprintf(f.writer, "commit failed: %v\n", err)
				return nil
			}
			fmt.Fprintln(f.writer, "applied")
			return nil
		case cmdCancel:
			actions.Cancel()
			fmt.Fprintln(f.writer, "discarded")
			return nil
		case cmdShow:
			f.render(tabs)
			continue
		case cmdHelp:
			f.usage()
			continue
		}

		if err := f.assign(tabs, line); err != nil {
			fmt.Fprintf(f.writer, "error: %v\n", err)
		}
	}
}

// assign applies one "ref=value" line.
func (f *Form) assign(tabs []session.Tab, line string) error {
	ref, text, ok := strings.Cut(line, "=")
	if !ok {
		return errors.Newf("expected name=value, got %q", line)
	}
	ref = strings.TrimSpace(ref)

	field, err := lookup(tabs, ref)
	if err != nil {
		return err
	}
	if err := field.Cell.SetText(text); err != nil {
		return err
	}
	fmt.Fprintf(f.writer, "%s = %s\n", field.Cell.Ref(), field.Cell.Text())
	return nil
}

// lookup finds a field by "category.name" or, when unambiguous, by bare
// name.
func lookup(tabs []session.Tab, ref string) (session.Field, error) {
	var matches []session.Field
	for _, tab := range tabs {
		for _, field := range tab.Fields {
			if field.Cell.Ref() == ref {
				return field, nil
			}
			if field.Label == ref {
				matches = append(matches, field)
			}
		}
	}
	switch len(matches) {
	case 0:
		return session.Field{}, errors.Wrapf(errors.ErrUnknownOption, "%q", ref)
	case 1:
		return matches[0], nil
	default:
		refs := make([]string, len(matches))
		for i, m := range matches {
			refs[i] = m.Cell.Ref()
		}
		return session.Field{}, errors.Newf("%q is ambiguous: %s", ref, strings.Join(refs, ", "))
	}
}

func (f *Form) render(tabs []session.Tab) {
	for _, tab := range tabs {
		fmt.Fprintf(f.writer, "[%s]\n", tab.Title)
		tw := tabwriter.NewWriter(f.writer, 0, 4, 2, ' ', 0)
		for _, field := range tab.Fields {
			fmt.Fprintf(tw, "  %s\t= %s\t%s\n", field.Label, field.Cell.Text(), field.HelpText)
		}
		_ = tw.Flush()
	}
}

func (f *Form) usage() {
	fmt.Fprintf(f.writer, "Enter name=value to change an option. %s applies, %s discards, %s reprints.\n",
		cmdOK, cmdCancel, cmdShow)
}
