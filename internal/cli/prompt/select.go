// Package prompt provides interactive line-oriented prompts: a numbered
// selector, a yes/no confirmation and a tabbed form presenter for editing
// sessions.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/thoreinstein/solvercfg/internal/errors"
)

// Sentinel errors for selection.
var (
	ErrNoChoices          = errors.New("no choices to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Selector handles interactive selection prompts.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// Select prompts the user to choose one of choices and returns its index.
//
// Returns:
//   - ErrNoChoices if the list is empty
//   - 0 if only one choice exists (auto-selects without prompting)
//   - The selected index based on user input
//   - ErrInvalidSelection if the selection is out of range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) Select(query string, choices []string) (int, error) {
	if len(choices) == 0 {
		return 0, ErrNoChoices
	}

	if len(choices) == 1 {
		return 0, nil
	}

	fmt.Fprintf(s.writer, "Several options match %q:\n", query)
	for i, c := range choices {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, c)
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, ErrSelectionCancelled
		}
		return 0, errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)

	// Default to first option if empty
	if input == "" {
		return 0, nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}

	// 1-indexed
	if selection < 1 || selection > len(choices) {
		return 0, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(choices))
	}

	return selection - 1, nil
}

// Confirm asks a yes/no question. Anything but y/yes counts as no, and EOF
// cancels.
func (s *Selector) Confirm(question string) (bool, error) {
	fmt.Fprintf(s.writer, "%s [y/N]: ", question)

	input, err := bufio.NewReader(s.reader).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && input != "") {
		if errors.Is(err, io.EOF) {
			return false, ErrSelectionCancelled
		}
		return false, errors.Wrap(err, "reading answer")
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Ask prompts for a line of text. An empty answer returns def, and EOF
// with no input cancels.
func (s *Selector) Ask(question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(s.writer, "%s [%s]: ", question, def)
	} else {
		fmt.Fprintf(s.writer, "%s: ", question)
	}

	input, err := bufio.NewReader(s.reader).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && input != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrSelectionCancelled
		}
		return "", errors.Wrap(err, "reading answer")
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return def, nil
	}
	return input, nil
}
