package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Selection errors.
var (
	// ErrNoOptions indicates there was nothing to choose from.
	ErrNoOptions = errors.New("no options to select from")

	// ErrInputClosed indicates input ended before a valid choice was made.
	ErrInputClosed = errors.New("input closed before a selection was made")
)

// Selector asks the user to pick one option. Implementations return the
// index of the chosen option.
type Selector interface {
	Select(message string, options []string) (int, error)
}

// Terminal is a Selector that prints a numbered list and reads the choice
// from a line of input.
type Terminal struct {
	In  io.Reader
	Out io.Writer
}

// NewTerminal returns a Terminal wired to stdin and stdout.
func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stdout}
}

// Select prints message and the numbered options, then reads lines until a
// valid 1-based choice arrives. Invalid input reprompts.
func (t *Terminal) Select(message string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, ErrNoOptions
	}

	fmt.Fprintln(t.Out, message)
	for i, option := range options {
		fmt.Fprintf(t.Out, "  %d) %s\n", i+1, option)
	}

	scanner := bufio.NewScanner(t.In)
	for {
		fmt.Fprintf(t.Out, "Choice [1-%d]: ", len(options))
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, fmt.Errorf("read selection: %w", err)
			}
			return 0, ErrInputClosed
		}

		choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || choice < 1 || choice > len(options) {
			fmt.Fprintln(t.Out, "Please enter a listed number.")
			continue
		}
		return choice - 1, nil
	}
}
