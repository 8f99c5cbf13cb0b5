package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestTerminalSelect(t *testing.T) {
	t.Run("valid choice", func(t *testing.T) {
		var out bytes.Buffer
		term := &Terminal{In: strings.NewReader("2\n"), Out: &out}

		got, err := term.Select("Pick a branch", []string{"main", "develop"})
		if err != nil {
			t.Fatalf("Select: %v", err)
		}
		if got != 1 {
			t.Errorf("got index %d, want 1", got)
		}
		if !strings.Contains(out.String(), "1) main") {
			t.Errorf("options not listed:\n%s", out.String())
		}
	})

	t.Run("reprompts on invalid input", func(t *testing.T) {
		var out bytes.Buffer
		term := &Terminal{In: strings.NewReader("nope\n9\n1\n"), Out: &out}

		got, err := term.Select("Pick", []string{"a", "b"})
		if err != nil {
			t.Fatalf("Select: %v", err)
		}
		if got != 0 {
			t.Errorf("got index %d, want 0", got)
		}
		if !strings.Contains(out.String(), "listed number") {
			t.Errorf("no reprompt message:\n%s", out.String())
		}
	})

	t.Run("no options", func(t *testing.T) {
		term := &Terminal{In: strings.NewReader(""), Out: &bytes.Buffer{}}
		if _, err := term.Select("Pick", nil); !errors.Is(err, ErrNoOptions) {
			t.Errorf("err = %v, want ErrNoOptions", err)
		}
	})

	t.Run("input closed", func(t *testing.T) {
		term := &Terminal{In: strings.NewReader("bogus\n"), Out: &bytes.Buffer{}}
		if _, err := term.Select("Pick", []string{"a"}); !errors.Is(err, ErrInputClosed) {
			t.Errorf("err = %v, want ErrInputClosed", err)
		}
	})
}
