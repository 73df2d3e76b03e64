package api

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrPasswordMismatch is returned when a confirmed password entry does
// not match the first entry.
var ErrPasswordMismatch = errors.New("passwords do not match")

// passwordReader reads a password from the terminal without echo.
// Swapped out in tests.
var passwordReader = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

// ReadPassword prompts on stderr and reads a password without echoing it.
func ReadPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := passwordReader()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// ReadPasswordConfirmed reads the password twice and fails with
// ErrPasswordMismatch unless both entries agree. Used when storing a
// key, where a typo would seal it under an unknown password.
func ReadPasswordConfirmed(prompt, confirmPrompt string) (string, error) {
	first, err := ReadPassword(prompt)
	if err != nil {
		return "", err
	}
	second, err := ReadPassword(confirmPrompt)
	if err != nil {
		return "", err
	}
	if first != second {
		return "", ErrPasswordMismatch
	}
	return first, nil
}

// ReadLine prompts on stderr and reads one trimmed line from r.
func ReadLine(r io.Reader, prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(scanner.Text()), nil
}
