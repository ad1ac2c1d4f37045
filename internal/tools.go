package internal

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Terminal pairs a line reader with its writer. Every prompt on a connection
// must go through the same Terminal so buffered input is never dropped.
type Terminal struct {
	br *bufio.Reader
	w  io.Writer
}

func NewTerminal(rw io.ReadWriter) *Terminal {
	return &Terminal{
		br: bufio.NewReader(rw),
		w:  rw,
	}
}

func (t *Terminal) Write(p []byte) (int, error) {
	return t.w.Write(p)
}

// ReadLine returns the next line without its line ending.
func (t *Terminal) ReadLine() (string, error) {
	line, err := t.br.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

type promptValidator func(string) (bool, string)

type promptConfig struct {
	tries     int
	validator promptValidator
}

type promptOption func(*promptConfig)

func WithValidator(v promptValidator) promptOption {
	return func(cfg *promptConfig) {
		cfg.validator = v
	}
}

func WithMaxTries(i int) promptOption {
	return func(cfg *promptConfig) {
		cfg.tries = i
	}
}

func (t *Terminal) Prompt(prompt string, opts ...promptOption) (string, error) {
	config := &promptConfig{}
	for _, opt := range opts {
		opt(config)
	}

	tries := 0
	for {
		_, err := io.WriteString(t.w, prompt)
		if err != nil {
			return "", err
		}

		input, err := t.ReadLine()
		if err != nil {
			return "", err
		}
		input = strings.TrimSpace(input)

		if config.validator != nil {
			ok, msg := config.validator(input)
			if !ok {
				_, _ = io.WriteString(t.w, msg)

				tries++
				if config.tries > 0 && config.tries == tries {
					return "", fmt.Errorf("too many tries")
				}

				continue
			}
		}

		return input, nil
	}
}

func (t *Terminal) PromptYN(prompt string) (bool, error) {
	str, err := t.Prompt(prompt, WithValidator(
		func(str string) (bool, string) {
			switch strings.ToLower(str) {
			case "y", "yes", "n", "no":
				return true, ""
			default:
				return false, "enter 'yes' or 'no'\n"
			}
		},
	))
	if err != nil {
		return false, err
	}

	switch strings.ToLower(str) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
