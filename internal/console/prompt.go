// Package console reads one-shot numeric answers from an interactive terminal.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompts used by the interactive run.
const (
	PromptInitialPotential = "Enter an initial membrane potential (mV): "
	PromptInputCurrent     = "Enter the input current: "
)

// ErrInvalidInput is returned when an answer is missing or not a number.
var ErrInvalidInput = errors.New("invalid console input")

// Prompter writes prompts to Out and reads line answers from In.
type Prompter struct {
	out     io.Writer
	scanner *bufio.Scanner
}

// NewPrompter creates a Prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{out: out, scanner: bufio.NewScanner(in)}
}

// Float prints prompt and parses the next line as a float64. Surrounding
// whitespace is ignored; anything else that does not parse is an error.
func (p *Prompter) Float(prompt string) (float64, error) {
	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return 0, fmt.Errorf("write prompt: %w", err)
	}

	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return 0, fmt.Errorf("%w: read answer: %v", ErrInvalidInput, err)
		}
		return 0, fmt.Errorf("%w: no answer to %q", ErrInvalidInput, strings.TrimSpace(prompt))
	}

	answer := strings.TrimSpace(p.scanner.Text())
	v, err := strconv.ParseFloat(answer, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, answer)
	}
	return v, nil
}

// InitialConditions asks for the initial membrane potential and the input
// current, in that order.
func (p *Prompter) InitialConditions() (v0, current float64, err error) {
	v0, err = p.Float(PromptInitialPotential)
	if err != nil {
		return 0, 0, err
	}
	current, err = p.Float(PromptInputCurrent)
	if err != nil {
		return 0, 0, err
	}
	return v0, current, nil
}
