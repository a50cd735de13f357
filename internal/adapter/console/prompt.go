package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/simaogato/savings-backend/internal/domain"
)

// Prompter reads answers line by line. Empty or malformed answers fall back
// to the documented default instead of failing.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter reading from in and writing prompts to out
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Line prints prompt and returns the trimmed answer.
// io.EOF is returned only when the input ends before any answer.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Float prompts for a number, returning def on empty or malformed input
func (p *Prompter) Float(prompt string, def float64) (float64, error) {
	line, err := p.Line(prompt)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(line, ",", ""), 64)
	if err != nil {
		return def, nil
	}
	return v, nil
}

// Int prompts for a whole number, returning def on empty or malformed input
func (p *Prompter) Int(prompt string, def int) (int, error) {
	line, err := p.Line(prompt)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(line)
	if err != nil {
		return def, nil
	}
	return v, nil
}

// Frequency prompts for a compounding frequency menu choice, defaulting to Daily
func (p *Prompter) Frequency() (domain.CompoundFrequency, error) {
	line, err := p.Line("Compound Frequency [1=Daily (default), 2=Monthly, 3=Yearly]: ")
	if err != nil {
		return 0, err
	}
	return domain.ParseCompoundFrequency(line), nil
}

// Key prompts for a single-character answer and returns its first rune, or 0 when empty
func (p *Prompter) Key(prompt string) (rune, error) {
	line, err := p.Line(prompt)
	if err != nil {
		return 0, err
	}
	for _, r := range line {
		return r, nil
	}
	return 0, nil
}
