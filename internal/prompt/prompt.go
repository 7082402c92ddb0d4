// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package prompt reads answers from an interactive terminal.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
	"github.com/vorlif/spreak"
)

// ErrInputClosed is returned once the input stream has no more lines.
var ErrInputClosed = errors.New("input stream closed")

type Prompt struct {
	input  io.Reader
	output io.Writer
	t      *spreak.Localizer
	rule   Rule

	once      sync.Once
	closeOnce sync.Once
	done      chan struct{}
	lines     chan string
	readErr   error
}

func New(input io.Reader, output io.Writer, t *spreak.Localizer, rule Rule) (*Prompt, error) {
	if input == nil {
		return nil, fmt.Errorf("input reader is required")
	}
	if output == nil {
		return nil, fmt.Errorf("output writer is required")
	}
	if t == nil {
		return nil, fmt.Errorf("localizer is required")
	}
	if rule == nil {
		rule = LegacyRule{}
	}
	return &Prompt{
		input:  input,
		output: output,
		t:      t,
		rule:   rule,
		lines:  make(chan string),
		done:   make(chan struct{}),
	}, nil
}

// ReadLine blocks until a line is available and returns it without surrounding whitespace.
// It returns early with the context error if ctx is done.
func (p *Prompt) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-p.done:
		return "", fmt.Errorf("failed to read line: %w", ErrInputClosed)
	default:
	}
	p.once.Do(func() { go p.scan() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			return "", fmt.Errorf("failed to read line: %w", p.readErr)
		}
		return strings.TrimSpace(line), nil
	}
}

// Coordinate reads lines until one parses as a number that satisfies the format rule.
func (p *Prompt) Coordinate(ctx context.Context) (float64, error) {
	for {
		input, err := p.ReadLine(ctx)
		if err != nil {
			return 0, err
		}
		value, err := parseNumber(input)
		if err != nil {
			p.Banner(p.t.Get("Invalid input. Please enter a valid number."))
			continue
		}
		if !p.rule.Accept(input, value) {
			p.Banner(p.rule.Hint(p.t)...)
			continue
		}
		return value, nil
	}
}

// Confirm reads lines until the answer is "y" or "n", ignoring case.
func (p *Prompt) Confirm(ctx context.Context) (bool, error) {
	for {
		input, err := p.ReadLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(input) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		default:
			p.Banner(p.t.Get("Invalid input. Please enter 'y' or 'n'."))
		}
	}
}

// Banner prints lines framed by rules as wide as the widest line.
func (p *Prompt) Banner(lines ...string) {
	width := 0
	for _, line := range lines {
		width = max(width, runewidth.StringWidth(line))
	}
	rule := strings.Repeat("=", width)
	_, _ = fmt.Fprintln(p.output, rule)
	for _, line := range lines {
		_, _ = fmt.Fprintln(p.output, line)
	}
	_, _ = fmt.Fprintln(p.output, rule)
}

// Println prints a single unframed line.
func (p *Prompt) Println(line string) {
	_, _ = fmt.Fprintln(p.output, line)
}

// Close stops the background reader. A reader blocked inside Read of the underlying
// input returns once that Read does.
func (p *Prompt) Close() {
	p.closeOnce.Do(func() { close(p.done) })
}

func (p *Prompt) scan() {
	defer close(p.lines)
	scanner := bufio.NewScanner(p.input)
	for scanner.Scan() {
		select {
		case p.lines <- scanner.Text():
		case <-p.done:
			p.readErr = ErrInputClosed
			return
		}
	}
	p.readErr = scanner.Err()
	if p.readErr == nil {
		p.readErr = ErrInputClosed
	}
}

// parseNumber parses a decimal floating point number. Hexadecimal notation is rejected.
func parseNumber(input string) (float64, error) {
	digits := strings.TrimLeft(input, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, fmt.Errorf("hexadecimal notation is not supported: %s", input)
	}
	return strconv.ParseFloat(input, 64)
}
