// Package terminal is the line-oriented console the interactive session runs on.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"
)

// clearSequence moves the cursor home and clears the screen.
const clearSequence = "\033[H\033[2J"

// ErrClosed is returned by Ask and Confirm after Close.
var ErrClosed = errors.New("console closed")

// Console reads answers from in and writes everything else to out.
// Reads happen on a background goroutine so a blocked read never outlives
// the caller's context.
type Console struct {
	in  *bufio.Reader
	out io.Writer

	once     sync.Once
	lines    chan string
	err      error // set before lines is closed
	finished chan struct{}

	closeOnce sync.Once
	done      chan struct{}
}

// New creates a console over the given streams.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:       bufio.NewReader(in),
		out:      out,
		finished: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Close stops the background reader once it finishes its current read.
// The underlying reader is not closed.
func (c *Console) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// Ask prints "label: " and returns the next input line without its line ending.
// It returns io.EOF once input is exhausted.
func (c *Console) Ask(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintf(c.out, "%s: ", strings.TrimRight(label, ": "))
	return c.readLine(ctx)
}

// Confirm asks a yes/no question until it gets y, yes, n, or no.
func (c *Console) Confirm(ctx context.Context, label string) (bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		fmt.Fprintf(c.out, "%s [y/n]: ", label)
		line, err := c.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(c.out, "Please enter Y or N")
	}
}

// Println writes a line.
func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

// Printf writes formatted text.
func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

// Clear clears the screen.
func (c *Console) Clear() {
	io.WriteString(c.out, clearSequence)
}

// Table writes a titled table with " | "-separated columns. Rows are aligned
// among themselves; the header line is not padded to them, so a single-digit
// ID column renders as "1 | ...".
func (c *Console) Table(title string, headers []string, rows [][]string) {
	if title != "" {
		fmt.Fprintln(c.out, title)
	}
	header := strings.Join(headers, " | ")
	fmt.Fprintln(c.out, header)
	fmt.Fprintln(c.out, strings.Repeat("-", len(header)))

	tw := tabwriter.NewWriter(c.out, 0, 0, 1, ' ', 0)
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t| "))
	}
	tw.Flush()
}

func (c *Console) readLine(ctx context.Context) (string, error) {
	c.once.Do(func() {
		c.lines = make(chan string)
		go c.scan()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-c.done:
		return "", ErrClosed
	case line, ok := <-c.lines:
		if !ok {
			return "", c.err
		}
		return line, nil
	}
}

func (c *Console) scan() {
	defer close(c.finished)
	defer close(c.lines)
	for {
		line, err := c.in.ReadString('\n')
		if line != "" {
			select {
			case c.lines <- strings.TrimRight(line, "\r\n"):
			case <-c.done:
				c.err = ErrClosed
				return
			}
		}
		if err != nil {
			c.err = err
			return
		}
	}
}
