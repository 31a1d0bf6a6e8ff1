// Package prompt asks questions on a line oriented terminal.
//
// [Chooser] implements matcher.Chooser by printing the numbered candidates and reading one
// line. [Confirm] asks a yes/no question. Both treat read errors (including EOF) as a
// negative answer, so piping input or closing stdin never blocks a run.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/desertthunder/ytfolder/internal/matcher"
)

// Chooser reads choices from in and writes prompts to out.
type Chooser struct {
	in  *bufio.Reader
	out io.Writer
}

// NewChooser creates a Chooser. Share in with [Confirm] through [NewReader] to avoid losing buffered input.
func NewChooser(in *bufio.Reader, out io.Writer) *Chooser {
	return &Chooser{in: in, out: out}
}

// NewReader wraps r for use by [NewChooser] and [Confirm].
func NewReader(r io.Reader) *bufio.Reader {
	return bufio.NewReader(r)
}

// Choose prints req and reads a 1-based index. Anything that is not a listed number abstains.
func (c *Chooser) Choose(ctx context.Context, req matcher.ChoiceRequest) (int, bool) {
	fmt.Fprintf(c.out, "  Best match score (%d) is low. Please choose:\n", req.BestScore)
	for i, candidate := range req.Candidates {
		fmt.Fprintf(c.out, "    %d. %s (%s)\n", i+1, candidate.Title, candidate.ChannelName)
	}
	fmt.Fprintf(c.out, "  Enter 1-%d to select (or anything else to skip): ", len(req.Candidates))

	line, ok := readLine(ctx, c.in)
	if !ok {
		fmt.Fprintln(c.out)
		return 0, false
	}

	choice, err := strconv.Atoi(line)
	if err != nil || choice < 1 || choice > len(req.Candidates) {
		return 0, false
	}
	return choice, true
}

// Confirm asks question and reports whether the answer starts with y.
func Confirm(ctx context.Context, in *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)

	line, ok := readLine(ctx, in)
	if !ok {
		fmt.Fprintln(out)
		return false
	}

	answer := strings.ToLower(line)
	return answer == "y" || answer == "yes"
}

// readLine reads one trimmed line. A final line without a newline still counts.
func readLine(ctx context.Context, in *bufio.Reader) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}

	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", false
	}
	return strings.TrimSpace(line), true
}
