// Package selection narrows discovered candidates to the files the user
// wants compressed.
package selection

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/backmassage/glbcrunch/internal/display"
	"github.com/backmassage/glbcrunch/internal/pipeline"
	"github.com/backmassage/glbcrunch/internal/term"
)

// All selects every candidate.
type All struct{}

// Select returns candidates unchanged.
func (All) Select(_ context.Context, candidates []pipeline.Candidate) ([]pipeline.Candidate, error) {
	return candidates, nil
}

// Prompt lists candidates on Out and reads one line of choices from In.
type Prompt struct {
	In  io.Reader
	Out io.Writer
}

// ForTerminal returns All when assumeYes is set or stdin is not a terminal,
// and an interactive Prompt otherwise.
func ForTerminal(assumeYes bool) pipeline.Selector {
	if assumeYes || !term.IsTerminal(os.Stdin) {
		return All{}
	}
	return &Prompt{In: os.Stdin, Out: os.Stdout}
}

// Select prints the numbered list and parses the answer with
// [ParseSelection]. Closing the input without an answer selects nothing.
func (p *Prompt) Select(ctx context.Context, candidates []pipeline.Candidate) ([]pipeline.Candidate, error) {
	fmt.Fprintln(p.Out, "Select GLB files to compress:")
	width := len(strconv.Itoa(len(candidates)))
	for i, c := range candidates {
		fmt.Fprintf(p.Out, "  %*d) %s (%s)\n", width, i+1, c.RelPath, display.FormatBytes(c.Size))
	}
	fmt.Fprint(p.Out, "Files to compress [all] (e.g. 1,3-5 | all | none): ")

	line, err := readLine(ctx, p.In)
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) == "" {
			fmt.Fprintln(p.Out)
			return nil, nil
		}
		if !errors.Is(err, io.EOF) {
			return nil, err
		}
	}

	idx, err := ParseSelection(line, len(candidates))
	if err != nil {
		return nil, err
	}
	return lo.Map(idx, func(i int, _ int) pipeline.Candidate { return candidates[i] }), nil
}

// readLine reads one line from r, giving up when ctx is done. A read blocked
// on stdin cannot be interrupted, so on cancellation the reader goroutine
// stays parked until the process exits; the prompt is asked once per run.
func readLine(ctx context.Context, r io.Reader) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := bufio.NewReader(r).ReadString('\n')
		ch <- result{line, err}
	}()
	select {
	case res := <-ch:
		return res.line, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// ParseSelection turns an answer into sorted 0-based indices into a list of
// n items. Empty input or "all" selects everything; "none" or "q" selects
// nothing. Otherwise the answer is a comma or space separated list of
// 1-based numbers and inclusive ranges ("1,3-5"). Duplicates collapse.
func ParseSelection(input string, n int) ([]int, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	switch s {
	case "", "all", "a", "*":
		return lo.Range(n), nil
	case "none", "n", "q", "quit":
		return nil, nil
	}

	tokens := lo.Compact(strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' }))
	var picked []int
	for _, tok := range tokens {
		start, end, err := parseToken(tok, n)
		if err != nil {
			return nil, err
		}
		for i := start; i <= end; i++ {
			picked = append(picked, i-1)
		}
	}

	picked = lo.Uniq(picked)
	sort.Ints(picked)
	return picked, nil
}

// parseToken parses "k" or "a-b" into an inclusive 1-based range within 1..n.
func parseToken(tok string, n int) (int, int, error) {
	from, to, isRange := strings.Cut(tok, "-")
	a, err := strconv.Atoi(from)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid selection %q", tok)
	}
	b := a
	if isRange {
		if b, err = strconv.Atoi(to); err != nil {
			return 0, 0, fmt.Errorf("invalid selection %q", tok)
		}
	}
	if a > b {
		return 0, 0, fmt.Errorf("invalid range %q (start after end)", tok)
	}
	if a < 1 || b > n {
		return 0, 0, fmt.Errorf("selection %q out of range 1-%d", tok, n)
	}
	return a, b, nil
}
