// Package usage is the supplemental reference front end of SPEC_FULL.md
// §11: a small, hand-rolled recursive-descent reader that turns a
// human-authored "Usage:" block into the build-event calls of spec.md §6.1
// (ctx.NewCmd, ctx.PushArg, ctx.SetFlag, ctx.PopGroup). It is explicitly not
// a full docopt-language parser — see SPEC_FULL.md §11 for the exact
// grammar surface supported.
package usage

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/reeflective/docoptgen/internal/ir"
)

// ErrNoUsageBlock is returned by Build when r contains no line mentioning
// "Usage:".
var ErrNoUsageBlock = errors.New("usage: no \"Usage:\" block found")

// Build reads r for a "Usage:" block — the first line containing the literal
// "Usage:" (case-insensitive), plus any immediately following indented
// continuation lines — and feeds every pattern alternative it contains into
// ctx as a new command.
func Build(ctx *ir.Ctx, r io.Reader) error {
	patterns, err := extractPatterns(r)
	if err != nil {
		return err
	}

	for _, line := range patterns {
		for _, alt := range splitTopLevel(line) {
			ctx.NewCmd()

			if err := parseSequence(ctx, tokenize(alt)); err != nil {
				return err
			}
		}
	}

	return nil
}

// extractPatterns finds the "Usage:" block of r and returns one pattern
// string per line, each with its leading program name already stripped.
func extractPatterns(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)

	var (
		patterns []string
		inBlock  bool
	)

	for scanner.Scan() {
		line := scanner.Text()

		if !inBlock {
			idx := strings.Index(strings.ToLower(line), "usage:")
			if idx < 0 {
				continue
			}

			inBlock = true

			if pattern, ok := stripProgramName(line[idx+len("usage:"):]); ok {
				patterns = append(patterns, pattern)
			}

			continue
		}

		if strings.TrimSpace(line) == "" {
			break
		}

		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			break
		}

		if pattern, ok := stripProgramName(line); ok {
			patterns = append(patterns, pattern)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if !inBlock {
		return nil, ErrNoUsageBlock
	}

	return patterns, nil
}

// stripProgramName drops the first whitespace-delimited word of pattern
// (the program/binary name docopt usage lines always lead with), returning
// ok=false only for a blank line.
func stripProgramName(pattern string) (string, bool) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return "", false
	}

	idx := strings.IndexAny(pattern, " \t")
	if idx < 0 {
		return "", true
	}

	return strings.TrimSpace(pattern[idx+1:]), true
}

// splitTopLevel splits line on "|" at bracket/paren depth zero, so a single
// "Usage:" line may describe several command alternatives at once
// (SPEC_FULL.md §11's "one Usage: line per command alternative, or |-separated
// alternatives on one line").
func splitTopLevel(line string) []string {
	runes := []rune(line)

	var (
		parts []string
		depth int
		start int
	)

	for i, r := range runes {
		switch r {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case '|':
			if depth == 0 {
				parts = append(parts, string(runes[start:i]))
				start = i + 1
			}
		}
	}

	parts = append(parts, string(runes[start:]))

	return parts
}
