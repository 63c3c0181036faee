package usage

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/reeflective/docoptgen/internal/ir"
)

// cursor walks a token slice with one token of lookahead.
type cursor struct {
	toks []token
	pos  int
}

func (c *cursor) peek() (token, bool) {
	if c.pos >= len(c.toks) {
		return token{}, false
	}

	return c.toks[c.pos], true
}

func (c *cursor) advance() (token, bool) {
	t, ok := c.peek()
	if ok {
		c.pos++
	}

	return t, ok
}

// parseSequence feeds one complete alternative's tokens into ctx's
// currently-open command. The command must already be open (via
// ctx.NewCmd) before parseSequence is called.
func parseSequence(ctx *ir.Ctx, toks []token) error {
	cur := &cursor{toks: toks}

	if err := parseSeqInto(ctx, cur); err != nil {
		return err
	}

	if _, ok := cur.peek(); ok {
		return fmt.Errorf("usage: unexpected closing bracket")
	}

	return nil
}

// parseSeqInto consumes terms, and the "|" separators between them, until it
// runs out of tokens or reaches a closing bracket/paren it does not own (the
// caller that opened the enclosing group consumes that one itself).
func parseSeqInto(ctx *ir.Ctx, cur *cursor) error {
	for {
		tok, ok := cur.peek()
		if !ok || tok.kind == tokRBracket || tok.kind == tokRParen {
			return nil
		}

		if err := parseOneTerm(ctx, cur); err != nil {
			return err
		}

		if next, ok := cur.peek(); ok && next.kind == tokPipe {
			cur.advance()

			if err := ctx.SetFlag(ir.Separator); err != nil {
				return err
			}
		}
	}
}

func parseOneTerm(ctx *ir.Ctx, cur *cursor) error {
	tok, ok := cur.advance()
	if !ok {
		return fmt.Errorf("usage: unexpected end of pattern")
	}

	switch tok.kind {
	case tokLBracket:
		return parseGroup(ctx, cur, ir.OptGroup, tokRBracket)
	case tokLParen:
		return parseGroup(ctx, cur, ir.ReqGroup, tokRParen)
	case tokWord:
		if tok.text == "..." {
			return ctx.SetFlag(ir.Array)
		}

		return pushWord(ctx, cur, tok.text)
	default:
		return fmt.Errorf("usage: unexpected token %q", tok.text)
	}
}

// parseGroup opens a group of kind, parses its body, and closes it. The body
// is itself a sequence of terms interspersed with "|", exactly like
// parseSeqInto, but bounded by the matching close token.
func parseGroup(ctx *ir.Ctx, cur *cursor, kind ir.Kind, close tokenKind) error {
	if _, err := ctx.PushArg(kind, 0, ""); err != nil {
		return err
	}

	for {
		tok, ok := cur.peek()
		if !ok {
			return fmt.Errorf("usage: unterminated group, expected closing bracket")
		}

		if tok.kind == close {
			cur.advance()

			break
		}

		if err := parseOneTerm(ctx, cur); err != nil {
			return err
		}

		if next, ok := cur.peek(); ok && next.kind == tokPipe {
			cur.advance()

			if err := ctx.SetFlag(ir.Separator); err != nil {
				return err
			}
		}
	}

	return ctx.PopGroup()
}

// pushWord turns one WORD-class token into a build event. Flags (leading
// "-"/"--") that are immediately followed by an ALL-CAPS or <angle-bracket>
// placeholder token are treated as HasValue options consuming that
// placeholder, matching docopt's own convention well enough for the small
// grammar surface this front end supports (SPEC_FULL.md §11).
func pushWord(ctx *ir.Ctx, cur *cursor, word string) error {
	array := false
	if strings.HasSuffix(word, "...") && word != "..." {
		array = true
		word = strings.TrimSuffix(word, "...")
	}

	if isFlagToken(word) {
		return pushFlag(ctx, cur, word, array)
	}

	var flags ir.Flags
	if array {
		flags |= ir.Array
	}

	// A bare word is a value placeholder (Str) if it looks like one
	// (<angle-bracket> or ALL-CAPS); otherwise it is a literal command/
	// subcommand word, which the IR represents the same way as a flag: a
	// presence indicator with no associated value.
	kind := ir.Flag
	if isPlaceholder(word) {
		kind = ir.Str
	}

	_, err := ctx.PushArg(kind, flags, word)

	return err
}

func pushFlag(ctx *ir.Ctx, cur *cursor, word string, array bool) error {
	name, hasInlineValue := splitFlagEquals(word)

	kind := ir.Flag

	var flags ir.Flags

	switch {
	case hasInlineValue:
		kind = ir.Str
		flags |= ir.HasValue
	case peekIsPlaceholder(cur):
		cur.advance()

		kind = ir.Str
		flags |= ir.HasValue
	}

	if array {
		flags |= ir.Array
	}

	_, err := ctx.PushArg(kind, flags, name)

	return err
}

func isFlagToken(word string) bool {
	return len(word) > 1 && word[0] == '-' && word != "..."
}

func splitFlagEquals(word string) (name string, hasValue bool) {
	if idx := strings.IndexByte(word, '='); idx >= 0 {
		return word[:idx], true
	}

	return word, false
}

func peekIsPlaceholder(cur *cursor) bool {
	tok, ok := cur.peek()
	if !ok || tok.kind != tokWord {
		return false
	}

	return isPlaceholder(tok.text)
}

// isPlaceholder reports whether a word looks like a docopt value
// placeholder: <angle-bracketed> or ALL-CAPS (allowing digits/underscore),
// rather than a literal command word.
func isPlaceholder(word string) bool {
	if word == "" || word == "..." {
		return false
	}

	if strings.HasPrefix(word, "<") && strings.HasSuffix(word, ">") {
		return true
	}

	for _, r := range word {
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}

	return true
}
