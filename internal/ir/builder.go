// Package ir implements the intermediate representation at the heart of the
// CLI-spec compiler: the per-command argument forest, the group-stack
// discipline that builds it from a flat stream of build events, and the
// cross-command argument deduplication/typing table the emitters consume.
//
// Ctx is fed through the build-event interface described in spec.md §4.B
// and §6.1 (NewCmd, PushArg, PopGroup, SetFlag), then frozen by a call to
// Validate, after which the three emitters in internal/gen/* read it
// read-only.
package ir

import "github.com/reeflective/docoptgen/internal/identifier"

// Ctx is the top-level build/validate/emit container (spec.md §3.1's
// Context entity).
type Ctx struct {
	Commands   []*Cmd
	dedup      *hashIndex
	HaveArrays bool
}

// NewCtx returns an empty, ready-to-build Ctx.
func NewCtx() *Ctx {
	return &Ctx{dedup: newHashIndex()}
}

// Reset drops every command and dedup entry, matching original_source's
// ctx_freecmds: idempotent, and safe to call on an already-empty Ctx so a
// fresh build can reuse it (spec.md testable property 7).
func (c *Ctx) Reset() {
	c.Commands = nil
	c.dedup.reset()
	c.HaveArrays = false
}

// NewCmd appends a new, empty command. It may be called at any time; it
// does not touch any group stack.
func (c *Ctx) NewCmd() *Cmd {
	cmd := &Cmd{Index: len(c.Commands) + 1}
	c.Commands = append(c.Commands, cmd)

	return cmd
}

func (c *Ctx) lastCmd() (*Cmd, error) {
	if len(c.Commands) == 0 {
		return nil, newBuildError(KindNoOpenCommand, ErrNoOpenCommand,
			"no command open: call NewCmd before PushArg/PopGroup/SetFlag")
	}

	return c.Commands[len(c.Commands)-1], nil
}

// PushArg creates a new Arg under the innermost open group of the current
// (last) command, or at that command's top level if no group is open. If
// kind is a group kind, the new Arg is also pushed onto the command's group
// stack, becoming the new innermost open group.
//
// name may be empty only for group kinds; the builder then synthesizes
// cmd<I>-{opt,req}grp<K>. Non-group Args with an empty name are rejected.
//
// Dedup/type checking (spec.md §4.B) happens here for non-group kinds only.
func (c *Ctx) PushArg(kind Kind, flags Flags, name string) (*Arg, error) {
	cmd, err := c.lastCmd()
	if err != nil {
		return nil, err
	}

	if name == "" {
		if !kind.IsGroup() {
			return nil, newBuildError(KindUnnamedArg, ErrUnnamedArg,
				"non-group argument requires a name (kind=%s)", kind)
		}

		name = autoName(cmd, kind)
	}

	c.HaveArrays = c.HaveArrays || flags.Has(Array)

	arg := &Arg{Kind: kind, Flags: flags, Name: name, Cmd: cmd, parent: cmd.stack}

	switch kind {
	case ReqGroup:
		cmd.reqGroupCount++
		cmd.ReqGroups = append(cmd.ReqGroups, arg)
	case OptGroup:
		cmd.optGroupCount++
		cmd.OptGroups = append(cmd.OptGroups, arg)
	default:
		cmd.RawArgs = append(cmd.RawArgs, arg)

		if err := c.dedupArg(arg); err != nil {
			return nil, err
		}
	}

	if cmd.stack == nil {
		cmd.TopLevel = append(cmd.TopLevel, arg)
	} else {
		cmd.stack.Children = append(cmd.stack.Children, arg)
	}

	if arg.isGroup() {
		cmd.stack = arg
	}

	return arg, nil
}

func autoName(cmd *Cmd, kind Kind) string {
	if kind == OptGroup {
		return identifier.AutoGroupName(cmd.Index, identifier.OptionalGroup, cmd.optGroupCount+1)
	}

	return identifier.AutoGroupName(cmd.Index, identifier.RequiredGroup, cmd.reqGroupCount+1)
}

// dedupArg looks arg's name up in the cross-command dedup table, enforcing
// invariant 3 of spec.md §3.2: two occurrences of the same name must belong
// to different commands and share a kind. Flag-set differences are
// tolerated: the entry keeps the first occurrence's flags, and only Array is
// OR-merged in from later occurrences.
func (c *Ctx) dedupArg(arg *Arg) error {
	found, h := c.dedup.lookup(arg.Name)
	if found == nil {
		found = &NamedArg{Name: arg.Name, Kind: arg.Kind, Flags: arg.Flags}
		c.dedup.insert(found, h)
		found.Occurrences = append(found.Occurrences, arg)

		return nil
	}

	for _, other := range found.Occurrences {
		if other.Cmd == arg.Cmd {
			return newBuildError(KindDuplicateInCommand, ErrDuplicateInCommand,
				"found arguments with similar names: '%s'", arg.Name)
		}

		if other.Kind != arg.Kind {
			return newBuildError(KindKindConflict, ErrKindConflict,
				"found arguments with different types: '%s'", arg.Name)
		}
	}

	found.Occurrences = append(found.Occurrences, arg)
	found.Flags |= arg.Flags & Array

	return nil
}

// PopGroup closes the innermost open group of the current command.
func (c *Ctx) PopGroup() error {
	cmd, err := c.lastCmd()
	if err != nil {
		return err
	}

	if cmd.stack == nil {
		return newBuildError(KindNoOpenGroup, ErrNoOpenGroup, "no open group to pop")
	}

	cmd.stack = cmd.stack.parent

	return nil
}

// SetFlag ORs flag into the most recently appended sibling at the current
// nesting level of the current command.
func (c *Ctx) SetFlag(flag Flags) error {
	cmd, err := c.lastCmd()
	if err != nil {
		return err
	}

	siblings := cmd.TopLevel
	if cmd.stack != nil {
		siblings = cmd.stack.Children
	}

	if len(siblings) == 0 {
		return newBuildError(KindNoSibling, ErrNoSibling, "no argument at current level to flag")
	}

	last := siblings[len(siblings)-1]
	last.Flags |= flag

	if flag.Has(Array) {
		c.HaveArrays = true

		if entry, _ := c.dedup.lookup(last.Name); entry != nil {
			entry.Flags |= Array
		}
	}

	return nil
}

// Dedup returns the deduplicated entry for name, or nil if unknown.
func (c *Ctx) Dedup(name string) *NamedArg {
	entry, _ := c.dedup.lookup(name)

	return entry
}

// EachDedup calls fn for every dedup entry, in insertion order — the order
// every emitter must use for deterministic output (spec.md §4.A, §9).
func (c *Ctx) EachDedup(fn func(*NamedArg)) {
	c.dedup.iterate(fn)
}

// IsArrayShaped reports whether the dedup entry for name carries Array.
// Per spec.md §9's resolved Open Question, this — not an individual Arg's
// own flags — is the single source of truth callers must use to decide
// array-shaped rule selection.
func (c *Ctx) IsArrayShaped(name string) bool {
	entry := c.Dedup(name)

	return entry != nil && entry.Flags.Has(Array)
}
