package ir

import (
	"errors"
	"fmt"
)

// Sentinel errors for the build-time and validation failures of the IR
// builder, mirroring the teacher's internal/errors package: one exported
// sentinel per failure mode, wrapped with contextual detail by BuildError.
var (
	// ErrDuplicateInCommand indicates that the same non-group argument name
	// was pushed twice within one command.
	ErrDuplicateInCommand = errors.New("duplicate argument name within command")

	// ErrKindConflict indicates that the same argument name was used with
	// different kinds (e.g. flag vs. string) across commands.
	ErrKindConflict = errors.New("argument name used with conflicting kinds")

	// ErrEmptySpec indicates that no commands were ever registered.
	ErrEmptySpec = errors.New("no commands in spec")

	// ErrUnnamedArg indicates that a non-group argument was pushed without a
	// name; only group kinds may omit a name (the builder will auto-name
	// them).
	ErrUnnamedArg = errors.New("non-group argument requires a name")

	// ErrNoOpenCommand indicates that PushArg, PopGroup, or SetFlag was
	// called before any command was created via NewCmd.
	ErrNoOpenCommand = errors.New("no open command")

	// ErrNoOpenGroup indicates PopGroup was called with an empty group
	// stack for the current command.
	ErrNoOpenGroup = errors.New("no open group to pop")

	// ErrNoSibling indicates SetFlag was called with no argument yet
	// appended at the current nesting level.
	ErrNoSibling = errors.New("no argument to flag")
)

// ErrorKind classifies a BuildError the way the teacher's ParserError
// classifies flags.Error.
type ErrorKind int

const (
	// KindUnknown is the zero value, used only for errors not produced by
	// this package.
	KindUnknown ErrorKind = iota
	// KindDuplicateInCommand wraps ErrDuplicateInCommand.
	KindDuplicateInCommand
	// KindKindConflict wraps ErrKindConflict.
	KindKindConflict
	// KindEmptySpec wraps ErrEmptySpec.
	KindEmptySpec
	// KindUnnamedArg wraps ErrUnnamedArg.
	KindUnnamedArg
	// KindNoOpenCommand wraps ErrNoOpenCommand.
	KindNoOpenCommand
	// KindNoOpenGroup wraps ErrNoOpenGroup.
	KindNoOpenGroup
	// KindNoSibling wraps ErrNoSibling.
	KindNoSibling
)

func (k ErrorKind) String() string {
	names := [...]string{
		"unknown",
		"duplicate in command",
		"kind conflict",
		"empty spec",
		"unnamed argument",
		"no open command",
		"no open group",
		"no sibling to flag",
	}
	if int(k) >= len(names) {
		return "unrecognized error kind"
	}

	return names[k]
}

// BuildError carries both the sentinel error (for errors.Is matching) and a
// human-readable message with contextual detail, the way the teacher's
// flags.Error carries both a Type and a Message.
type BuildError struct {
	Kind    ErrorKind
	Message string
	cause   error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	return e.Message
}

// Unwrap allows errors.Is(err, ir.ErrKindConflict) to succeed.
func (e *BuildError) Unwrap() error {
	return e.cause
}

func newBuildError(kind ErrorKind, cause error, format string, args ...any) *BuildError {
	return &BuildError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		cause:   cause,
	}
}
