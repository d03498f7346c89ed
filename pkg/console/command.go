package console

import (
	"context"
	"flag"
	"io"
)

const (
	defaultGroup = "general"
	systemGroup  = "system"
)

// Command is a named unit of work run by the console kernel. Execute runs
// inside an action, so container.Current(ctx) is a fork scoped to this
// command.
type Command interface {
	Name() string
	Description() string
	Group() string
	Configure(flags *flag.FlagSet)
	Validate(ctx context.Context, in *Input) error
	Execute(ctx context.Context, in *Input) error
}

// Input carries the streams and the positional arguments left after flag
// parsing.
type Input struct {
	Stdin  io.Reader
	Stdout io.Writer
	args   []string
}

func newInput(stdin io.Reader, stdout io.Writer, args []string) *Input {
	argsCopy := make([]string, len(args))
	copy(argsCopy, args)

	return &Input{
		Stdin:  stdin,
		Stdout: stdout,
		args:   argsCopy,
	}
}

func (in *Input) Args() []string {
	argsCopy := make([]string, len(in.args))
	copy(argsCopy, in.args)
	return argsCopy
}

// Arg returns the positional argument at i, or "".
func (in *Input) Arg(i int) string {
	if i < 0 || i >= len(in.args) {
		return ""
	}
	return in.args[i]
}
