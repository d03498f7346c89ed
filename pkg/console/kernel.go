package console

import (
	"context"
	"io"
	"os"

	"github.com/shuldan/voyage/pkg/app"
	"github.com/shuldan/voyage/pkg/contracts"
)

// Kernel runs a single command picked from the process arguments. The
// command is validated and executed inside one action.
type Kernel struct {
	*app.Kernel
	registry       *Registry
	args           []string
	stdin          io.Reader
	stdout         io.Writer
	defaultCommand string
}

type Option func(*Kernel)

// WithArgs replaces os.Args[1:] as the command line.
func WithArgs(args ...string) Option {
	return func(k *Kernel) {
		k.args = args
	}
}

func WithInput(r io.Reader) Option {
	return func(k *Kernel) {
		if r != nil {
			k.stdin = r
		}
	}
}

func WithOutput(w io.Writer) Option {
	return func(k *Kernel) {
		if w != nil {
			k.stdout = w
		}
	}
}

// WithDefaultCommand names the command run when no arguments are given.
// An empty name makes an empty command line an error.
func WithDefaultCommand(name string) Option {
	return func(k *Kernel) {
		k.defaultCommand = name
	}
}

func NewKernel(lifecycle contracts.Lifecycle, opts ...Option) *Kernel {
	k := &Kernel{
		Kernel:         app.NewKernel(lifecycle),
		registry:       NewRegistry(),
		args:           os.Args[1:],
		stdin:          os.Stdin,
		stdout:         os.Stdout,
		defaultCommand: "help",
	}

	for _, opt := range opts {
		opt(k)
	}

	_ = k.registry.Register(NewHelpCommand(k.registry))
	return k
}

// Factory adapts NewKernel for app.New.
func Factory(opts ...Option) app.KernelFactory {
	return func(a *app.Application) contracts.Kernel {
		return NewKernel(a, opts...)
	}
}

func (k *Kernel) Register(commands ...Command) error {
	for _, cmd := range commands {
		if err := k.registry.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (k *Kernel) Registry() *Registry {
	return k.registry
}

func (k *Kernel) Launch(ctx context.Context) error {
	return k.Run(ctx, k.args...)
}

// Run parses args and executes the named command in its own action.
func (k *Kernel) Run(ctx context.Context, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(args) == 0 && k.defaultCommand != "" {
		args = []string{k.defaultCommand}
	}

	cmd, rest, err := k.registry.Resolve(args, k.stdout)
	if err != nil {
		return err
	}
	in := newInput(k.stdin, k.stdout, rest)

	return k.Action(ctx, func(ctx context.Context) error {
		if err := cmd.Validate(ctx, in); err != nil {
			return ErrCommandValidation.WithDetail("command", cmd.Name()).WithCause(err)
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if err := cmd.Execute(ctx, in); err != nil {
			return ErrCommandExecution.WithDetail("command", cmd.Name()).WithCause(err)
		}
		return nil
	})
}
