package console

import (
	"cmp"
	"flag"
	"io"
	"slices"
	"sync"
)

// Group is a named set of commands as listed by help.
type Group struct {
	Name     string
	Commands []Command
}

// Registry holds commands by name. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

func (r *Registry) Register(cmd Command) error {
	if cmd == nil {
		return ErrCommandRegistration.WithDetail("command", "nil")
	}
	name := cmd.Name()
	if name == "" {
		return ErrCommandRegistration.WithDetail("command", "empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.commands[name]; taken {
		return ErrCommandRegistration.WithDetail("command", name).WithDetail("reason", "already registered")
	}
	r.commands[name] = cmd
	return nil
}

func (r *Registry) Get(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Groups lists commands grouped by Command.Group, groups and commands
// sorted by name. Commands without a group land in "general".
func (r *Registry) Groups() []Group {
	r.mu.RLock()
	byGroup := make(map[string][]Command)
	for _, cmd := range r.commands {
		g := cmp.Or(cmd.Group(), defaultGroup)
		byGroup[g] = append(byGroup[g], cmd)
	}
	r.mu.RUnlock()

	groups := make([]Group, 0, len(byGroup))
	for name, cmds := range byGroup {
		slices.SortFunc(cmds, func(a, b Command) int { return cmp.Compare(a.Name(), b.Name()) })
		groups = append(groups, Group{Name: name, Commands: cmds})
	}
	slices.SortFunc(groups, func(a, b Group) int { return cmp.Compare(a.Name, b.Name) })
	return groups
}

// Resolve looks up the command named by args[0] and parses the remaining
// args with the flags it configures. Flag errors are written to output.
func (r *Registry) Resolve(args []string, output io.Writer) (Command, []string, error) {
	if len(args) == 0 {
		return nil, nil, ErrNoCommandSpecified
	}

	name := args[0]
	cmd, ok := r.Get(name)
	if !ok {
		return nil, nil, ErrUnknownCommand.WithDetail("command", name)
	}

	flags := newFlagSet(cmd, output)
	if err := flags.Parse(args[1:]); err != nil {
		return nil, nil, ErrFlagParse.WithDetail("command", name).WithCause(err)
	}
	return cmd, flags.Args(), nil
}

func newFlagSet(cmd Command, output io.Writer) *flag.FlagSet {
	flags := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	flags.SetOutput(output)
	cmd.Configure(flags)
	return flags
}
