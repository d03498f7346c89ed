package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/shuldan/voyage/pkg/app"
	"github.com/shuldan/voyage/pkg/bootstrap"
	"github.com/shuldan/voyage/pkg/console"
	"github.com/shuldan/voyage/pkg/container"
	"github.com/shuldan/voyage/pkg/contracts"
	"github.com/shuldan/voyage/pkg/errors"
	"github.com/shuldan/voyage/pkg/events"
	"github.com/shuldan/voyage/pkg/facade"
	"github.com/shuldan/voyage/pkg/logger"
	"github.com/shuldan/voyage/pkg/plugin"
)

type Greeter struct {
	greeting string
	log      contracts.Logger
}

func (g *Greeter) Greet(name string) string {
	g.log.Debug("greeting", "name", name)
	return fmt.Sprintf("%s, %s!", g.greeting, name)
}

type greeterPlugin struct {
	plugin.Base
}

func (greeterPlugin) Name() string {
	return "GreeterPlugin"
}

func (greeterPlugin) ConfigPaths() []string {
	return []string{"greeter"}
}

func (greeterPlugin) DefaultConfigs() map[string]any {
	return map[string]any{
		"greeter": map[string]any{"greeting": "Hello"},
	}
}

func (greeterPlugin) Boot(_ context.Context, c *container.Container) error {
	def := container.Type(func(_ context.Context, args []any) (*Greeter, error) {
		cfg := container.Arg[contracts.Config](args, 0)
		return &Greeter{
			greeting: cfg.GetString("greeter.greeting", "Hello"),
			log:      container.Arg[contracts.Logger](args, 1),
		}, nil
	}).Requires(contracts.ConfigName, contracts.LoggerName)

	c.When(reflect.TypeFor[*Greeter]()).Singleton(def)
	return nil
}

type greetCommand struct {
	shout bool
}

func (g *greetCommand) Name() string {
	return "greet"
}

func (g *greetCommand) Description() string {
	return "Greet someone by name"
}

func (g *greetCommand) Group() string {
	return "demo"
}

func (g *greetCommand) Configure(flags *flag.FlagSet) {
	flags.BoolVar(&g.shout, "shout", false, "Print the greeting in upper case")
}

func (g *greetCommand) Validate(_ context.Context, in *console.Input) error {
	if in.Arg(0) == "" {
		return errors.ErrInvalidArgument.WithDetail("reason", "a name is required")
	}
	return nil
}

func (g *greetCommand) Execute(ctx context.Context, in *console.Input) error {
	greeter, err := facade.Of[*Greeter](ctx)
	if err != nil {
		return err
	}
	if greeter == nil {
		return errors.ErrNotFound.WithDetail("name", container.NameOf[*Greeter]())
	}

	msg := greeter.Greet(in.Arg(0))
	if g.shout {
		msg = strings.ToUpper(msg)
	}
	_, err = fmt.Fprintln(in.Stdout, msg)
	return err
}

// PhaseListener traces every lifecycle phase at debug level.
type PhaseListener struct{}

func (l *PhaseListener) Handle(ctx context.Context, p events.Phase) error {
	logger.From(ctx).Debug("lifecycle", "phase", p.Name(), "container", p.Scope().ID())
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := app.SignalContext(context.Background())
	defer stop()

	a, err := bootstrap.New("voyage", "0.1.0", "VOYAGE_").
		WithLogger().
		WithPlugins(greeterPlugin{}).
		WithCommands(&greetCommand{}).
		CreateApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Bus().Close() }()

	if err := a.Bus().Subscribe((*events.Phase)(nil), &PhaseListener{}); err != nil {
		return err
	}

	return a.Launch(ctx)
}
