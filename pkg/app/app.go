package app

import (
	"context"
	"log/slog"
	"maps"
	"sync"
	"sync/atomic"

	"github.com/shuldan/voyage/pkg/config"
	"github.com/shuldan/voyage/pkg/container"
	"github.com/shuldan/voyage/pkg/contracts"
	"github.com/shuldan/voyage/pkg/errors"
	"github.com/shuldan/voyage/pkg/events"
	"github.com/shuldan/voyage/pkg/logger"
)

// KernelFactory builds the kernel once the application has booted.
type KernelFactory func(app *Application) contracts.Kernel

// Application owns the root container, the plugin list and the loaded
// configuration, and drives plugins through the lifecycle phases.
type Application struct {
	root          *container.Container
	registry      *registry
	kernelFactory KernelFactory
	kernel        contracts.Kernel

	info   AppInfo
	logger contracts.Logger
	bus    contracts.Bus

	staticConfig    map[string]any
	configRoot      string
	disableFiles    bool
	disableEnvFiles bool
	envFiles        []string
	envPrefix       string

	config   map[string]any
	configMu sync.RWMutex

	bootOnce  sync.Once
	bootErr   error
	booting   atomic.Bool
	launching atomic.Bool
}

var _ contracts.Lifecycle = (*Application)(nil)

func New(kernelFactory KernelFactory, opts ...Option) *Application {
	a := &Application{
		root:          container.New(),
		registry:      newRegistry(),
		kernelFactory: kernelFactory,
		configRoot:    defaultConfigRoot,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = defaultLogger()
	}
	if a.bus == nil {
		a.bus = events.New(
			events.WithPanicHandler(events.NewDefaultPanicHandler(a.logger)),
			events.WithErrorHandler(events.NewDefaultErrorHandler(a.logger)),
		)
	}
	a.config = maps.Clone(a.staticConfig)

	a.root.
		When(contracts.AppName).Value(a).
		When(contracts.EventsName).Value(a.bus).
		When(contracts.LoggerName).Value(a.logger).
		When(contracts.ConfigName).Result(func(context.Context, *container.Container) (any, error) {
			return config.NewAccessor(a.configValues(), true), nil
		})

	return a
}

func defaultLogger() contracts.Logger {
	l, err := logger.NewLogger(logger.WithOutput("stderr"), logger.WithLevel(slog.LevelWarn))
	if err != nil {
		return logger.Nop()
	}
	return l
}

// Register adds plugins in order. It fails once the application has
// started booting.
func (a *Application) Register(plugins ...contracts.Plugin) error {
	if a.booting.Load() {
		return ErrAlreadyBooted
	}
	return a.registry.Register(plugins...)
}

func (a *Application) Plugins() []contracts.Plugin {
	return a.registry.All()
}

func (a *Application) Container() *container.Container {
	return a.root
}

func (a *Application) Info() AppInfo {
	return a.info
}

func (a *Application) Logger() contracts.Logger {
	return a.logger
}

func (a *Application) Bus() contracts.Bus {
	return a.bus
}

// Config returns an accessor over the current configuration snapshot.
func (a *Application) Config() *config.Accessor {
	return config.NewAccessor(a.configValues(), true)
}

// Kernel returns the kernel built by Launch, or nil before that.
func (a *Application) Kernel() contracts.Kernel {
	return a.kernel
}

func (a *Application) configValues() map[string]any {
	a.configMu.RLock()
	defer a.configMu.RUnlock()
	return a.config
}

func (a *Application) setConfig(values map[string]any) {
	a.configMu.Lock()
	defer a.configMu.Unlock()
	a.config = values
}

// Boot loads configuration and runs the boot hooks against the root
// container. Only the first call does any work; later calls return its
// result.
func (a *Application) Boot(ctx context.Context) error {
	a.bootOnce.Do(func() {
		a.booting.Store(true)
		a.bootErr = a.boot(ctx)
	})
	return a.bootErr
}

func (a *Application) boot(ctx context.Context) error {
	if !a.disableEnvFiles {
		if err := config.LoadEnvFiles(config.EnvFiles(a.envFiles...)...); err != nil {
			a.logger.Error("failed to load env files", "error", err)
			return err
		}
	}

	if err := a.loadConfig(ctx); err != nil {
		a.logger.Error("failed to load configuration", "error", err)
		return err
	}

	return a.enter(ctx, events.Booting{Container: a.root}, contracts.Plugin.Boot)
}

func (a *Application) loadConfig(ctx context.Context) error {
	plugins := a.registry.All()

	loaders := []config.Loader{config.NewDefaultsLoader(plugins...)}
	if !a.disableFiles {
		files := config.NewFileLoader(a.configRoot, config.Paths(plugins...)...)
		loaders = append(loaders, config.NewTemplatedLoader(files))
	}
	loaders = append(loaders,
		config.NewEnvConfigLoader(a.envPrefix),
		config.StaticLoader(a.staticConfig),
	)

	values, err := config.NewChainLoader(loaders...).Load(ctx)
	if err != nil {
		return err
	}
	a.setConfig(values)
	return nil
}

// Launch boots the application if needed, makes the root container the
// process-wide fallback, builds the kernel and runs it between the
// launching and launched phases. A failed boot is reported on every call;
// after a successful boot only the first call launches.
func (a *Application) Launch(ctx context.Context) error {
	if err := a.Boot(ctx); err != nil {
		return err
	}
	if !a.launching.CompareAndSwap(false, true) {
		return ErrAlreadyLaunched
	}

	container.EnterWith(a.root)
	if _, ok := container.FromContext(ctx); !ok {
		ctx = container.WithContainer(ctx, a.root)
	}

	a.kernel = a.newKernel()
	a.root.When(contracts.KernelName).Value(a.kernel)

	if err := a.Launching(ctx); err != nil {
		return err
	}
	if err := a.kernel.Launch(ctx); err != nil {
		a.logger.Error("kernel launch failed", "error", err)
		return err
	}
	return a.Launched(ctx)
}

func (a *Application) newKernel() contracts.Kernel {
	if a.kernelFactory != nil {
		if k := a.kernelFactory(a); k != nil {
			return k
		}
	}
	return NewKernel(a)
}

func (a *Application) Launching(ctx context.Context) error {
	return a.enter(ctx, events.Launching{Container: container.Current(ctx)}, contracts.Plugin.PreLaunch)
}

func (a *Application) Launched(ctx context.Context) error {
	return a.enter(ctx, events.Launched{Container: container.Current(ctx)}, contracts.Plugin.PostLaunch)
}

func (a *Application) Processing(ctx context.Context) error {
	return a.enter(ctx, events.Processing{Container: container.Current(ctx)}, contracts.Plugin.PreAction)
}

func (a *Application) Processed(ctx context.Context) error {
	return a.enter(ctx, events.Processed{Container: container.Current(ctx)}, contracts.Plugin.PostAction)
}

type hookFunc func(p contracts.Plugin, ctx context.Context, c *container.Container) error

// enter publishes the phase event, then calls hook on every plugin in
// registration order. The first error stops the phase and is returned as is.
func (a *Application) enter(ctx context.Context, phase events.Phase, hook hookFunc) error {
	c := phase.Scope()
	a.logger.Debug("entering phase", "phase", phase.Name(), "container", c.ID())

	if err := a.bus.Publish(ctx, phase); err != nil {
		a.logger.Error("phase listener failed", "phase", phase.Name(), "error", err)
		return err
	}

	for _, p := range a.registry.All() {
		if err := hook(p, ctx, c); err != nil {
			a.logger.Error("plugin hook failed",
				"phase", phase.Name(),
				"plugin", p.Name(),
				"code", errors.CodeOf(err),
				"error", err,
			)
			return err
		}
	}
	return nil
}
