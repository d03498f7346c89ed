package plugin

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/shuldan/voyage/pkg/container"
	"github.com/shuldan/voyage/pkg/contracts"
)

type phase int

const (
	phaseBoot phase = iota
	phasePreLaunch
	phasePostLaunch
	phasePreAction
	phasePostAction
)

var phaseNames = map[phase]string{
	phaseBoot:       "BootPlugin",
	phasePreLaunch:  "PreLaunchPlugin",
	phasePostLaunch: "PostLaunchPlugin",
	phasePreAction:  "PreActionPlugin",
	phasePostAction: "PostActionPlugin",
}

type hookPlugin struct {
	Base
	name  string
	phase phase
	fn    Hook
}

// OnBoot runs fn during boot, before the kernel exists and before the root
// container is made ambient.
func OnBoot(fn Hook) contracts.Plugin {
	return newHookPlugin(phaseBoot, fn)
}

// PreLaunch runs fn before the kernel launches. An error stops the launch.
func PreLaunch(fn Hook) contracts.Plugin {
	return newHookPlugin(phasePreLaunch, fn)
}

// PostLaunch runs fn after the kernel has launched successfully.
func PostLaunch(fn Hook) contracts.Plugin {
	return newHookPlugin(phasePostLaunch, fn)
}

// PreAction runs fn at the start of every action.
func PreAction(fn Hook) contracts.Plugin {
	return newHookPlugin(phasePreAction, fn)
}

// PostAction runs fn at the end of every action.
func PostAction(fn Hook) contracts.Plugin {
	return newHookPlugin(phasePostAction, fn)
}

func newHookPlugin(p phase, fn Hook) *hookPlugin {
	return &hookPlugin{
		name:  fmt.Sprintf("%s<%s>", phaseNames[p], hookName(fn)),
		phase: p,
		fn:    fn,
	}
}

func (h *hookPlugin) Name() string {
	return h.name
}

func (h *hookPlugin) Boot(ctx context.Context, c *container.Container) error {
	return h.run(phaseBoot, ctx, c)
}

func (h *hookPlugin) PreLaunch(ctx context.Context, c *container.Container) error {
	return h.run(phasePreLaunch, ctx, c)
}

func (h *hookPlugin) PostLaunch(ctx context.Context, c *container.Container) error {
	return h.run(phasePostLaunch, ctx, c)
}

func (h *hookPlugin) PreAction(ctx context.Context, c *container.Container) error {
	return h.run(phasePreAction, ctx, c)
}

func (h *hookPlugin) PostAction(ctx context.Context, c *container.Container) error {
	return h.run(phasePostAction, ctx, c)
}

func (h *hookPlugin) run(p phase, ctx context.Context, c *container.Container) error {
	if h.phase != p || h.fn == nil {
		return nil
	}
	return h.fn(ctx, c)
}

func hookName(fn Hook) string {
	if fn == nil {
		return "anonymous"
	}
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return "anonymous"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	if name == "" || strings.HasPrefix(name, "func") || strings.Contains(name, ".func") {
		return "anonymous"
	}
	return name
}
