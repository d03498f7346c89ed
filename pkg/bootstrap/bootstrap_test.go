package bootstrap

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"

	"github.com/shuldan/voyage/pkg/app"
	"github.com/shuldan/voyage/pkg/console"
	"github.com/shuldan/voyage/pkg/container"
	"github.com/shuldan/voyage/pkg/contracts"
	"github.com/shuldan/voyage/pkg/logger"
)

type pingCommand struct {
	ran bool
}

func (p *pingCommand) Name() string {
	return "ping"
}

func (p *pingCommand) Description() string {
	return "Reply with pong"
}

func (p *pingCommand) Group() string {
	return ""
}

func (p *pingCommand) Configure(*flag.FlagSet) {}

func (p *pingCommand) Validate(context.Context, *console.Input) error {
	return nil
}

func (p *pingCommand) Execute(_ context.Context, in *console.Input) error {
	p.ran = true
	_, err := in.Stdout.Write([]byte("pong"))
	return err
}

func TestNew_Environment(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want string
	}{
		{"default", "", "development"},
		{"from env", "production", "production"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENVIRONMENT", tt.env)
			info := New("svc", "1.0.0", "SVC_").Info()
			if info.Environment != tt.want || info.AppName != "svc" || info.Version != "1.0.0" {
				t.Errorf("unexpected info %+v", info)
			}
		})
	}
}

func TestCreateApp_RunsCommand(t *testing.T) {
	t.Cleanup(func() { container.EnterWith(nil) })

	var out bytes.Buffer
	cmd := &pingCommand{}
	a, err := New("svc", "1.0.0", "").
		WithOptions(app.WithoutEnvFiles(), app.WithoutFileConfig()).
		WithLogger(logger.WithWriter(&out)).
		WithCommands(cmd).
		WithConsoleOptions(console.WithArgs("ping"), console.WithOutput(&out)).
		CreateApp()
	if err != nil {
		t.Fatal(err)
	}

	if a.Info().AppName != "svc" {
		t.Errorf("app info should be passed through, got %+v", a.Info())
	}
	if err := a.Launch(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !cmd.ran || !strings.Contains(out.String(), "pong") {
		t.Error("command should run on launch")
	}

	l, err := container.ResolveAs[contracts.Logger](context.Background(), a.Container(), contracts.LoggerName)
	if err != nil || l == nil || l == a.Logger() {
		t.Errorf("logger plugin should replace the default binding, got %v, %v", l, err)
	}
}

func TestCreateApp_RejectsNilPlugin(t *testing.T) {
	_, err := New("svc", "1.0.0", "").WithPlugins(nil).CreateApp()
	if err == nil {
		t.Error("expected nil plugin to be rejected")
	}
}
