package facade

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/shuldan/voyage/pkg/container"
)

type greeter interface {
	Greet() string
}

type englishGreeter struct{}

func (englishGreeter) Greet() string { return "bar" }

type rootService struct{}

type childService struct{}

func TestFacade_ResolvesAliasedInterface(t *testing.T) {
	container.Alias[greeter]("SomeValue")
	t.Cleanup(func() { container.AliasType(reflect.TypeFor[greeter](), "") })

	c := container.New()
	c.When(reflect.TypeFor[greeter]()).Instance(container.Type(func(context.Context, []any) (greeter, error) {
		return englishGreeter{}, nil
	}))

	if !c.Has("SomeValue") {
		t.Fatal("registration should use the alias")
	}

	err := container.Run(context.Background(), c, func(ctx context.Context) error {
		g, err := Of[greeter](ctx)
		if err != nil {
			return err
		}
		if g == nil || g.Greet() != "bar" {
			t.Errorf("expected concrete greeter, got %v", g)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestFacade_MatchesOnlyItsOwnName(t *testing.T) {
	container.Alias[childService]("Child")
	t.Cleanup(func() { container.AliasType(reflect.TypeFor[childService](), "") })

	c := container.New()
	rootDef := container.Type[*rootService](nil)
	childDef := container.Type[*childService](nil)
	c.When(rootDef).Instance(rootDef)
	c.When(childDef).Instance(childDef)

	ctx := container.WithContainer(context.Background(), c)

	root, err := Of[*rootService](ctx)
	if err != nil || root == nil {
		t.Errorf("expected rootService, got %v (%v)", root, err)
	}

	var childFacade Facade[*childService]
	if childFacade.Name() != "Child" {
		t.Errorf("expected alias Child, got %q", childFacade.Name())
	}
	child, err := childFacade.Resolve(ctx)
	if err != nil || child == nil {
		t.Errorf("expected childService, got %v (%v)", child, err)
	}
}

func TestFacade_UnboundReturnsZero(t *testing.T) {
	container.EnterWith(nil)

	v, err := Of[*rootService](context.Background())
	if err != nil || v != nil {
		t.Errorf("expected nil, got %v (%v)", v, err)
	}

	anon, err := Of[struct{ X int }](context.Background())
	if err != nil || anon.X != 0 {
		t.Errorf("expected zero value for unnamed type, got %v (%v)", anon, err)
	}
}

func TestFacade_UsesEnteredContainer(t *testing.T) {
	t.Cleanup(func() { container.EnterWith(nil) })

	c := container.New()
	c.When("rootService").Value(&rootService{})
	container.EnterWith(c)

	if v := MustOf[*rootService](context.Background()); v == nil {
		t.Error("expected value from entered container")
	}
}

func TestMustOf_PanicsOnError(t *testing.T) {
	testErr := errors.New("construction failed")
	c := container.New()
	c.When("rootService").Result(func(context.Context, *container.Container) (any, error) {
		return nil, testErr
	})
	ctx := container.WithContainer(context.Background(), c)

	defer func() {
		r := recover()
		if r != testErr {
			t.Errorf("expected panic with construction error, got %v", r)
		}
	}()
	MustOf[*rootService](ctx)
}
