package console

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"text/template"
)

var helpTemplate = template.Must(template.New("help").Parse(`Usage: command [options] [arguments]
{{ range . }}
{{ .Name }}:{{ range .Commands }}
  {{ .Name }}  {{ .Description }}{{ end }}
{{ end }}`))

type HelpCommand struct {
	registry *Registry
	command  string
}

func NewHelpCommand(registry *Registry) *HelpCommand {
	return &HelpCommand{
		registry: registry,
	}
}

func (h *HelpCommand) Name() string {
	return "help"
}

func (h *HelpCommand) Description() string {
	return "Display help for commands"
}

func (h *HelpCommand) Group() string {
	return systemGroup
}

func (h *HelpCommand) Configure(flags *flag.FlagSet) {
	flags.StringVar(&h.command, "command", "", "Show help for specific command")
}

func (h *HelpCommand) Validate(context.Context, *Input) error {
	return nil
}

func (h *HelpCommand) Execute(_ context.Context, in *Input) error {
	name := h.command
	if name == "" {
		name = in.Arg(0)
	}
	if name != "" {
		return h.showCommandHelp(in, name)
	}
	return h.showGeneralHelp(in)
}

type helpLine struct {
	Name        string
	Description string
}

type helpGroup struct {
	Name     string
	Commands []helpLine
}

func (h *HelpCommand) showGeneralHelp(in *Input) error {
	groups := h.registry.Groups()
	data := make([]helpGroup, 0, len(groups))

	for _, g := range groups {
		width := 0
		for _, cmd := range g.Commands {
			width = max(width, len(cmd.Name()))
		}

		lines := make([]helpLine, 0, len(g.Commands))
		for _, cmd := range g.Commands {
			lines = append(lines, helpLine{
				Name:        cmd.Name() + strings.Repeat(" ", width-len(cmd.Name())),
				Description: cmd.Description(),
			})
		}
		data = append(data, helpGroup{Name: g.Name, Commands: lines})
	}

	return helpTemplate.Execute(in.Stdout, data)
}

func (h *HelpCommand) showCommandHelp(in *Input, commandName string) error {
	command, exists := h.registry.Get(commandName)
	if !exists {
		return ErrHelpCommandNotFound.WithDetail("command", commandName)
	}

	if _, err := fmt.Fprintf(in.Stdout, "%s - %s\n\nOptions:\n", command.Name(), command.Description()); err != nil {
		return err
	}

	newFlagSet(command, in.Stdout).PrintDefaults()

	return nil
}
