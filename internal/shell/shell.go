package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/bpshell/bpsh/internal/session"
	"github.com/bpshell/bpsh/internal/workflow"
)

const exitCommand = "exit"

var (
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6"))
	focusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
)

// Shell drives one interactive session over a workflow. Each prompt cycle
// re-evaluates the command guards, offers the available commands, prompts
// for the chosen command's parameters and prints the resulting status.
type Shell struct {
	registry []Command
	sess     *session.Context
	out      io.Writer
}

// New creates a shell for the given workflow, writing output to stdout.
func New(w *workflow.Workflow) *Shell {
	return &Shell{
		registry: Registry(w),
		sess:     w.Session(),
		out:      os.Stdout,
	}
}

// Run runs the prompt loop until the user exits or aborts. It requires a
// terminal on stdout.
func (s *Shell) Run(ctx context.Context) error {
	if !isTerminal() {
		return errors.New("the interactive shell requires a terminal")
	}

	fmt.Fprintln(s.out, bannerStyle.Render(Banner()))
	fmt.Fprintln(s.out)

	for {
		name, err := s.promptCommand(ctx)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("prompt: %w", err)
		}
		if name == exitCommand {
			return nil
		}

		params, err := s.promptParams(ctx, name)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				// Back out of the command, not the shell.
				continue
			}
			return fmt.Errorf("prompt: %w", err)
		}

		out, err := Dispatch(ctx, s.registry, name, params)
		if err != nil {
			fmt.Fprintln(s.out, err)
			continue
		}
		fmt.Fprintln(s.out, out)
		fmt.Fprintln(s.out)
	}
}

// promptCommand offers the currently available commands plus exit.
func (s *Shell) promptCommand(ctx context.Context) (string, error) {
	available := Available(s.registry)

	options := make([]huh.Option[string], 0, len(available)+1)
	for _, cmd := range available {
		options = append(options, huh.NewOption(cmd.Name, cmd.Name))
	}
	options = append(options, huh.NewOption(exitCommand, exitCommand))

	var choice string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("bpsh " + focusStyle.Render(s.focusLabel())).
				Options(options...).
				Value(&choice),
		),
	).RunWithContext(ctx)
	if err != nil {
		return "", err
	}
	return choice, nil
}

// promptParams collects the named command's parameters. All parameters are
// required.
func (s *Shell) promptParams(ctx context.Context, name string) (map[string]string, error) {
	var cmd *Command
	for i := range s.registry {
		if s.registry[i].Name == name {
			cmd = &s.registry[i]
			break
		}
	}
	if cmd == nil || len(cmd.Params) == 0 {
		return nil, nil
	}

	values := make([]string, len(cmd.Params))
	fields := make([]huh.Field, len(cmd.Params))
	for i, p := range cmd.Params {
		fields[i] = huh.NewInput().
			Title(p.Title).
			Placeholder(p.Placeholder).
			Validate(requireValue).
			Value(&values[i])
	}

	if err := huh.NewForm(huh.NewGroup(fields...)).RunWithContext(ctx); err != nil {
		return nil, err
	}

	params := make(map[string]string, len(cmd.Params))
	for i, p := range cmd.Params {
		params[p.Name] = strings.TrimSpace(values[i])
	}
	return params, nil
}

// focusLabel summarizes the session focus for the prompt title.
func (s *Shell) focusLabel() string {
	switch s.sess.State() {
	case session.StateBuilding:
		return fmt.Sprintf("[building %s]", s.sess.Value())
	case session.StateConnected:
		return fmt.Sprintf("[connected %s]", s.sess.Value())
	default:
		return "[no focus]"
	}
}

func requireValue(v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("a value is required")
	}
	return nil
}

func isTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
