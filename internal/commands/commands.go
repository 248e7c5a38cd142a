package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/spf13/pflag"
)

// prefix is accepted in front of a console line and ignored ("cmd grid --hide").
const prefix = "cmd"

var (
	ErrMissingCommand = errors.New("missing command")
	ErrUnknownCommand = errors.New("unknown command")
)

// Command is a console command with its own flags. Run receives the positional arguments
// left after flag parsing and can read flag state through the variables bound to FlagSet.
type Command struct {
	Name    string
	Usage   string
	FlagSet *pflag.FlagSet
	Run     func(args []string) error
}

// Registry holds commands by name. Add commands with Register; run them with Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// Register adds a command. A nil fs gets an empty flag set. Registering a name twice
// replaces the earlier command.
func (r *Registry) Register(name, usage string, fs *pflag.FlagSet, run func(args []string) error) {
	if fs == nil {
		fs = pflag.NewFlagSet(name, pflag.ContinueOnError)
	}
	fs.Usage = func() {}
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (*Command, bool) {
	c, ok := r.cmds[name]
	return c, ok
}

// Parse splits a console line into arguments using shell quoting rules, dropping an
// optional leading "cmd". An empty line yields no arguments.
func Parse(line string) ([]string, error) {
	args, err := shellwords.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", line, err)
	}
	if len(args) > 0 && args[0] == prefix {
		args = args[1:]
	}
	return args, nil
}

// Execute runs the command named by args[0] with args[1:] as flags and positionals. Flags
// start from their defaults on every call.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return ErrMissingCommand
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	resetFlags(cmd.FlagSet)
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return cmd.Run(cmd.FlagSet.Args())
}

// ExecuteLine parses line and executes it. Blank lines do nothing.
func (r *Registry) ExecuteLine(line string) error {
	args, err := Parse(line)
	if err != nil || len(args) == 0 {
		return err
	}
	return r.Execute(args)
}

// Help returns one usage line per command.
func (r *Registry) Help() string {
	var b strings.Builder
	for _, n := range r.Names() {
		c := r.cmds[n]
		fmt.Fprintf(&b, "%s %s", n, c.Usage)
		if flags := flagNames(c.FlagSet); flags != "" {
			b.WriteString("  [" + flags + "]")
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func flagNames(fs *pflag.FlagSet) string {
	var names []string
	fs.VisitAll(func(f *pflag.Flag) {
		names = append(names, "--"+f.Name)
	})
	return strings.Join(names, " ")
}

// resetFlags puts every flag back to its default so state from a previous run does not
// leak into the next.
func resetFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}
