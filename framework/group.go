package framework

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"revoltkit/args"
)

// Command is one named command. Identity during resolution is string
// equality on the name or any alias; nothing is mutated after registration.
type Command struct {
	Name        string
	Aliases     []string
	Description string
	Usage       string
	Examples    []string
	Args        args.Config
	Handler     Handler
}

func NewCommand(name string, handler Handler) *Command {
	return &Command{Name: name, Handler: handler}
}

func (c *Command) WithAliases(aliases ...string) *Command {
	c.Aliases = aliases
	return c
}

func (c *Command) WithDescription(description string) *Command {
	c.Description = description
	return c
}

func (c *Command) WithUsage(usage string) *Command {
	c.Usage = usage
	return c
}

func (c *Command) WithExamples(examples ...string) *Command {
	c.Examples = examples
	return c
}

func (c *Command) WithArgs(cfg args.Config) *Command {
	c.Args = cfg
	return c
}

// Group is a named, nestable namespace of commands. Subgroups and commands
// resolve in declaration order; registration order is significant when
// names overlap.
type Group struct {
	name           string
	groups         []*Group
	commands       []*Command
	defaultCommand *Command
}

// NewGroup panics on an empty name; only the root, built with Root, is
// anonymous.
func NewGroup(name string) *Group {
	if name == "" {
		panic("framework: group name must not be empty")
	}
	return &Group{name: name}
}

// Root builds the anonymous top of a command tree. Its direct subgroups
// act as categories: their contents resolve without the group name.
func Root(groups ...*Group) *Group {
	return &Group{groups: groups}
}

func (g *Group) Name() string {
	return g.name
}

func (g *Group) Groups() []*Group {
	return g.groups
}

func (g *Group) Commands() []*Command {
	return g.commands
}

func (g *Group) DefaultCommand() *Command {
	return g.defaultCommand
}

func (g *Group) AddGroup(sub *Group) *Group {
	g.groups = append(g.groups, sub)
	return g
}

func (g *Group) AddCommand(cmd *Command) *Group {
	g.commands = append(g.commands, cmd)
	return g
}

// Default sets the command invoked when this group's name matches but no
// further token resolves, or when nothing inside the group matches.
func (g *Group) Default(cmd *Command) *Group {
	g.defaultCommand = cmd
	return g
}

// Resolve matches an input string (prefix already stripped) against the
// tree and returns the command plus its remaining argument text. Matching
// is first-match-wins in declaration order, never longest-match.
func (g *Group) Resolve(input string) (*Command, string, bool) {
	for _, sub := range g.groups {
		if cmd, rem, ok := sub.resolveBody(input); ok {
			return cmd, rem, true
		}
	}
	return g.resolveLocal(input)
}

func (g *Group) resolveBody(input string) (*Command, string, bool) {
	for _, sub := range g.groups {
		rest, ok := matchName(input, sub.name)
		if !ok {
			continue
		}
		if rest == "" {
			// The group name alone was typed: the subgroup's default
			// answers, no recursion.
			if sub.defaultCommand != nil {
				return sub.defaultCommand, "", true
			}
			continue
		}
		if cmd, rem, matched := sub.resolveBody(rest); matched {
			return cmd, rem, true
		}
	}

	return g.resolveLocal(input)
}

func (g *Group) resolveLocal(input string) (*Command, string, bool) {
	for _, cmd := range g.commands {
		if rest, ok := matchName(input, cmd.Name); ok {
			return cmd, rest, true
		}
		for _, alias := range cmd.Aliases {
			if rest, ok := matchName(input, alias); ok {
				return cmd, rest, true
			}
		}
	}

	if g.defaultCommand != nil {
		return g.defaultCommand, strings.TrimLeftFunc(input, unicode.IsSpace), true
	}

	return nil, "", false
}

// matchName checks that name is a prefix of input followed by end-of-string
// or whitespace, and returns the remainder with leading whitespace trimmed.
func matchName(input, name string) (string, bool) {
	if !strings.HasPrefix(input, name) {
		return "", false
	}

	rest := input[len(name):]
	if rest == "" {
		return "", true
	}

	r, _ := utf8.DecodeRuneInString(rest)
	if !unicode.IsSpace(r) {
		return "", false
	}

	return strings.TrimLeftFunc(rest, unicode.IsSpace), true
}
