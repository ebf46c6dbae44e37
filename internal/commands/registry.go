package commands

import (
	"fmt"
	"sort"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/sahilm/fuzzy"
)

// Registry maps command names and aliases to commands.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Command
	aliases map[string]string // alias -> primary name
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]Command),
		aliases: make(map[string]string),
	}
}

// Register adds c under its name and aliases. A name or alias may only be
// taken once across both.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := append([]string{c.Name()}, c.Aliases()...)
	for _, k := range keys {
		if r.taken(k) {
			return fmt.Errorf("command name already registered: %s", k)
		}
	}
	r.byName[c.Name()] = c
	for _, alias := range c.Aliases() {
		r.aliases[alias] = c.Name()
	}
	return nil
}

func (r *Registry) taken(name string) bool {
	_, cmd := r.byName[name]
	_, alias := r.aliases[name]
	return cmd || alias
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if primary, ok := r.aliases[name]; ok {
		name = primary
	}
	cmd, ok := r.byName[name]
	return cmd, ok
}

// All returns the commands sorted by primary name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)

	cmds := make([]Command, len(names))
	for i, name := range names {
		cmds[i] = r.byName[name]
	}
	return cmds
}

// Suggest returns the primary name of the command closest to a mistyped
// name, or "" when nothing is close. A fuzzy (subsequence) match on a name
// or alias wins, then names at most two edits away.
func (r *Registry) Suggest(name string) string {
	if name == "" {
		return ""
	}
	var keys, primary []string
	for _, cmd := range r.All() {
		for _, k := range append([]string{cmd.Name()}, cmd.Aliases()...) {
			keys = append(keys, k)
			primary = append(primary, cmd.Name())
		}
	}

	if len(name) >= 2 {
		if matches := fuzzy.Find(name, keys); len(matches) > 0 {
			return primary[matches[0].Index]
		}
	}

	best, bestDist := "", 3
	for i, k := range keys {
		if d := levenshtein.ComputeDistance(name, k); d < bestDist && d < len(name) {
			best, bestDist = primary[i], d
		}
	}
	return best
}

// DefaultRegistry holds the commands registered from init.
var DefaultRegistry = NewRegistry()

// Register adds c to DefaultRegistry and panics on a name clash.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
