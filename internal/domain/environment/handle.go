// Package environment models the isolated execution context the analyzer
// runs in.
package environment

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// State is the activation state of a Handle.
type State string

const (
	// StateInactive is the initial state.
	StateInactive State = "inactive"
	// StateActive is reached once and kept for the handle's lifetime.
	StateActive State = "active"
)

// DefaultActivationScript is the activation artifact relative to the environment root.
const DefaultActivationScript = "bin/activate"

// Handle identifies an isolated execution environment.
//
// Activation is a one-way transition. The activated variables are held
// on the handle instead of being written into the process environment.
type Handle struct {
	root   string
	script string
	state  State
	vars   map[string]string
}

// NewHandle creates an inactive handle. script may be relative to root.
func NewHandle(root, script string) *Handle {
	if script == "" {
		script = DefaultActivationScript
	}
	if !filepath.IsAbs(script) {
		script = filepath.Join(root, script)
	}
	return &Handle{
		root:   root,
		script: script,
		state:  StateInactive,
	}
}

// Root returns the environment root directory.
func (h *Handle) Root() string { return h.root }

// ActivationScript returns the path of the activation artifact.
func (h *Handle) ActivationScript() string { return h.script }

// State returns the current activation state.
func (h *Handle) State() State { return h.state }

// IsActive reports whether the handle has been activated.
func (h *Handle) IsActive() bool { return h.state == StateActive }

// MarkActive records the activated variables and moves the handle to
// StateActive. It fails if the handle is already active.
func (h *Handle) MarkActive(vars map[string]string) error {
	if h.state == StateActive {
		return fmt.Errorf("environment %s is already active", h.root)
	}
	h.vars = make(map[string]string, len(vars))
	for k, v := range vars {
		h.vars[k] = v
	}
	h.state = StateActive
	return nil
}

// Vars returns a copy of the activated variables. It is empty before activation.
func (h *Handle) Vars() map[string]string {
	out := make(map[string]string, len(h.vars))
	for k, v := range h.vars {
		out[k] = v
	}
	return out
}

// Lookup returns a single activated variable.
func (h *Handle) Lookup(key string) (string, bool) {
	v, ok := h.vars[key]
	return v, ok
}

// ParseEnviron turns KEY=VALUE pairs into a map. Later entries win.
func ParseEnviron(environ []string) map[string]string {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = v
	}
	return vars
}

// Environ turns a variable map into sorted KEY=VALUE pairs.
func Environ(vars map[string]string) []string {
	out := make([]string, 0, len(vars))
	for k, v := range vars {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
