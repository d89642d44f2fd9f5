// Package services contains domain services that have no infrastructure
// dependencies.
package services

import (
	"os"

	"github.com/reglet-dev/lintgate/internal/domain/entities"
)

// BuildArgs assembles the analyzer arguments: the config flag, any extra
// args, then the targets verbatim and in order. An empty target list adds
// nothing, leaving target selection to the analyzer.
func BuildArgs(cfg entities.GateConfig, targets []string) []string {
	args := make([]string, 0, 1+len(cfg.ExtraArgs)+len(targets))
	if cfg.ConfigPath != "" {
		args = append(args, cfg.ConfigFlag+"="+cfg.ConfigPath)
	}
	args = append(args, cfg.ExtraArgs...)
	args = append(args, targets...)
	return args
}

// AugmentSearchPath returns a copy of vars with extra appended to the
// search-path variable, separated by the OS list separator. The variable
// is created if absent. vars itself is never modified.
func AugmentSearchPath(vars map[string]string, name, extra string) map[string]string {
	out := make(map[string]string, len(vars)+1)
	for k, v := range vars {
		out[k] = v
	}
	if name == "" || extra == "" {
		return out
	}

	if current := out[name]; current != "" {
		out[name] = current + string(os.PathListSeparator) + extra
	} else {
		out[name] = extra
	}
	return out
}
