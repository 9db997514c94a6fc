package depm

import (
	"fmt"
	"nakofront/common"
	"sort"
)

// Universe is the set of every plugin known to the front end.  Plugins are
// loaded once and shared read-only by all analysis environments.
type Universe struct {
	// plugins maps plugin names to their things by lookup key.
	plugins map[string]map[string]*DeclaredThing

	// order is the order plugins were added in.
	order []string
}

// NewUniverse creates a new universe containing only the system plugin.
func NewUniverse() *Universe {
	u := &Universe{plugins: make(map[string]map[string]*DeclaredThing)}
	u.AddPlugin(common.SystemPluginName, systemThings())
	return u
}

// AddPlugin adds a plugin to the universe.  Adding a plugin with the same name
// replaces it.  For things sharing a lookup key, the first one wins.
func (u *Universe) AddPlugin(name string, things []*DeclaredThing) {
	if _, ok := u.plugins[name]; !ok {
		u.order = append(u.order, name)
	}

	table := make(map[string]*DeclaredThing, len(things))
	for _, dt := range things {
		if _, ok := table[dt.Key]; !ok {
			table[dt.Key] = dt
		}
	}

	u.plugins[name] = table
}

// HasPlugin returns whether the universe contains the named plugin.
func (u *Universe) HasPlugin(name string) bool {
	_, ok := u.plugins[name]
	return ok
}

// PluginNames returns the names of the plugins in the order they were added.
func (u *Universe) PluginNames() []string {
	return append([]string(nil), u.order...)
}

// -----------------------------------------------------------------------------

// runtimePlugins lists the plugins each runtime makes available in addition to
// the system plugin.
var runtimePlugins = map[string][]string{
	"cnako": {"plugin_node", "plugin_csv", "plugin_datetime", "plugin_math", "plugin_promise", "plugin_test"},
	"wnako": {"plugin_browser", "plugin_csv", "plugin_datetime", "plugin_math", "plugin_promise", "plugin_test", "plugin_turtle"},
	"snako": {"plugin_snako"},
}

// IsRuntime returns whether name is a known runtime.
func IsRuntime(name string) bool {
	_, ok := runtimePlugins[name]
	return ok
}

// Env is the environment one module is analyzed in: the runtime's plugin set
// and the exported symbol tables of the modules it may import.
type Env struct {
	// The universe the environment draws plugins from.
	Universe *Universe

	// The name of the runtime.
	Runtime string

	// Imports maps module names to their exported symbols.
	Imports map[string]*Module

	// enabled is the ordered list of enabled plugin names.
	enabled []string
}

// NewEnv creates a new environment for the given runtime.  The system plugin
// and every plugin the runtime provides that the universe contains is enabled.
func NewEnv(u *Universe, runtime string) *Env {
	env := &Env{
		Universe: u,
		Runtime:  runtime,
		Imports:  make(map[string]*Module),
	}

	env.enabled = append(env.enabled, common.SystemPluginName)
	for _, name := range runtimePlugins[runtime] {
		if u.HasPlugin(name) {
			env.enabled = append(env.enabled, name)
		}
	}

	return env
}

// EnablePlugin enables a plugin of the universe in this environment.
func (env *Env) EnablePlugin(name string) error {
	if !env.Universe.HasPlugin(name) {
		return fmt.Errorf("%w: %s", ErrUnknownPlugin, name)
	}

	for _, enabled := range env.enabled {
		if enabled == name {
			return nil
		}
	}

	env.enabled = append(env.enabled, name)
	return nil
}

// EnabledPlugins returns the names of the enabled plugins in lookup order.
func (env *Env) EnabledPlugins() []string {
	return append([]string(nil), env.enabled...)
}

// AddImport makes a module's exported symbols available for import under the
// module's name.
func (env *Env) AddImport(mod *Module) {
	env.Imports[common.ModuleNameFromPath(mod.Name)] = mod.Exported()
}

// LookupPlugin looks up a thing in the enabled plugins in lookup order.
func (env *Env) LookupPlugin(key string) (*DeclaredThing, bool) {
	for _, name := range env.enabled {
		if dt, ok := env.Universe.plugins[name][key]; ok {
			return dt, true
		}
	}

	return nil, false
}

// LookupImport looks up an exported thing in the given imported modules.  The
// funcs flag selects between functions and variables/constants.
func (env *Env) LookupImport(imports []string, key string, funcs bool) (*DeclaredThing, bool) {
	for _, name := range imports {
		mod, ok := env.Imports[common.ModuleNameFromPath(name)]
		if !ok {
			continue
		}

		var dt *DeclaredThing
		if funcs {
			dt, ok = mod.Funcs[key]
		} else {
			dt, ok = mod.Globals[key]
		}

		if ok && dt.IsExport {
			return dt, true
		}
	}

	return nil, false
}

// PluginNamesFor returns the sorted names of the things of the enabled plugins.
// It is used to build suggestions.
func (env *Env) PluginNamesFor(kindFilter func(*DeclaredThing) bool) []string {
	var names []string
	for _, name := range env.enabled {
		for _, dt := range env.Universe.plugins[name] {
			if kindFilter == nil || kindFilter(dt) {
				names = append(names, dt.Name)
			}
		}
	}

	sort.Strings(names)
	return names
}
