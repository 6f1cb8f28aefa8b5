package ecs

import (
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// PrefabResourceLimits bounds how long and how much memory a single prefab
// script may consume, mirroring the teacher's ResourceLimits shape from its
// unfinished mod sandbox.
type PrefabResourceLimits struct {
	MaxExecutionTime time.Duration
	// MaxMemoryKB is carried for parity with the teacher's ResourceLimits
	// struct; gopher-lua exposes no VM memory ceiling to enforce it against.
	MaxMemoryKB int
}

// DefaultPrefabResourceLimits returns conservative limits suitable for a
// prefab that just populates a handful of components.
func DefaultPrefabResourceLimits() PrefabResourceLimits {
	return PrefabResourceLimits{
		MaxExecutionTime: 50 * time.Millisecond,
		MaxMemoryKB:      4096,
	}
}

// PrefabRegistry holds named Lua scripts ("prefabs") that can be
// instantiated against a Registry: each script is run in its own
// sandboxed VM and populates a fresh entity by calling back into Go
// through a bridge table.
type PrefabRegistry struct {
	mu      sync.RWMutex
	scripts map[string]string
	limits  PrefabResourceLimits
	r       *Registry
}

func newPrefabRegistry(r *Registry) *PrefabRegistry {
	return &PrefabRegistry{
		scripts: make(map[string]string),
		limits:  DefaultPrefabResourceLimits(),
		r:       r,
	}
}

// SetResourceLimits overrides the limits applied to every subsequent
// Instantiate call.
func (p *PrefabRegistry) SetResourceLimits(limits PrefabResourceLimits) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.limits = limits
}

// Register associates name with the given Lua source. Registering again
// under the same name replaces the previous script.
func (p *PrefabRegistry) Register(name, source string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scripts[name] = source
}

// Has reports whether name has a registered script.
func (p *PrefabRegistry) Has(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.scripts[name]
	return ok
}

// Instantiate spawns a fresh entity and runs name's script against it in a
// sandboxed Lua VM, returning a PrefabNotFound error if name isn't
// registered. The script reaches the entity through the global `entity`
// table: `entity.id()` and `entity.emplace(componentName, fields...)`,
// dispatched through componentFactories.
func (p *PrefabRegistry) Instantiate(name string, componentFactories map[string]PrefabComponentFactory) (Entity, error) {
	p.mu.RLock()
	source, ok := p.scripts[name]
	limits := p.limits
	p.mu.RUnlock()
	if !ok {
		return Null, prefabNotFoundErr(name)
	}

	e := p.r.Spawn()

	state := lua.NewState()
	defer state.Close()
	applyPrefabSandbox(state)

	bridge := newPrefabBridge(p.r, e, componentFactories)
	bridge.install(state)

	// gopher-lua offers no preemption hook, so a runaway script can't
	// actually be stopped here; on timeout the caller gets its error back
	// immediately and the entity is killed, but the abandoned goroutine
	// keeps running to completion in the background.
	done := make(chan error, 1)
	go func() {
		done <- state.DoString(source)
	}()

	select {
	case err := <-done:
		if err != nil {
			p.r.Kill(e)
			return Null, fmt.Errorf("prefab %q: %w", name, err)
		}
	case <-time.After(limits.MaxExecutionTime):
		p.r.Kill(e)
		return Null, fmt.Errorf("prefab %q: exceeded execution time budget", name)
	}

	return e, nil
}

// applyPrefabSandbox strips the Lua standard library down to what a
// prefab script legitimately needs: no filesystem, no process control, no
// module loading.
func applyPrefabSandbox(state *lua.LState) {
	state.SetGlobal("io", lua.LNil)
	state.SetGlobal("os", lua.LNil)
	state.SetGlobal("dofile", lua.LNil)
	state.SetGlobal("loadfile", lua.LNil)
	state.SetGlobal("debug", lua.LNil)
	state.SetGlobal("package", lua.LNil)
	state.SetGlobal("require", lua.LNil)
}

// PrefabComponentFactory builds and emplaces a component onto e from the
// raw field values a Lua script passed to entity.emplace(name, ...).
type PrefabComponentFactory func(r *Registry, e Entity, args []lua.LValue) error

type prefabBridge struct {
	r         *Registry
	e         Entity
	factories map[string]PrefabComponentFactory
}

func newPrefabBridge(r *Registry, e Entity, factories map[string]PrefabComponentFactory) *prefabBridge {
	return &prefabBridge{r: r, e: e, factories: factories}
}

func (b *prefabBridge) install(state *lua.LState) {
	entityTable := state.NewTable()

	state.SetField(entityTable, "id", state.NewFunction(func(l *lua.LState) int {
		l.Push(lua.LNumber(b.e.Index()))
		return 1
	}))

	state.SetField(entityTable, "emplace", state.NewFunction(func(l *lua.LState) int {
		name := l.ToString(1)
		factory, ok := b.factories[name]
		if !ok {
			l.RaiseError("unknown component %q", name)
			return 0
		}
		args := make([]lua.LValue, 0, l.GetTop()-1)
		for i := 2; i <= l.GetTop(); i++ {
			args = append(args, l.Get(i))
		}
		if err := factory(b.r, b.e, args); err != nil {
			l.RaiseError("emplace %q: %v", name, err)
		}
		return 0
	}))

	state.SetGlobal("entity", entityTable)
}
