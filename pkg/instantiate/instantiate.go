// Package instantiate implements the Visiboole core's recursive
// sub-module instantiation engine: bind caller scalars
// into a resolved child design's header inputs, run the child, bind
// its header outputs back to the caller, and repeat until the
// caller-visible outputs stop changing. It depends only on a small
// Solvable interface rather than the design package directly, so the
// design package (which owns the concrete Design type and recursively
// resolves child designs) can sit above this one without an import
// cycle — the same decoupling applied between pkg/chain
// (generic device tree) and pkg/bsr (domain-specific runtime built on
// top of it).
package instantiate

import "github.com/visiboole/vbcore/pkg/errcode"

// MaxDepth bounds how many levels of nested instantiation a design
// tree may contain; the caller that recursively resolves child designs
// is responsible for counting depth and raising InstantiationError once
// this ceiling is crossed.
const MaxDepth = 64

// maxPasses bounds the bind-down/run/bind-up rerun loop per tick or
// solve.
const maxPasses = 256

// Solvable is the subset of Design's behavior the instantiation engine
// needs from a child design: reading/writing its header-named scalars
// and running its own combinational solve or clock tick.
type Solvable interface {
	HeaderInputs() []string
	HeaderOutputs() []string
	GetValue(name string) (bool, error)
	SetValue(name string, value bool)
	Solve() error
	Tick() error
}

// Resolver loads (and the caller typically caches) the child design
// named by path.
type Resolver interface {
	Resolve(path string) (Solvable, error)
}

// Instance binds one "Inst = Module(in1 in2 : out1 out2);" call site to
// its resolved child.
type Instance struct {
	Name          string // instance identifier, e.g. "u1"
	ModulePath    string // path the Resolver loads
	CallerInputs  []string
	CallerOutputs []string

	child Solvable
}

// Path returns the dotted navigation path used by OpenInstantiation/
// CloseInstantiation, given the parent's own path.
func (inst *Instance) Path(parentPath string) string {
	if parentPath == "" {
		return inst.Name
	}
	return parentPath + "." + inst.Name
}

// Engine runs a Design's direct child instances.
type Engine struct {
	Resolver  Resolver
	Instances []*Instance
}

// NewEngine returns an Engine with no instances yet; instances are
// appended as the parser encounters instantiation statements.
func NewEngine(resolver Resolver) *Engine {
	return &Engine{Resolver: resolver}
}

// Add registers a new instance, to be resolved lazily on first Run.
func (eng *Engine) Add(inst *Instance) {
	eng.Instances = append(eng.Instances, inst)
}

// Run performs bind-down/run/bind-up for every instance, repeating the
// whole pass while any bound caller-side output changed, until
// quiescent or maxPasses trips. owner is the parent
// Design whose scalars the instances' argument lists name.
func (eng *Engine) Run(owner interface {
	GetValue(name string) (bool, error)
	SetValue(name string, value bool)
}, ticking bool) error {
	for _, inst := range eng.Instances {
		if inst.child == nil {
			child, err := eng.Resolver.Resolve(inst.ModulePath)
			if err != nil {
				return &errcode.InstantiationError{Path: inst.ModulePath, Reason: "failed to resolve child design", Cause: err}
			}
			if len(inst.CallerInputs) != len(child.HeaderInputs()) || len(inst.CallerOutputs) != len(child.HeaderOutputs()) {
				return &errcode.InstantiationError{Path: inst.ModulePath, Reason: "argument list arity does not match child header"}
			}
			inst.child = child
		}
	}

	for pass := 0; pass < maxPasses; pass++ {
		changed := false
		for _, inst := range eng.Instances {
			child := inst.child
			for i, callerName := range inst.CallerInputs {
				v, err := owner.GetValue(callerName)
				if err != nil {
					return err
				}
				child.SetValue(child.HeaderInputs()[i], v)
			}

			var err error
			if ticking {
				err = child.Tick()
			} else {
				err = child.Solve()
			}
			if err != nil {
				return &errcode.InstantiationError{Path: inst.ModulePath, Reason: "child run failed", Cause: err}
			}

			for i, callerName := range inst.CallerOutputs {
				v, err := child.GetValue(child.HeaderOutputs()[i])
				if err != nil {
					return err
				}
				old, err := owner.GetValue(callerName)
				if err != nil {
					return err
				}
				if old != v {
					changed = true
				}
				owner.SetValue(callerName, v)
			}
		}
		if !changed {
			return nil
		}
	}
	return &errcode.InstantiationError{Reason: "instance pass did not converge"}
}
