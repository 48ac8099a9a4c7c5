package design

import (
	"os"

	"github.com/visiboole/vbcore/pkg/database"
	"github.com/visiboole/vbcore/pkg/errcode"
	"github.com/visiboole/vbcore/pkg/hdl"
	"github.com/visiboole/vbcore/pkg/instantiate"
	"github.com/visiboole/vbcore/pkg/solver"
)

// PathResolver maps a module identifier, as named in an
// "Inst = Module(...);" instantiation statement, to a loadable file
// path. The core never guesses a file layout itself; the caller
// supplies this function.
type PathResolver func(module string) (string, error)

// resolverCache is shared by every FileResolver derived from the same
// root design, so the whole instance tree sees one parsed-statement
// cache per resolved path: multiple instantiations of the same module
// share a cached parsed template, each bound fresh into its own
// Database.
type resolverCache struct {
	locate PathResolver
	parsed map[string][]*hdl.Statement
}

// FileResolver implements instantiate.Resolver by parsing (once per
// path, cached) and binding (fresh per instance) a child Design.
type FileResolver struct {
	cache *resolverCache
	depth int
}

// NewFileResolver returns a root FileResolver backed by locate.
func NewFileResolver(locate PathResolver) *FileResolver {
	return &FileResolver{cache: &resolverCache{locate: locate, parsed: make(map[string][]*hdl.Statement)}}
}

// Resolve loads and binds the named module as a new child Design.
// Depth is checked against instantiate.MaxDepth before loading so a
// self-referential module chain fails fast.
func (r *FileResolver) Resolve(module string) (instantiate.Solvable, error) {
	if r.depth+1 > instantiate.MaxDepth {
		return nil, &errcode.InstantiationError{Path: module, Reason: "maximum instantiation depth exceeded"}
	}

	path, err := r.cache.locate(module)
	if err != nil {
		return nil, &errcode.InstantiationError{Path: module, Reason: "module not found", Cause: err}
	}

	stmts, ok := r.cache.parsed[path]
	if !ok {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, &errcode.IoError{Path: path, Cause: err}
		}
		stmts, _, err = parseStatements(path, string(src))
		if err != nil {
			return nil, err
		}
		r.cache.parsed[path] = stmts
	}

	child := &Design{
		File:     path,
		DB:       database.New(path),
		clock:    solver.NewClockEngine(),
		resolver: &FileResolver{cache: r.cache, depth: r.depth + 1},
		nav:      NewNavigator(),
	}
	child.instances = instantiate.NewEngine(child.resolver)
	if err := child.bind(stmts); err != nil {
		return nil, err
	}
	return child, nil
}
