package rsxgen

import (
	"go/ast"
	"go/token"
	"go/types"
	"sort"

	"golang.org/x/tools/go/ast/astutil"
)

// CloneSuffix is appended to captured identifiers under the move
// ownership discipline.
const CloneSuffix = "_clone"

// Captures is the result of capture analysis on one handler expression.
type Captures struct {
	// Names are the free identifiers of the handler, sorted.
	Names []string
	refs  map[*ast.Ident]bool
}

// Empty reports whether the handler captures nothing.
func (c *Captures) Empty() bool {
	return c == nil || len(c.Names) == 0
}

// scope is one level of names bound inside the handler.
type scope struct {
	names  map[string]bool
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{names: make(map[string]bool), parent: parent}
}

func (s *scope) declare(name string) {
	if name != "_" {
		s.names[name] = true
	}
}

func (s *scope) bound(name string) bool {
	for ; s != nil; s = s.parent {
		if s.names[name] {
			return true
		}
	}
	return false
}

// IsPredeclared reports whether name is a Go universe identifier such as
// nil, len or string.
func IsPredeclared(name string) bool {
	return types.Universe.Lookup(name) != nil
}

// AnalyzeCaptures collects the free identifiers of handler. Names bound
// inside the handler (parameters, results, := and var declarations, range
// variables) are not free; neither are selector field names or
// composite-literal keys. ignore, when non-nil, excludes further names such
// as imported packages and file-level declarations. Predeclared identifiers
// are always excluded.
func AnalyzeCaptures(handler ast.Expr, ignore func(string) bool) *Captures {
	w := &captureWalker{
		ignore: ignore,
		free:   make(map[string]bool),
		refs:   make(map[*ast.Ident]bool),
	}
	w.walk(handler, newScope(nil))

	names := make([]string, 0, len(w.free))
	for name := range w.free {
		names = append(names, name)
	}
	sort.Strings(names)
	return &Captures{Names: names, refs: w.refs}
}

// FreeIdents returns the sorted free identifiers of handler.
func FreeIdents(handler ast.Expr, ignore func(string) bool) []string {
	return AnalyzeCaptures(handler, ignore).Names
}

// RewriteCaptures renames every free identifier reference found by
// AnalyzeCaptures from x to x_clone. Bound names and selector fields are
// left alone. The handler is modified in place and returned.
func RewriteCaptures(handler ast.Expr, caps *Captures) ast.Expr {
	if caps.Empty() {
		return handler
	}
	result := astutil.Apply(handler, func(c *astutil.Cursor) bool {
		id, ok := c.Node().(*ast.Ident)
		if ok && caps.refs[id] {
			c.Replace(&ast.Ident{NamePos: id.NamePos, Name: id.Name + CloneSuffix})
		}
		return true
	}, nil)
	return result.(ast.Expr)
}

type captureWalker struct {
	ignore func(string) bool
	free   map[string]bool
	refs   map[*ast.Ident]bool
}

func (w *captureWalker) use(id *ast.Ident, s *scope) {
	name := id.Name
	if name == "_" || s.bound(name) || IsPredeclared(name) {
		return
	}
	if w.ignore != nil && w.ignore(name) {
		return
	}
	w.free[name] = true
	w.refs[id] = true
}

// declareFields binds the names of a parameter or result list.
func declareFields(fl *ast.FieldList, s *scope) {
	if fl == nil {
		return
	}
	for _, f := range fl.List {
		for _, n := range f.Names {
			s.declare(n.Name)
		}
	}
}

func (w *captureWalker) walkList(nodes []ast.Stmt, s *scope) {
	for _, n := range nodes {
		w.walk(n, s)
	}
}

func (w *captureWalker) walkExprs(nodes []ast.Expr, s *scope) {
	for _, n := range nodes {
		w.walk(n, s)
	}
}

func (w *captureWalker) walk(n ast.Node, s *scope) {
	if n == nil {
		return
	}

	switch n := n.(type) {
	case *ast.Ident:
		w.use(n, s)

	case *ast.SelectorExpr:
		w.walk(n.X, s)

	case *ast.FuncLit:
		fs := newScope(s)
		declareFields(n.Type.Params, fs)
		declareFields(n.Type.Results, fs)
		if n.Body != nil {
			w.walkList(n.Body.List, fs)
		}

	case *ast.CompositeLit:
		// bare identifier keys name struct fields unless the literal is a map
		_, isMap := n.Type.(*ast.MapType)
		for _, elt := range n.Elts {
			if kv, ok := elt.(*ast.KeyValueExpr); ok {
				if _, isIdent := kv.Key.(*ast.Ident); !isIdent || isMap {
					w.walk(kv.Key, s)
				}
				w.walk(kv.Value, s)
				continue
			}
			w.walk(elt, s)
		}

	case *ast.TypeAssertExpr:
		w.walk(n.X, s)

	case *ast.CallExpr:
		w.walk(n.Fun, s)
		w.walkExprs(n.Args, s)

	case *ast.ArrayType, *ast.MapType, *ast.ChanType, *ast.FuncType,
		*ast.StructType, *ast.InterfaceType:
		// types never capture values

	case *ast.BlockStmt:
		w.walkList(n.List, newScope(s))

	case *ast.AssignStmt:
		w.walkExprs(n.Rhs, s)
		if n.Tok == token.DEFINE {
			for _, lhs := range n.Lhs {
				if id, ok := lhs.(*ast.Ident); ok {
					s.declare(id.Name)
				}
			}
			return
		}
		w.walkExprs(n.Lhs, s)

	case *ast.DeclStmt:
		gen, ok := n.Decl.(*ast.GenDecl)
		if !ok {
			return
		}
		for _, spec := range gen.Specs {
			switch spec := spec.(type) {
			case *ast.ValueSpec:
				w.walkExprs(spec.Values, s)
				for _, name := range spec.Names {
					s.declare(name.Name)
				}
			case *ast.TypeSpec:
				s.declare(spec.Name.Name)
			}
		}

	case *ast.RangeStmt:
		w.walk(n.X, s)
		rs := newScope(s)
		if n.Tok == token.DEFINE {
			for _, e := range []ast.Expr{n.Key, n.Value} {
				if id, ok := e.(*ast.Ident); ok {
					rs.declare(id.Name)
				}
			}
		} else {
			w.walk(n.Key, s)
			w.walk(n.Value, s)
		}
		w.walkList(n.Body.List, rs)

	case *ast.ForStmt:
		fs := newScope(s)
		w.walk(n.Init, fs)
		w.walk(n.Cond, fs)
		w.walk(n.Post, fs)
		w.walkList(n.Body.List, fs)

	case *ast.IfStmt:
		is := newScope(s)
		w.walk(n.Init, is)
		w.walk(n.Cond, is)
		w.walk(n.Body, is)
		w.walk(n.Else, is)

	case *ast.SwitchStmt:
		ss := newScope(s)
		w.walk(n.Init, ss)
		w.walk(n.Tag, ss)
		w.walk(n.Body, ss)

	case *ast.TypeSwitchStmt:
		ss := newScope(s)
		w.walk(n.Init, ss)
		if as, ok := n.Assign.(*ast.AssignStmt); ok && as.Tok == token.DEFINE {
			w.walkExprs(as.Rhs, ss)
			for _, lhs := range as.Lhs {
				if id, ok := lhs.(*ast.Ident); ok {
					ss.declare(id.Name)
				}
			}
		} else {
			w.walk(n.Assign, ss)
		}
		w.walk(n.Body, ss)

	case *ast.CaseClause:
		cs := newScope(s)
		for _, e := range n.List {
			// type switch cases list types, value switch cases list values
			switch e.(type) {
			case *ast.ArrayType, *ast.MapType, *ast.ChanType, *ast.FuncType, *ast.StructType, *ast.InterfaceType, *ast.StarExpr:
				continue
			}
			w.walk(e, cs)
		}
		w.walkList(n.Body, cs)

	case *ast.CommClause:
		cs := newScope(s)
		w.walk(n.Comm, cs)
		w.walkList(n.Body, cs)

	case *ast.LabeledStmt:
		w.walk(n.Stmt, s)

	case *ast.BranchStmt:
		// labels are not values

	default:
		ast.Inspect(n, func(c ast.Node) bool {
			if c == n {
				return true
			}
			if c != nil {
				w.walk(c, s)
			}
			return false
		})
	}
}
