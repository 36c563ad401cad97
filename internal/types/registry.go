// Package types holds the program-wide TypeRegistry and usage tracker,
// plus the per-function SymbolTable, used by the code generator to
// resolve struct/union layouts, method dispatch, and local inference
// (spec.md §4.3).
package types

// Field is one (name, C type string) entry of a struct or union layout.
type Field struct {
	Name  string
	CType string
}

// Method is one registered method entry under its owning struct name.
type Method struct {
	Name            string
	ReturnType      string
	ParamTypes      []string
	PointerReceiver bool
}

// TypeEntry is everything the registry knows about one user-defined
// type name: its ordered field layout and its method list. Unions share
// this shape (their "fields" are union members); enums register with no
// fields and no methods, just a presence marker via Kind.
type TypeEntry struct {
	Kind    Kind
	Fields  []Field
	Methods []Method
}

// Kind distinguishes what a TypeEntry names, so the code generator can
// choose `struct Name` vs `union Name` vs `enum Name` at emission sites
// (struct/union initializer disambiguation, method-receiver resolution).
type Kind int

const (
	KindStruct Kind = iota
	KindUnion
	KindEnum
)

// Registry is the global symbol dictionary built fresh for every
// Program (spec.md §3.7: "rebuilt from scratch per Program").
type Registry struct {
	types      map[string]*TypeEntry
	variables  map[string]string // flat variable name -> C type string
	arraySizes map[string]int
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		types:     make(map[string]*TypeEntry),
		variables: make(map[string]string),
	}
}

// RegisterType creates (or returns the existing) TypeEntry for name.
func (r *Registry) RegisterType(name string, kind Kind) *TypeEntry {
	if e, ok := r.types[name]; ok {
		return e
	}

	e := &TypeEntry{Kind: kind}
	r.types[name] = e

	return e
}

// Lookup returns the TypeEntry for name, or nil if unregistered.
func (r *Registry) Lookup(name string) *TypeEntry {
	return r.types[name]
}

// AddField appends an ordered field to a struct/union's layout.
func (r *Registry) AddField(typeName, fieldName, cType string) {
	e := r.types[typeName]
	if e == nil {
		return
	}

	e.Fields = append(e.Fields, Field{Name: fieldName, CType: cType})
}

// AddMethod registers a method under its owning struct name.
func (r *Registry) AddMethod(structName string, m Method) {
	e := r.RegisterType(structName, KindStruct)
	e.Methods = append(e.Methods, m)
}

// FieldType returns the declared C type of a field, or "" if the
// struct/union or the field is unknown. Callers treat "" as
// "unknown — fall back" per spec.md §4.3.
func (r *Registry) FieldType(typeName, fieldName string) string {
	e := r.types[typeName]
	if e == nil {
		return ""
	}

	for _, f := range e.Fields {
		if f.Name == fieldName {
			return f.CType
		}
	}

	return ""
}

// MethodReturnType returns the registered return type of a method, or
// "" if unknown.
func (r *Registry) MethodReturnType(structName, methodName string) string {
	e := r.types[structName]
	if e == nil {
		return ""
	}

	for _, m := range e.Methods {
		if m.Name == methodName {
			return m.ReturnType
		}
	}

	return ""
}

// Method looks up a method's full entry (needed for pointer-receiver
// lowering decisions).
func (r *Registry) Method(structName, methodName string) (Method, bool) {
	e := r.types[structName]
	if e == nil {
		return Method{}, false
	}

	for _, m := range e.Methods {
		if m.Name == methodName {
			return m, true
		}
	}

	return Method{}, false
}

// SetVariableType records a variable's C type in the flat registry-wide
// map populated by every encountered VarDecl (spec.md §4.3).
func (r *Registry) SetVariableType(name, cType string) {
	r.variables[name] = cType
}

// VariableType returns a previously recorded variable type, or "" if
// unknown.
func (r *Registry) VariableType(name string) string {
	return r.variables[name]
}
