package types

// SymbolTable is a flat variable-name -> C-type-string map used during
// statement emission for one function. A new SymbolTable is constructed
// per function; this design does not attempt nested-scope shadowing
// (spec.md §4.3).
type SymbolTable struct {
	vars       map[string]string
	arraySizes map[string]int
}

// NewSymbolTable creates an empty SymbolTable.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{vars: make(map[string]string)}
}

// Set records (or overwrites) a variable's C type.
func (s *SymbolTable) Set(name, cType string) {
	s.vars[name] = cType
}

// Get returns a variable's C type and whether it was found.
func (s *SymbolTable) Get(name string) (string, bool) {
	t, ok := s.vars[name]
	return t, ok
}
