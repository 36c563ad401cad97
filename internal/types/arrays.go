package types

// Array sizes are tracked separately from a variable's C type string,
// since the for-range/for-collection lowering (spec.md §4.4.2) needs the
// element count, not the element type, to pick its loop bound.

// SetArraySize records the known element count for an array-typed
// variable (from an explicit `[N]T` size or an initializer's literal
// length).
func (r *Registry) SetArraySize(name string, size int) {
	if r.arraySizes == nil {
		r.arraySizes = make(map[string]int)
	}

	r.arraySizes[name] = size
}

// ArraySize returns a previously recorded array size, or ok=false if
// the variable's size was never registered (e.g. it is a pointer
// parameter with no carried size — spec.md §4.4.2's documented
// limitation).
func (r *Registry) ArraySize(name string) (int, bool) {
	size, ok := r.arraySizes[name]
	return size, ok
}

// SetArraySize/ArraySize on SymbolTable mirror the registry methods for
// the current function's local scope, consulted first per spec.md
// §4.4.2 ("via the symbol table or type registry").
func (s *SymbolTable) SetArraySize(name string, size int) {
	if s.arraySizes == nil {
		s.arraySizes = make(map[string]int)
	}

	s.arraySizes[name] = size
}

func (s *SymbolTable) ArraySize(name string) (int, bool) {
	size, ok := s.arraySizes[name]
	return size, ok
}
