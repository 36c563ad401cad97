package types

// Usage is the program-wide set of referenced primitive types and
// builtin function names, consulted by the builtin prelude emitter to
// drive conditional emission of runtime helpers (spec.md §4.5).
type Usage struct {
	primitives map[string]bool
	builtins   map[string]bool
}

// NewUsage creates an empty Usage tracker.
func NewUsage() *Usage {
	return &Usage{primitives: make(map[string]bool), builtins: make(map[string]bool)}
}

// MarkPrimitive records that a primitive type (int/long/float/double/
// bool/string) was observed.
func (u *Usage) MarkPrimitive(name string) {
	u.primitives[name] = true
}

// MarkBuiltin records that a builtin function (print/range/len) was
// called.
func (u *Usage) MarkBuiltin(name string) {
	u.builtins[name] = true
}

// UsesBuiltin reports whether a builtin function was called.
func (u *Usage) UsesBuiltin(name string) bool {
	return u.builtins[name]
}

// ObservedPrimitives returns the observed primitive type names in a
// fixed, deterministic order (matching the prelude's printer emission
// order), for use by the builtin prelude emitter.
func (u *Usage) ObservedPrimitives() []string {
	order := []string{"int", "long", "float", "double", "string", "bool"}

	var out []string
	for _, p := range order {
		if u.primitives[p] {
			out = append(out, p)
		}
	}

	return out
}
