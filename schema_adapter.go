package symbol

import "github.com/chazu/symbol/schema"

// ---------------------------------------------------------------------------
// Schema description
// ---------------------------------------------------------------------------

// Symbol describes itself to schema exporters as an opaque text primitive:
// wire formats and generated bindings see a plain string, never the
// representation behind the handle.
var _ schema.Type = Symbol{}

// SchemaName returns the primitive name Symbol is referenced by.
func (Symbol) SchemaName() string {
	return "string"
}

// SchemaInline returns the inline definition, identical to SchemaName.
func (Symbol) SchemaInline() string {
	return "string"
}

// SchemaDecl panics: Symbol is an opaque primitive with no declaration.
// Asking for one is an integration bug in the calling generator.
func (Symbol) SchemaDecl() string {
	panic("symbol: Symbol cannot be declared")
}

// SchemaFlatten panics: a primitive has no fields to flatten.
func (Symbol) SchemaFlatten() string {
	panic("symbol: Symbol cannot be flattened")
}
