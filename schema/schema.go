// Package schema lets Go types describe themselves to external schema and
// binding generators.
//
// A generator references a type by the name SchemaName returns; types with
// internal structure additionally expose a declaration. Opaque primitives
// have no declaration and panic when asked for one, turning a miswired
// generator into a loud failure instead of a silently empty schema.
package schema

// Type describes a value's type to a schema exporter.
type Type interface {
	// SchemaName returns the name used where the type is referenced.
	SchemaName() string

	// SchemaInline returns a definition usable in place of a reference.
	SchemaInline() string

	// SchemaDecl returns the full named declaration. Opaque primitives
	// panic: they have no decomposable shape to declare.
	SchemaDecl() string

	// SchemaFlatten returns the definition with its fields spliced into a
	// surrounding type. Panics when the type cannot be flattened.
	SchemaFlatten() string
}

// Reference returns the name by which t is referenced in an exported
// schema.
func Reference(t Type) string {
	return t.SchemaName()
}

// Declare returns t's full declaration. Like SchemaDecl, it panics for
// opaque primitives.
func Declare(t Type) string {
	return t.SchemaDecl()
}
