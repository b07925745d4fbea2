package schema

import "testing"

// pair is an ordinary structured type for exercising the interface.
type pair struct{}

func (pair) SchemaName() string    { return "Pair" }
func (pair) SchemaInline() string  { return "{ first: string, second: string }" }
func (pair) SchemaDecl() string    { return "type Pair = { first: string, second: string }" }
func (pair) SchemaFlatten() string { return "first: string, second: string" }

func TestReference(t *testing.T) {
	if got := Reference(pair{}); got != "Pair" {
		t.Errorf("Reference = %q, want %q", got, "Pair")
	}
}

func TestDeclare(t *testing.T) {
	want := "type Pair = { first: string, second: string }"
	if got := Declare(pair{}); got != want {
		t.Errorf("Declare = %q, want %q", got, want)
	}
}
