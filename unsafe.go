package symbol

import "unsafe"

// bytesView aliases b as a string without copying. The result must not
// outlive b, and b must not be mutated while the result is in use.
func bytesView(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// stringData returns the pointer to the backing array of s, used for
// identity comparison of static references.
func stringData(s string) *byte {
	return unsafe.StringData(s)
}
