package symbol

import (
	"encoding"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// ---------------------------------------------------------------------------
// Codec adapters
// ---------------------------------------------------------------------------

// EncodingError reports byte input that is not well-formed UTF-8 text.
type EncodingError struct {
	Bytes []byte // the offending input
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("symbol: invalid UTF-8 text: %q", e.Bytes)
}

var (
	_ fmt.Stringer             = Symbol{}
	_ encoding.TextMarshaler   = Symbol{}
	_ encoding.TextAppender    = Symbol{}
	_ encoding.TextUnmarshaler = (*Symbol)(nil)
	_ cbor.Marshaler           = Symbol{}
	_ cbor.Unmarshaler         = (*Symbol)(nil)
)

// MarshalText implements encoding.TextMarshaler. It never fails.
// encoding/json composes on this, so a Symbol marshals as a JSON string.
func (s Symbol) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// AppendText implements encoding.TextAppender.
func (s Symbol) AppendText(b []byte) ([]byte, error) {
	return append(b, s.String()...), nil
}

// UnmarshalText implements encoding.TextUnmarshaler by interning the
// input. The bytes must be well-formed UTF-8; anything else fails with an
// *EncodingError carrying the offending input.
func (s *Symbol) UnmarshalText(b []byte) error {
	sym, err := FromBytes(b)
	if err != nil {
		return err
	}
	*s = sym
	return nil
}

// MarshalCBOR implements cbor.Marshaler, encoding the content as a CBOR
// text string.
func (s Symbol) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(s.String())
}

// UnmarshalCBOR implements cbor.Unmarshaler. A text string interns
// directly; a byte string is accepted if it holds well-formed UTF-8 and
// fails with an *EncodingError otherwise. Any other CBOR type is a decode
// error.
func (s *Symbol) UnmarshalCBOR(data []byte) error {
	var v any
	if err := cbor.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("symbol: unmarshal: %w", err)
	}
	switch v := v.(type) {
	case string:
		*s = Intern(v)
		return nil
	case []byte:
		sym, err := FromBytes(v)
		if err != nil {
			return err
		}
		*s = sym
		return nil
	default:
		return fmt.Errorf("symbol: unmarshal: expected text, got %T", v)
	}
}
