package symbol

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
)

func TestMarshalText(t *testing.T) {
	long := uniq(t, "content")
	heap := Intern(long)
	defer heap.Release()

	for _, s := range []Symbol{Intern("tiny"), heap, FromStatic(strings.Clone(long))} {
		b, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText failed: %v", err)
		}
		if string(b) != s.String() {
			t.Errorf("MarshalText = %q, want %q", b, s.String())
		}
	}
}

func TestAppendText(t *testing.T) {
	b := []byte("prefix:")
	b, err := Intern("suffix").AppendText(b)
	if err != nil {
		t.Fatalf("AppendText failed: %v", err)
	}
	if got := string(b); got != "prefix:suffix" {
		t.Errorf("AppendText = %q, want %q", got, "prefix:suffix")
	}
}

func TestUnmarshalText(t *testing.T) {
	x := uniq(t, "decoded")

	var s Symbol
	if err := s.UnmarshalText([]byte(x)); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if got := s.String(); got != x {
		t.Errorf("decoded %q, want %q", got, x)
	}

	canonical := Intern(x)
	if !s.Identical(canonical) {
		t.Error("UnmarshalText did not intern into the shared allocation")
	}
	s.Release()
	canonical.Release()
}

func TestUnmarshalTextInvalid(t *testing.T) {
	var s Symbol
	err := s.UnmarshalText([]byte{'o', 'k', 0xff})
	if err == nil {
		t.Fatal("UnmarshalText accepted invalid UTF-8")
	}
	var ee *EncodingError
	if !errors.As(err, &ee) {
		t.Fatalf("error is %T, want *EncodingError", err)
	}
	if !bytes.Equal(ee.Bytes, []byte{'o', 'k', 0xff}) {
		t.Errorf("EncodingError.Bytes = % x, want 6f 6b ff", ee.Bytes)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	type event struct {
		Name  Symbol `json:"name"`
		Count int    `json:"count"`
	}

	in := event{Name: Intern("page_view"), Count: 3}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if want := `{"name":"page_view","count":3}`; string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var out event
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !out.Name.Equal(in.Name) || out.Count != 3 {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestCBORRoundTrip(t *testing.T) {
	long := uniq(t, "content")
	heap := Intern(long)
	defer heap.Release()

	for _, in := range []Symbol{Intern("tiny"), heap} {
		data, err := cbor.Marshal(in)
		if err != nil {
			t.Fatalf("Marshal(%q) failed: %v", in.String(), err)
		}
		// Content encodes as a text string, CBOR major type 3.
		if data[0]&0xe0 != 0x60 {
			t.Errorf("Marshal(%q) wire major type = %d, want 3", in.String(), data[0]>>5)
		}

		var out Symbol
		if err := cbor.Unmarshal(data, &out); err != nil {
			t.Fatalf("Unmarshal(%q) failed: %v", in.String(), err)
		}
		if !out.Equal(in) {
			t.Errorf("round trip of %q decoded %q", in.String(), out.String())
		}
		out.Release()
	}
}

func TestCBORDecodeSharesIdentity(t *testing.T) {
	x := uniq(t, "wire")
	data, err := cbor.Marshal(x)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	held := Intern(x)
	var s Symbol
	if err := cbor.Unmarshal(data, &s); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !s.Identical(held) {
		t.Error("decoding did not intern into the live allocation")
	}
	s.Release()
	held.Release()
}

func TestCBORByteString(t *testing.T) {
	data, err := cbor.Marshal([]byte("raw utf-8 payload"))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var s Symbol
	if err := cbor.Unmarshal(data, &s); err != nil {
		t.Fatalf("Unmarshal of valid byte string failed: %v", err)
	}
	if got := s.String(); got != "raw utf-8 payload" {
		t.Errorf("decoded %q, want %q", got, "raw utf-8 payload")
	}
}

func TestCBORByteStringInvalid(t *testing.T) {
	data, err := cbor.Marshal([]byte{0xff, 0xfe})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var s Symbol
	err = cbor.Unmarshal(data, &s)
	if err == nil {
		t.Fatal("Unmarshal accepted a non-UTF-8 byte string")
	}
	var ee *EncodingError
	if !errors.As(err, &ee) {
		t.Fatalf("error is %T, want *EncodingError", err)
	}
	if !bytes.Equal(ee.Bytes, []byte{0xff, 0xfe}) {
		t.Errorf("EncodingError.Bytes = % x, want ff fe", ee.Bytes)
	}
}

func TestCBORWrongType(t *testing.T) {
	data, err := cbor.Marshal(uint64(7))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var s Symbol
	err = cbor.Unmarshal(data, &s)
	if err == nil {
		t.Fatal("Unmarshal accepted a CBOR integer")
	}
	var ee *EncodingError
	if errors.As(err, &ee) {
		t.Error("type mismatch reported as *EncodingError")
	}
}

func TestCBORStructField(t *testing.T) {
	type record struct {
		Tag   Symbol `cbor:"tag"`
		Value int    `cbor:"value"`
	}

	in := record{Tag: Intern("checkpoint"), Value: 9}
	data, err := cbor.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var out record
	if err := cbor.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !out.Tag.Equal(in.Tag) || out.Value != 9 {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}
