// Package sotapb holds the wire messages and service descriptors of the
// sotagrpc.v1 API (see api/proto/sotagrpc/v1).
//
// Messages are plain Go structs that encode themselves in the protocol
// buffers binary format through [google.golang.org/protobuf/encoding/protowire],
// so any stock protobuf client generated from the .proto files interoperates
// with the server. Field numbers mirror the .proto files and must never be
// renumbered.
package sotapb

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Message is implemented by every request and response type in this package.
type Message interface {
	// AppendWire appends the binary encoding of the message to b.
	AppendWire(b []byte) []byte
	// ConsumeWire decodes b into the receiver. Unknown fields are skipped.
	ConsumeWire(b []byte) error
}

// Marshal returns the binary encoding of m.
func Marshal(m Message) []byte {
	return m.AppendWire(nil)
}

// Unmarshal decodes b into m.
func Unmarshal(b []byte, m Message) error {
	return m.ConsumeWire(b)
}

// empty is embedded by messages without fields.
type empty struct{}

func (empty) AppendWire(b []byte) []byte { return b }

func (*empty) ConsumeWire(b []byte) error {
	return consumeFields(b, func(field) error { return nil })
}

// field is one decoded tag plus its raw value bytes.
type field struct {
	num protowire.Number
	typ protowire.Type
	raw []byte
}

var errWireType = errors.New("sotapb: unexpected wire type")

func consumeFields(b []byte, fn func(f field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("sotapb: %w", protowire.ParseError(n))
		}
		b = b[n:]
		m := protowire.ConsumeFieldValue(num, typ, b)
		if m < 0 {
			return fmt.Errorf("sotapb: field %d: %w", num, protowire.ParseError(m))
		}
		if err := fn(field{num: num, typ: typ, raw: b[:m]}); err != nil {
			return fmt.Errorf("sotapb: field %d: %w", num, err)
		}
		b = b[m:]
	}
	return nil
}

func (f field) varint() (uint64, error) {
	if f.typ != protowire.VarintType {
		return 0, errWireType
	}
	v, n := protowire.ConsumeVarint(f.raw)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	return v, nil
}

func (f field) int32() (int32, error) {
	v, err := f.varint()
	return int32(v), err
}

func (f field) optInt32() (*int32, error) {
	v, err := f.int32()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (f field) bool() (bool, error) {
	v, err := f.varint()
	return protowire.DecodeBool(v), err
}

func (f field) optBool() (*bool, error) {
	v, err := f.bool()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (f field) bytes() ([]byte, error) {
	if f.typ != protowire.BytesType {
		return nil, errWireType
	}
	v, n := protowire.ConsumeBytes(f.raw)
	if n < 0 {
		return nil, protowire.ParseError(n)
	}
	// The transport may reuse its receive buffer.
	return append([]byte(nil), v...), nil
}

func (f field) string() (string, error) {
	v, err := f.bytes()
	return string(v), err
}

func (f field) optString() (*string, error) {
	v, err := f.string()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (f field) message(m Message) error {
	if f.typ != protowire.BytesType {
		return errWireType
	}
	v, n := protowire.ConsumeBytes(f.raw)
	if n < 0 {
		return protowire.ParseError(n)
	}
	return m.ConsumeWire(v)
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendInt32(b []byte, num protowire.Number, v int32) []byte {
	if v == 0 {
		return b
	}
	return appendVarintField(b, num, uint64(int64(v)))
}

func appendOptInt32(b []byte, num protowire.Number, v *int32) []byte {
	if v == nil {
		return b
	}
	return appendVarintField(b, num, uint64(int64(*v)))
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	return appendVarintField(b, num, 1)
}

func appendOptBool(b []byte, num protowire.Number, v *bool) []byte {
	if v == nil {
		return b
	}
	return appendVarintField(b, num, protowire.EncodeBool(*v))
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

// appendRepeatedString writes every element, including empty ones.
func appendRepeatedString(b []byte, num protowire.Number, vs []string) []byte {
	for _, v := range vs {
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendString(b, v)
	}
	return b
}

func appendOptString(b []byte, num protowire.Number, v *string) []byte {
	if v == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, *v)
}

// appendMessage writes m as a length-delimited field. Present but empty
// messages are still written so that presence survives the round trip.
func appendMessage(b []byte, num protowire.Number, m Message) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.AppendWire(nil))
}

// Ptr returns a pointer to v. It is used to fill optional fields.
func Ptr[T any](v T) *T {
	return &v
}
