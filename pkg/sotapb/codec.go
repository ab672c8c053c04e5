package sotapb

import (
	"fmt"

	"google.golang.org/protobuf/proto"
)

// Codec is a gRPC codec for the messages in this package. It registers under
// the standard "proto" name so clients and servers built from the .proto
// files talk to it unchanged. Values that are not a [Message] but a
// [proto.Message] (for example the standard health check messages) are
// delegated to the protobuf runtime.
type Codec struct{}

// Marshal implements encoding.Codec.
func (Codec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case Message:
		return m.AppendWire(nil), nil
	case proto.Message:
		return proto.Marshal(m)
	default:
		return nil, fmt.Errorf("sotapb: cannot marshal %T", v)
	}
}

// Unmarshal implements encoding.Codec.
func (Codec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case Message:
		return m.ConsumeWire(data)
	case proto.Message:
		return proto.Unmarshal(data, m)
	default:
		return fmt.Errorf("sotapb: cannot unmarshal into %T", v)
	}
}

// Name implements encoding.Codec.
func (Codec) Name() string { return "proto" }
