package eventq

import "github.com/vmihailenco/msgpack/v5"

// Serializer converts between Go values and the byte payloads stored in a
// queue slot. MsgQueue uses MsgpackSerializer by default; supply a custom
// implementation through NewMsgQueueWithSerializer to use another encoding.
type Serializer interface {
	// Marshal encodes a Go value to bytes.
	Marshal(v interface{}) ([]byte, error)

	// Unmarshal decodes bytes into a Go value.
	Unmarshal(data []byte, v interface{}) error
}

// MsgpackSerializer encodes messages with MessagePack, a compact binary
// format with wide cross-language support.
type MsgpackSerializer struct{}

func (ms MsgpackSerializer) Marshal(v interface{}) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (ms MsgpackSerializer) Unmarshal(data []byte, v interface{}) error {
	return msgpack.Unmarshal(data, v)
}
