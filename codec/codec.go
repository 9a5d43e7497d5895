package codec

// Codec converts request envelopes and response payloads to and from
// their wire form.
type Codec interface {
	ContentType() string
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}
