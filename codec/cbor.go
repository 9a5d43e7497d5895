package codec

import (
	"fmt"
	"reflect"

	"github.com/ValerySidorin/sdbc/models"
	"github.com/fxamacker/cbor/v2"
)

const cborContentType = "application/cbor"

// Custom tag numbers the server assigns to identifier types.
const (
	tagTable    = 7
	tagRecordID = 8
)

type CBOR struct {
	em cbor.EncMode
	dm cbor.DecMode
}

// NewCBOR builds the binary codec with the identifier tags registered,
// so tables and record ids survive an encode/decode round trip typed.
func NewCBOR() (*CBOR, error) {
	tags := cbor.NewTagSet()
	opts := cbor.TagOptions{EncTag: cbor.EncTagRequired, DecTag: cbor.DecTagRequired}

	if err := tags.Add(opts, reflect.TypeOf(models.Table("")), tagTable); err != nil {
		return nil, fmt.Errorf("register table tag: %w", err)
	}
	if err := tags.Add(opts, reflect.TypeOf(models.RecordID{}), tagRecordID); err != nil {
		return nil, fmt.Errorf("register record id tag: %w", err)
	}

	em, err := cbor.EncOptions{}.EncModeWithTags(tags)
	if err != nil {
		return nil, fmt.Errorf("build enc mode: %w", err)
	}
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any{}),
	}.DecModeWithTags(tags)
	if err != nil {
		return nil, fmt.Errorf("build dec mode: %w", err)
	}

	return &CBOR{em: em, dm: dm}, nil
}

func (c *CBOR) ContentType() string {
	return cborContentType
}

func (c *CBOR) Encode(v any) ([]byte, error) {
	data, err := c.em.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cbor: marshal: %w", err)
	}
	return data, nil
}

func (c *CBOR) Decode(data []byte, v any) error {
	if err := c.dm.Unmarshal(data, v); err != nil {
		return fmt.Errorf("cbor: unmarshal: %w", err)
	}
	return nil
}
