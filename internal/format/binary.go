package format

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/roach88/state/internal/value"
)

// binaryFormat encodes graphs as CBOR with core deterministic encoding:
// map keys sorted, shortest integer and float forms, no indefinite lengths.
type binaryFormat struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// Binary returns the CBOR archive format. It has no representability
// restrictions and ignores pretty.
func Binary() Format {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err) // static options
	}
	dec, err := cbor.DecOptions{
		MaxNestedLevels: value.MaxDepth + 1,
	}.DecMode()
	if err != nil {
		panic(err) // static options
	}
	return &binaryFormat{enc: enc, dec: dec}
}

func (*binaryFormat) Name() string { return "binary" }

func (b *binaryFormat) Encode(v value.Value, _ bool) ([]byte, error) {
	if err := value.Validate(v); err != nil {
		return nil, mark(err, ErrUnrepresentable, "binary")
	}
	data, err := b.enc.Marshal(value.ToAny(v))
	if err != nil {
		return nil, mark(err, ErrUnrepresentable, "binary")
	}
	return data, nil
}

func (b *binaryFormat) Decode(data []byte) (value.Value, error) {
	if len(data) == 0 {
		return nil, markNew(ErrParse, "binary: empty input")
	}
	var raw any
	if err := b.dec.Unmarshal(data, &raw); err != nil {
		return nil, mark(err, ErrParse, "binary")
	}
	v, err := value.FromAny(raw)
	if err != nil {
		return nil, mark(err, ErrParse, "binary")
	}
	return v, nil
}

// compressedFormat frames another format's output with zstd.
type compressedFormat struct {
	inner Format
}

// CompressedBinary returns Binary wrapped in a zstd frame.
func CompressedBinary() Format {
	return &compressedFormat{inner: Binary()}
}

func (*compressedFormat) Name() string { return "binary-zstd" }

func (c *compressedFormat) Encode(v value.Value, pretty bool) ([]byte, error) {
	raw, err := c.inner.Encode(v, pretty)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, mark(err, ErrIO, "zstd encoder")
	}
	defer enc.Close()
	return enc.EncodeAll(raw, make([]byte, 0, len(raw))), nil
}

func (c *compressedFormat) Decode(data []byte) (value.Value, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, mark(err, ErrIO, "zstd decoder")
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, mark(err, ErrParse, "binary-zstd")
	}
	return c.inner.Decode(raw)
}
