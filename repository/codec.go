package repository

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
)

// Fast tier values are CBOR with Core Deterministic Encoding, so the same
// entity always produces the same bytes. Blob payloads are additionally
// zstd compressed.
var (
	cborEnc     cbor.EncMode
	cborDec     cbor.DecMode
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error

	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("repository: CBOR encoder initialization failed: " + err.Error())
	}
	cborDec, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("repository: CBOR decoder initialization failed: " + err.Error())
	}

	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault), zstd.WithZeroFrames(true))
	if err != nil {
		panic("repository: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("repository: zstd decoder initialization failed: " + err.Error())
	}
}

func encodeValue(v any) ([]byte, error) {
	return cborEnc.Marshal(v)
}

func decodeValue(data []byte, v any) error {
	return cborDec.Unmarshal(data, v)
}

func compressBlob(data []byte) []byte {
	return zstdEncoder.EncodeAll(data, make([]byte, 0, len(data)/2))
}

// decompressBlob never returns a nil slice for a valid frame, so an empty
// payload is not mistaken for "unchanged".
func decompressBlob(data []byte) ([]byte, error) {
	return zstdDecoder.DecodeAll(data, []byte{})
}
