package codec

import "encoding/base64"

// Base64 returns a Codec between standard (padded) base64 text and raw bytes.
func Base64() Codec[string, []byte] { return base64Codec{} }

type base64Codec struct{}

func (base64Codec) Decode(a string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(a)
	if err != nil {
		return nil, err
	}
	if b == nil {
		b = []byte{}
	}
	return b, nil
}

func (base64Codec) Encode(b []byte) (string, error) {
	return base64.StdEncoding.EncodeToString(b), nil
}
