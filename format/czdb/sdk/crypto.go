package sdk

import (
	"crypto/aes"

	"github.com/loadzero/geoloc/pkg/errors"
)

// aesECBDecrypt decrypts data with AES in ECB mode (no IV, one block
// at a time) and strips PKCS#5 padding, matching the hyper header's
// encryption per the CZDB format description.
func aesECBDecrypt(data, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	bs := block.BlockSize()
	if len(data) == 0 || len(data)%bs != 0 {
		return nil, errors.ErrInvalidDatabase
	}

	out := make([]byte, len(data))
	for off := 0; off < len(data); off += bs {
		block.Decrypt(out[off:off+bs], data[off:off+bs])
	}

	return pkcs5Unpad(out, bs)
}

func pkcs5Unpad(data []byte, blockSize int) ([]byte, error) {
	n := len(data)
	if n == 0 {
		return nil, errors.ErrInvalidDatabase
	}
	pad := int(data[n-1])
	if pad <= 0 || pad > blockSize || pad > n {
		return nil, errors.ErrInvalidDatabase
	}
	return data[:n-pad], nil
}

// xorDecrypt is the geo map block's "Vigenere cipher like" XOR scheme:
// each byte is XORed with the key byte at the same position modulo the
// key length.
func xorDecrypt(data, key []byte) []byte {
	if len(key) == 0 {
		return data
	}
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ key[i%len(key)]
	}
	return out
}
