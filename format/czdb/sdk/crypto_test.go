package sdk

import (
	"crypto/aes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAesECBDecryptRoundTrip(t *testing.T) {
	key := []byte("0123456789abcdef")
	plain := []byte("hello world, pad") // 16 bytes, needs a full padding block
	padded := pkcs5Pad(plain, aes.BlockSize)

	block, err := aes.NewCipher(key)
	require.NoError(t, err)

	enc := make([]byte, len(padded))
	for off := 0; off < len(padded); off += aes.BlockSize {
		block.Encrypt(enc[off:off+aes.BlockSize], padded[off:off+aes.BlockSize])
	}

	dec, err := aesECBDecrypt(enc, key)
	require.NoError(t, err)
	require.Equal(t, plain, dec)
}

func TestAesECBDecryptRejectsBadLength(t *testing.T) {
	_, err := aesECBDecrypt([]byte("short"), []byte("0123456789abcdef"))
	require.Error(t, err)
}

func TestPkcs5UnpadRejectsInvalidPadding(t *testing.T) {
	_, err := pkcs5Unpad([]byte{1, 2, 3, 0}, 16)
	require.Error(t, err)
}

func TestXorDecryptRoundTrip(t *testing.T) {
	key := []byte("key")
	plain := []byte("some geo column data")

	enc := xorDecrypt(plain, key)
	dec := xorDecrypt(enc, key)
	require.Equal(t, plain, dec)
}

func TestXorDecryptEmptyKey(t *testing.T) {
	plain := []byte("unchanged")
	require.Equal(t, plain, xorDecrypt(plain, nil))
}

func pkcs5Pad(data []byte, blockSize int) []byte {
	pad := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+pad)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(pad)
	}
	return out
}
