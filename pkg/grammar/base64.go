package grammar

import "encoding/base64"

// EncodeBase64 encodes b using standard (non-URL) base64, as required by
// Sec-WebSocket-Key/-Accept (RFC 6455 §1.3) and Basic auth credentials.
func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeBase64 decodes a standard base64 string.
func DecodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
