package multipart

import "github.com/wovenwire/wovenwire/internal/randsrc"

const (
	boundaryPrefix = "----MultipartBoundary_"
	boundaryLen    = 16
)

const boundaryAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateBoundary produces a fresh multipart boundary per spec.md §4.4:
// 16 alphanumeric characters from a CSPRNG, prefixed
// "----MultipartBoundary_".
func GenerateBoundary(src randsrc.Source) string {
	b := make([]byte, boundaryLen)
	for i := range b {
		b[i] = boundaryAlphabet[src.NextIntRange(0, len(boundaryAlphabet))]
	}
	return boundaryPrefix + string(b)
}
