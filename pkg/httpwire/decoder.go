package httpwire

import (
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/wovenwire/wovenwire/pkg/message"
)

// DecodedRequestBody opens req's body and layers a decoder for every
// non-"chunked" Transfer-Encoding coding [Reader] recorded while parsing
// it (e.g. "gzip, chunked" leaves one "gzip" coding to undo here), per
// SPEC_FULL.md §5's on-demand decoder adapter. Callers that want the raw
// dechunked bytes should call req.Body.Open() directly instead.
func DecodedRequestBody(req message.Request) (io.ReadCloser, error) {
	codings, _ := req.Attr(codingsAttrKey)
	return decodedBody(req.Body, codingsOf(codings))
}

// DecodedResponseBody is the response analogue of [DecodedRequestBody].
func DecodedResponseBody(resp message.Response) (io.ReadCloser, error) {
	codings, _ := resp.Attr(codingsAttrKey)
	return decodedBody(resp.Body, codingsOf(codings))
}

func codingsOf(v any) []string {
	codings, _ := v.([]string)
	return codings
}

func decodedBody(body *message.Entity, codings []string) (io.ReadCloser, error) {
	rc, err := body.Open()
	if err != nil {
		return nil, newError(IoError, "open body entity", err)
	}
	// Transfer-Encoding codings apply left to right on the wire (closest to
	// the payload last), so undo them right to left.
	for i := len(codings) - 1; i >= 0; i-- {
		switch strings.ToLower(strings.TrimSpace(codings[i])) {
		case "identity":
		case "gzip", "x-gzip":
			gz, gzErr := gzip.NewReader(rc)
			if gzErr != nil {
				return nil, newError(MalformedMessage, "invalid gzip transfer-coding", gzErr)
			}
			rc = gz
		case "deflate":
			rc = flate.NewReader(rc)
		default:
			return nil, newError(MalformedMessage, fmt.Sprintf("unsupported transfer-coding %q", codings[i]), nil)
		}
	}
	return rc, nil
}
