package httpheader

import (
	"fmt"

	"github.com/wovenwire/wovenwire/pkg/header"
)

const hContentDisposition = "Content-Disposition"

// HasContentDisposition reports whether m carries a Content-Disposition header.
func HasContentDisposition[T Headered](m T) bool { return has(m, hContentDisposition) }

// ContentDisposition returns m's parsed Content-Disposition.
func ContentDisposition[T Headered](m T) (header.Disposition, error) {
	v, ok := getRaw(m, hContentDisposition)
	if !ok {
		return header.Disposition{}, ErrHeaderNotFound
	}
	d, ok := header.ParseDisposition(v)
	if !ok {
		return header.Disposition{}, fmt.Errorf("httpheader: malformed Content-Disposition: %q", v)
	}
	return d, nil
}

// ContentDispositionOption is the non-error variant of [ContentDisposition].
func ContentDispositionOption[T Headered](m T) (header.Disposition, bool) {
	d, err := ContentDisposition(m)
	return d, err == nil
}

// WithContentDisposition sets the Content-Disposition header.
func WithContentDisposition[T Headered](m T, d header.Disposition) T {
	return withHeader(m, hContentDisposition, d.Format())
}

// WithoutContentDisposition removes the Content-Disposition header.
func WithoutContentDisposition[T Headered](m T) T { return withoutHeader(m, hContentDisposition) }

const hETag = "ETag"

// HasETag reports whether m carries an ETag header.
func HasETag[T Headered](m T) bool { return has(m, hETag) }

// ETag returns m's parsed ETag.
func ETag[T Headered](m T) (header.EntityTag, error) {
	v, ok := getRaw(m, hETag)
	if !ok {
		return header.EntityTag{}, ErrHeaderNotFound
	}
	tag, ok := header.ParseEntityTag(v)
	if !ok {
		return header.EntityTag{}, fmt.Errorf("httpheader: malformed ETag: %q", v)
	}
	return tag, nil
}

// ETagOption is the non-error variant of [ETag].
func ETagOption[T Headered](m T) (header.EntityTag, bool) {
	tag, err := ETag(m)
	return tag, err == nil
}

// WithETag sets the ETag header.
func WithETag[T Headered](m T, tag header.EntityTag) T {
	return withHeader(m, hETag, tag.Format())
}

// WithoutETag removes the ETag header.
func WithoutETag[T Headered](m T) T { return withoutHeader(m, hETag) }

func parseEntityTagList(values []string) ([]header.EntityTag, error) {
	tags := make([]header.EntityTag, 0, len(values))
	for _, v := range values {
		if v == "*" {
			continue
		}
		for _, part := range splitCommaList(v) {
			tag, ok := header.ParseEntityTag(part)
			if !ok {
				return nil, fmt.Errorf("httpheader: malformed entity-tag: %q", part)
			}
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

const hIfMatch = "If-Match"

// HasIfMatch reports whether m carries an If-Match header.
func HasIfMatch[T Headered](m T) bool { return has(m, hIfMatch) }

// IfMatch returns m's parsed If-Match entity-tag list. The wildcard "*"
// form yields an empty, non-error result; [IfMatchIsWildcard] tells it
// apart.
func IfMatch[T Headered](m T) ([]header.EntityTag, error) {
	values := getAllRaw(m, hIfMatch)
	if len(values) == 0 {
		return nil, ErrHeaderNotFound
	}
	return parseEntityTagList(values)
}

// IfMatchIsWildcard reports whether If-Match is present and is "*".
func IfMatchIsWildcard[T Headered](m T) bool {
	v, ok := getRaw(m, hIfMatch)
	return ok && v == "*"
}

// WithIfMatch sets the If-Match header from one or more entity tags.
func WithIfMatch[T Headered](m T, tags ...header.EntityTag) T {
	return withHeader(m, hIfMatch, formatEntityTagList(tags))
}

// WithoutIfMatch removes the If-Match header.
func WithoutIfMatch[T Headered](m T) T { return withoutHeader(m, hIfMatch) }

const hIfNoneMatch = "If-None-Match"

// HasIfNoneMatch reports whether m carries an If-None-Match header.
func HasIfNoneMatch[T Headered](m T) bool { return has(m, hIfNoneMatch) }

// IfNoneMatch returns m's parsed If-None-Match entity-tag list.
func IfNoneMatch[T Headered](m T) ([]header.EntityTag, error) {
	values := getAllRaw(m, hIfNoneMatch)
	if len(values) == 0 {
		return nil, ErrHeaderNotFound
	}
	return parseEntityTagList(values)
}

// IfNoneMatchIsWildcard reports whether If-None-Match is present and is "*".
func IfNoneMatchIsWildcard[T Headered](m T) bool {
	v, ok := getRaw(m, hIfNoneMatch)
	return ok && v == "*"
}

// WithIfNoneMatch sets the If-None-Match header from one or more entity tags.
func WithIfNoneMatch[T Headered](m T, tags ...header.EntityTag) T {
	return withHeader(m, hIfNoneMatch, formatEntityTagList(tags))
}

// WithoutIfNoneMatch removes the If-None-Match header.
func WithoutIfNoneMatch[T Headered](m T) T { return withoutHeader(m, hIfNoneMatch) }

func formatEntityTagList(tags []header.EntityTag) string {
	out := ""
	for i, tag := range tags {
		if i > 0 {
			out += ", "
		}
		out += tag.Format()
	}
	return out
}
