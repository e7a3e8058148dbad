package types

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ImageRef is a fully pinned container image reference:
// registry/name:tag@sha256:digest. The digest may be absent on references
// that have not been resolved yet.
type ImageRef struct {
	Repository string
	Tag        string
	Digest     string
}

// ParseImageRef splits a reference into repository, tag, and digest parts.
func ParseImageRef(value string) (ImageRef, error) {
	ref := strings.TrimSpace(value)
	if ref == "" {
		return ImageRef{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("image reference is empty")
	}
	var digest string
	if at := strings.Index(ref, "@"); at >= 0 {
		digest = ref[at+1:]
		ref = ref[:at]
		if digest == "" {
			return ImageRef{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("image reference %q has an empty digest", value))
		}
	}
	// The tag separator is the last colon after the last slash, so
	// registry ports (registry:5000/name) are not mistaken for tags.
	slash := strings.LastIndex(ref, "/")
	colon := strings.LastIndex(ref, ":")
	if colon <= slash {
		return ImageRef{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("image reference %q is missing a tag", value))
	}
	repo := ref[:colon]
	tag := ref[colon+1:]
	if repo == "" || tag == "" {
		return ImageRef{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("image reference %q is malformed", value))
	}
	return ImageRef{Repository: repo, Tag: tag, Digest: digest}, nil
}

// String reproduces the canonical reference form.
func (r ImageRef) String() string {
	if r.Digest == "" {
		return fmt.Sprintf("%s:%s", r.Repository, r.Tag)
	}
	return fmt.Sprintf("%s:%s@%s", r.Repository, r.Tag, r.Digest)
}

// WithTag returns a copy of the reference pointing at a different tag with
// no digest; the digest must be re-resolved for the new tag.
func (r ImageRef) WithTag(tag string) ImageRef {
	return ImageRef{Repository: r.Repository, Tag: tag}
}
