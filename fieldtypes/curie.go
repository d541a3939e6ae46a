/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package fieldtypes

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/openregister/errors"
)

// Curie is a compact URL reference of the form "prefix:reference", where the
// prefix names a register and the reference a record key within it.
type Curie struct {
	Prefix    string
	Reference string
}

// ParseCurie parses the curie datatype. The bracketed safe form
// "[prefix:reference]" is accepted and unwrapped.
func ParseCurie(value string) (Curie, error) {
	s := value
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = s[1 : len(s)-1]
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Curie{}, errors.NewConversionError("curie", value, "")
	}
	return Curie{Prefix: parts[0], Reference: parts[1]}, nil
}

func (c Curie) String() string {
	return fmt.Sprintf("%s:%s", c.Prefix, c.Reference)
}

// SafeFormat renders the curie in its bracketed wire form.
func (c Curie) SafeFormat() string {
	return fmt.Sprintf("[%s]", c)
}

// ItemHash is a content hash reference, e.g.
// "sha-256:5b8e5ee02caedd0a6f3539b19d6b462dd2d08918764e7f476506996024f7b84a".
type ItemHash struct {
	Algorithm string
	Digest    string
}

// ParseItemHash parses the item-hash datatype. Only sha-256 digests of the
// expected length are accepted.
func ParseItemHash(value string) (ItemHash, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 || parts[0] != "sha-256" || len(parts[1]) != 64 {
		return ItemHash{}, errors.NewConversionError("item-hash", value, "")
	}
	return ItemHash{Algorithm: parts[0], Digest: parts[1]}, nil
}

func (h ItemHash) String() string {
	return fmt.Sprintf("%s:%s", h.Algorithm, h.Digest)
}

// ParseURL parses and normalises the url datatype. The value is kept as a
// string-typed URI rather than a structured object.
func ParseURL(value string) (strfmt.URI, error) {
	u, err := url.Parse(value)
	if err != nil {
		return "", errors.NewConversionError("url", value, err.Error())
	}
	return strfmt.URI(u.String()), nil
}
