// Package obscure reversibly encodes redirect destinations so shared links do
// not display the raw target URL. This is obfuscation, NOT encryption: any
// client can reverse it. It provides no confidentiality or integrity
// guarantee and must never be used as an access-control gate.
package obscure

import (
	"encoding/base64"
	"errors"
	"net/url"
)

// ErrBadKey is returned when a key cannot be decoded into a usable URL.
var ErrBadKey = errors.New("obscure: undecodable redirect key")

// Encode produces the opaque key for a destination URL.
func Encode(target string) string {
	return base64.URLEncoding.EncodeToString([]byte(target))
}

// Decode reverses Encode and checks that the result is an absolute http(s)
// URL. Bad base64, relative paths and exotic schemes all come back as
// ErrBadKey so the caller can fall through to its safe default.
func Decode(key string) (string, error) {
	raw, err := base64.URLEncoding.DecodeString(key)
	if err != nil {
		return "", ErrBadKey
	}
	u, err := url.Parse(string(raw))
	if err != nil {
		return "", ErrBadKey
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", ErrBadKey
	}
	return u.String(), nil
}
