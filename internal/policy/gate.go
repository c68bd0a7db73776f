// Package policy decides whether an upload credential may be issued for a
// requested object key.
package policy

import (
	"net/http"
	"strings"

	"github.com/sh3r4rd/bucket_links/internal/model"
)

// ProtectedKeySet holds object names that must never be overwritten by an
// upload. It is read-only once built.
type ProtectedKeySet map[string]struct{}

// NewProtectedKeySet builds a set from the given keys.
func NewProtectedKeySet(keys ...string) ProtectedKeySet {
	set := make(ProtectedKeySet, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// ParseProtectedKeys splits a comma-joined list, as found in PROTECTED_FILES.
// Entries are matched exactly, so surrounding whitespace is kept.
func ParseProtectedKeys(raw string) ProtectedKeySet {
	if raw == "" {
		return NewProtectedKeySet()
	}
	return NewProtectedKeySet(strings.Split(raw, model.ProtectedKeysSeparator)...)
}

// Contains reports whether key is protected.
func (s ProtectedKeySet) Contains(key string) bool {
	_, ok := s[key]
	return ok
}

// Evaluate applies the upload rules in order; the first failing rule wins.
func Evaluate(req model.UploadRequest, protected ProtectedKeySet) model.PolicyDecision {
	switch key := req.RequestedKey; {
	case key == "":
		return deny(http.StatusBadRequest, model.MsgInvalidKey)
	case !model.KeyPattern.MatchString(key):
		return deny(http.StatusForbidden, model.MsgInvalidChars)
	case protected.Contains(key):
		return deny(http.StatusForbidden, model.MsgProtectedKey)
	}
	return model.PolicyDecision{StatusCode: http.StatusOK, Allowed: true}
}

func deny(status int, msg string) model.PolicyDecision {
	return model.PolicyDecision{StatusCode: status, ErrorMessage: msg}
}
