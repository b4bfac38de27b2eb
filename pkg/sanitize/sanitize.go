// Package sanitize provides change-value sanitizers for form controllers.
// They strip markup on ingest so downstream storage never sees raw HTML;
// nothing here renders anything.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy

	ugcOnce   sync.Once
	ugcPolicy *bluemonday.Policy
)

// Strict removes all HTML elements and trims surrounding whitespace. The
// right default for plain-text form fields.
func Strict() func(string) string {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return func(value string) string {
		return strings.TrimSpace(strictPolicy.Sanitize(value))
	}
}

// UGC keeps the conservative markup subset bluemonday allows for
// user-generated content, for fields that legitimately carry formatting.
func UGC() func(string) string {
	ugcOnce.Do(func() {
		ugcPolicy = bluemonday.UGCPolicy()
	})
	return func(value string) string {
		return strings.TrimSpace(ugcPolicy.Sanitize(value))
	}
}

// Chain composes sanitizers left to right.
func Chain(sanitizers ...func(string) string) func(string) string {
	return func(value string) string {
		for _, sanitize := range sanitizers {
			if sanitize != nil {
				value = sanitize(value)
			}
		}
		return value
	}
}
