// Package validation contains request validation for the bookmark handlers.
package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateURL checks that the value is a non-empty absolute URL.
func ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("url is required")
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("url must be absolute")
	}
	return nil
}
