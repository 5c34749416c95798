package utils

import (
	"fmt"
	"net/url"
	"strings"
)

func ValidateHTTPURL(urlStr string) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("URL must start with https:// or http://")
	}
	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}

// ValidateLinkPrefix checks a universal link prefix. The payload is appended
// directly, so the prefix must end where a path segment or query starts.
func ValidateLinkPrefix(prefix string) error {
	if err := ValidateHTTPURL(prefix); err != nil {
		return err
	}
	if !strings.HasSuffix(prefix, "/") && !strings.HasSuffix(prefix, "?") && !strings.HasSuffix(prefix, "=") {
		return fmt.Errorf("link prefix must end with /, ? or =")
	}
	return nil
}
