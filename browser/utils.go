package browser

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

func IsValidURL(u string) (bool, error) {
	if u == "" {
		return false, errors.New("url cannot be empty")
	} else if _, err := url.ParseRequestURI(u); err != nil {
		return false, fmt.Errorf("error parsing url: %w", err)
	}
	return true, nil
}

// GetCanonicalURL turns absolute filesystem paths into file urls.
func GetCanonicalURL(u string) string {
	if strings.HasPrefix(u, "/") {
		return "file://" + u
	}
	return u
}
