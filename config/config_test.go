package config

import (
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	opts := GetDefaultOptions()

	t.Logf(`Config
		Version: %s
		Host: %s
		Port: %d
		APIBaseURL: %s
		SessionCookie: %s
		LogLevel: %s
		`, opts.Version, opts.Host, opts.Port, opts.APIBaseURL, opts.SessionCookie, opts.LogLevel)

	if opts.Version != defaultVersion {
		t.Errorf("Version not set")
	}
	if opts.APIBaseURL == "" {
		t.Errorf("API base URL not set")
	}
	if opts.SessionCookie != defaultSessionCookie {
		t.Errorf("Session cookie not set")
	}
}
