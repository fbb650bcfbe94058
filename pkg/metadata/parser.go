package metadata

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Metadata is the user supplied key/value store attached to an upload.
// Keys are unique; setting an existing key replaces its value.
type Metadata map[string]string

// ParseError represents a malformed K=V argument
type ParseError struct {
	Index   int
	Arg     string
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("metadata #%d %q: %s (format: KEY=VALUE)", e.Index+1, e.Arg, e.Message)
}

// Set adds or replaces a key
func (m Metadata) Set(key, value string) {
	m[key] = value
}

// Merge copies every pair of other into m, overwriting existing keys
func (m Metadata) Merge(other Metadata) {
	for k, v := range other {
		m[k] = v
	}
}

// JSON serializes the metadata as a JSON object. A nil or empty map is "{}".
func (m Metadata) JSON() (string, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(map[string]string(m))
	if err != nil {
		return "", fmt.Errorf("failed to serialize metadata: %w", err)
	}
	return string(data), nil
}

// ParsePair splits a single KEY=VALUE argument on the first '='.
// The value may itself contain '=' and may be empty; the key may not.
func ParsePair(arg string) (string, string, error) {
	key, value, found := strings.Cut(arg, "=")
	if !found {
		return "", "", fmt.Errorf("missing '='")
	}
	if strings.TrimSpace(key) == "" {
		return "", "", fmt.Errorf("empty key")
	}
	return key, value, nil
}

// Parse builds Metadata from a list of KEY=VALUE arguments.
// Later arguments win when a key repeats.
func Parse(args []string) (Metadata, error) {
	md := make(Metadata, len(args))
	for i, arg := range args {
		key, value, err := ParsePair(arg)
		if err != nil {
			return nil, ParseError{Index: i, Arg: arg, Message: err.Error()}
		}
		md.Set(key, value)
	}
	return md, nil
}
