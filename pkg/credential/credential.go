// Package credential resolves the Gemini API key from the process
// environment or the configuration file and wraps it in an opaque value
// that cannot leak through formatting or logging.
package credential

import (
	"fmt"
	"os"
)

// Environment variables recognized as credential sources, in precedence
// order. GOOGLE_API_KEY is the variable the official Gemini SDKs read.
const (
	EnvKey       = "GEMINI_API_KEY"
	LegacyEnvKey = "GOOGLE_API_KEY"
)

// Credential is the opaque API key authorizing calls to the Gemini API.
// It is read once at startup and held only in memory.
type Credential struct {
	key string
}

// New wraps a raw key value.
func New(key string) Credential { return Credential{key: key} }

// Key returns the raw secret for use in request headers.
func (c Credential) Key() string { return c.key }

// IsZero reports whether no key is set.
func (c Credential) IsZero() bool { return c.key == "" }

// String returns a redacted placeholder so the key cannot leak through
// %v/%s formatting or log output.
func (c Credential) String() string {
	if c.key == "" {
		return "(unset)"
	}

	return "(redacted)"
}

// GoString redacts %#v formatting as well.
func (c Credential) GoString() string {
	return fmt.Sprintf("credential.Credential{key: %s}", c.String())
}

// MissingError is returned when no API key is resolvable from any source.
type MissingError struct{}

func (e *MissingError) Error() string {
	return fmt.Sprintf("no API key found in %s, %s, or the config file", EnvKey, LegacyEnvKey)
}

// Load resolves the API key. Environment variables take precedence over
// the config-file value so ephemeral/CI runs never require editing files.
func Load(configKey string) (Credential, error) {
	for _, name := range []string{EnvKey, LegacyEnvKey} {
		if v := os.Getenv(name); v != "" {
			return Credential{key: v}, nil
		}
	}

	if configKey != "" {
		return Credential{key: configKey}, nil
	}

	return Credential{}, &MissingError{}
}
