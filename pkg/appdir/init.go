package appdir

import (
	"fmt"
	"os"
)

// The .env file may hold the API key, so keep it out of version control.
const gitignoreContent = ".env\n"

// DefaultConfigYAML is the starter config written by Bootstrap. The API
// key stays in the environment; the file only references it.
const DefaultConfigYAML = `# askgemini configuration.
#
# The API key is read from the GEMINI_API_KEY (or GOOGLE_API_KEY)
# environment variable, or from a .env file next to this config.
# Uncomment api_key only to point it at a different variable.
#api_key: ${GEMINI_API_KEY}

model: gemini-1.5-flash
temperature: 0.9
max_output_tokens: 8192
top_p: 1.0
top_k: 32

# Optional instruction prepended to every call.
#system_instruction: Answer concisely.

timeout: 2m

retry:
  max_retries: 3
  base_delay: 1s
`

// Bootstrap creates the directory and writes the starter config and
// .gitignore. It is safe to call multiple times; existing files are left
// untouched.
func Bootstrap(d Dir) error {
	if err := os.MkdirAll(d.Root(), 0o750); err != nil {
		return fmt.Errorf("appdir: create dir: %w", err)
	}

	if err := writeIfMissing(d.ConfigPath(), DefaultConfigYAML); err != nil {
		return fmt.Errorf("appdir: config: %w", err)
	}

	if err := writeIfMissing(d.GitignorePath(), gitignoreContent); err != nil {
		return fmt.Errorf("appdir: gitignore: %w", err)
	}

	return nil
}

// writeIfMissing creates the file with the given content if it does not
// already exist.
func writeIfMissing(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // already exists
	}

	return os.WriteFile(path, []byte(content), 0o600)
}
