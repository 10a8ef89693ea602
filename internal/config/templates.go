package config

import (
	"fmt"
	"os"
)

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(Template), 0o600)
}

// Template documents every key with its default value.
const Template = `# tomlctl configuration
listen_addr = ":9300"
timeout = "10s"
max_body_bytes = 1048576
error_excerpt_bytes = 512
user_agent = "stellartoml/0.1"

# burntsushi | go-toml
parser = "burntsushi"

# abort: one malformed field fails the document
# skip: malformed PRINCIPALS/CURRENCIES/VALIDATORS entries are dropped
policy = "abort"

allow_insecure = false
cors_origins = ["http://localhost:3000"]
log_level = "info"
`
