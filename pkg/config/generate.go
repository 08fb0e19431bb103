package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const generatedHeader = `# nedots settings
# Save as %s and uncomment the values you want to change.
`

// GenerateConfigContent renders the given settings as a commented-out TOML file
func GenerateConfigContent(s *Settings) (string, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("failed to encode settings: %w", err)
	}

	header := fmt.Sprintf(generatedHeader, UserConfigPath())
	return header + "\n" + commentOutConfigValues(buf.String()), nil
}

// commentOutConfigValues comments out every assignment line, leaving blank
// lines, comments and table headers untouched
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			result = append(result, line)
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		result = append(result, indent+"# "+trimmed)
	}

	return strings.Join(result, "\n")
}
