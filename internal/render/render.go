// Package render writes a bound Manifest as JSON or YAML.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/danmuck/stellartoml/internal/manifest"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("render: unknown format %q", s)
	}
}

// JSON returns indented JSON. Rich values use their canonical text form.
func JSON(m manifest.Manifest) ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

func YAML(m manifest.Manifest) ([]byte, error) {
	return yaml.Marshal(m)
}

// Write renders m to w in format f, followed by a newline for JSON.
func Write(w io.Writer, f Format, m manifest.Manifest) error {
	var (
		out []byte
		err error
	)
	switch f {
	case FormatJSON, "":
		out, err = JSON(m)
		if err == nil {
			out = append(out, '\n')
		}
	case FormatYAML:
		out, err = YAML(m)
	default:
		return fmt.Errorf("render: unknown format %q", f)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", f, err)
	}
	_, err = w.Write(out)
	return err
}
