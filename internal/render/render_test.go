package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/danmuck/stellartoml/internal/manifest"
	"github.com/danmuck/stellartoml/internal/testutil/testlog"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

const doc = `
SIGNING_KEY = "GAAZI4TCR3TY5OJHCTJC2A4QSY6CJWJH5IAJTGKIN2ER7LBNVKOCCWN7"
WEB_AUTH_ENDPOINT = "https://api.example.org/auth"

[[CURRENCIES]]
code = "USD"
status = "LIVE"
anchor_asset_type = "Fiat"
display_decimals = 2
`

func decode(t *testing.T) manifest.Manifest {
	t.Helper()
	m, err := manifest.Decode([]byte(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return m
}

func TestJSONUsesCanonicalText(t *testing.T) {
	testlog.Start(t)
	out, err := JSON(decode(t))
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var generic map[string]any
	if err := json.Unmarshal(out, &generic); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if generic["signing_key"] != "GAAZI4TCR3TY5OJHCTJC2A4QSY6CJWJH5IAJTGKIN2ER7LBNVKOCCWN7" {
		t.Fatalf("unexpected signing key: %v", generic["signing_key"])
	}
	if generic["web_auth_endpoint"] != "https://api.example.org/auth" {
		t.Fatalf("unexpected endpoint: %v", generic["web_auth_endpoint"])
	}
	if _, ok := generic["version"]; ok {
		t.Fatalf("absent fields must be omitted")
	}
	validators, ok := generic["validators"].([]any)
	if !ok || len(validators) != 0 {
		t.Fatalf("expected empty validators list, got %#v", generic["validators"])
	}
	currencies := generic["currencies"].([]any)
	usd := currencies[0].(map[string]any)
	if usd["status"] != "live" || usd["anchor_asset_type"] != "fiat" {
		t.Fatalf("expected canonical tags, got %v", usd)
	}
}

func TestYAMLUsesCanonicalText(t *testing.T) {
	testlog.Start(t)
	out, err := YAML(decode(t))
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	var generic map[string]any
	if err := yaml.Unmarshal(out, &generic); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if generic["web_auth_endpoint"] != "https://api.example.org/auth" {
		t.Fatalf("unexpected endpoint: %v", generic["web_auth_endpoint"])
	}
	if !strings.Contains(string(out), "status: live") {
		t.Fatalf("expected canonical status in:\n%s", out)
	}
}

func TestWriteAndParseFormat(t *testing.T) {
	testlog.Start(t)
	for _, name := range []string{"json", "YAML", "yml", ""} {
		f, err := ParseFormat(name)
		if err != nil {
			t.Fatalf("parse format %q: %v", name, err)
		}
		var buf bytes.Buffer
		if err := Write(&buf, f, decode(t)); err != nil {
			t.Fatalf("write %s: %v", f, err)
		}
		if buf.Len() == 0 {
			t.Fatalf("empty output for %s", f)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected unknown format error")
	}
	if err := Write(&bytes.Buffer{}, Format("xml"), decode(t)); err == nil {
		t.Fatalf("expected unknown format error")
	}
}
