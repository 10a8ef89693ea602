package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/danmuck/stellartoml/internal/config"
	"github.com/danmuck/stellartoml/internal/resolve"
	"github.com/danmuck/stellartoml/internal/testutil/testlog"
	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const validatorDocument = `
[[VALIDATORS]]
ALIAS = "core1"
HOST = "core1.example.org:11625"
`

func init() {
	gin.SetMode(gin.TestMode)
}

// stubServer answers every fetch with status and body, recording the address.
func stubServer(t *testing.T, cfg config.Config, status int, body string) (*Server, *[]string) {
	t.Helper()
	var seen []string
	fetcher := resolve.FetcherFunc(func(ctx context.Context, address *url.URL, limit int64) (resolve.Response, error) {
		seen = append(seen, address.String())
		return resolve.Response{StatusCode: status, Body: []byte(body)}, nil
	})
	r := resolve.New(resolve.WithFetcher(fetcher), resolve.WithLogger(zerolog.Nop()))
	return New(cfg, r, zerolog.Nop()), &seen
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var out errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealth(t *testing.T) {
	testlog.Start(t)
	s, _ := stubServer(t, config.Default(), http.StatusOK, "")
	rec := do(t, s, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestResolveRoute(t *testing.T) {
	testlog.Start(t)
	s, seen := stubServer(t, config.Default(), http.StatusOK, validatorDocument)
	rec := do(t, s, http.MethodGet, "/v1/stellar-toml/example.org", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d %s", rec.Code, rec.Body.String())
	}
	if len(*seen) != 1 || (*seen)[0] != "https://example.org/.well-known/stellar.toml" {
		t.Fatalf("unexpected fetches: %v", *seen)
	}

	var body struct {
		Validators []struct {
			Alias string `json:"alias"`
			Host  string `json:"host"`
		} `json:"validators"`
		Currencies []any `json:"currencies"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Validators) != 1 || body.Validators[0].Host != "core1.example.org:11625" {
		t.Fatalf("unexpected validators: %+v", body.Validators)
	}
	if body.Currencies == nil {
		t.Fatalf("expected empty currencies array")
	}
}

func TestResolveRouteInsecure(t *testing.T) {
	testlog.Start(t)
	s, seen := stubServer(t, config.Default(), http.StatusOK, validatorDocument)
	rec := do(t, s, http.MethodGet, "/v1/stellar-toml/example.org?insecure=true", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected insecure lookups to be refused, got %d", rec.Code)
	}
	if len(*seen) != 0 {
		t.Fatalf("unexpected fetches: %v", *seen)
	}

	cfg := config.Default()
	cfg.AllowInsecure = true
	s, seen = stubServer(t, cfg, http.StatusOK, validatorDocument)
	rec = do(t, s, http.MethodGet, "/v1/stellar-toml/example.org?insecure=true", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d %s", rec.Code, rec.Body.String())
	}
	if len(*seen) != 1 || (*seen)[0] != "http://example.org/.well-known/stellar.toml" {
		t.Fatalf("unexpected fetches: %v", *seen)
	}
}

func TestResolveRouteErrors(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		name       string
		domain     string
		status     int
		body       string
		wantCode   int
		wantKind   string
		wantField  string
		wantStatus int
	}{
		{name: "address", domain: "bad%20domain", status: http.StatusOK, wantCode: http.StatusBadRequest, wantKind: "address"},
		{name: "not found", domain: "example.org", status: http.StatusNotFound, body: "missing", wantCode: http.StatusBadGateway, wantKind: "client_response", wantStatus: 404},
		{name: "unavailable", domain: "example.org", status: http.StatusServiceUnavailable, wantCode: http.StatusBadGateway, wantKind: "server_response", wantStatus: 503},
		{name: "syntax", domain: "example.org", status: http.StatusOK, body: "VERSION = ", wantCode: http.StatusUnprocessableEntity, wantKind: "document_parse"},
		{name: "field", domain: "example.org", status: http.StatusOK, body: "VERSION = 2", wantCode: http.StatusUnprocessableEntity, wantKind: "field_decoding", wantField: "VERSION"},
	}

	for _, tc := range cases {
		s, _ := stubServer(t, config.Default(), tc.status, tc.body)
		rec := do(t, s, http.MethodGet, "/v1/stellar-toml/"+tc.domain, "")
		if rec.Code != tc.wantCode {
			t.Fatalf("%s: status %d, want %d (%s)", tc.name, rec.Code, tc.wantCode, rec.Body.String())
		}
		resp := decodeError(t, rec)
		if resp.Kind != tc.wantKind {
			t.Fatalf("%s: kind %q, want %q", tc.name, resp.Kind, tc.wantKind)
		}
		if resp.Field != tc.wantField {
			t.Fatalf("%s: field %q, want %q", tc.name, resp.Field, tc.wantField)
		}
		if resp.Status != tc.wantStatus {
			t.Fatalf("%s: upstream status %d, want %d", tc.name, resp.Status, tc.wantStatus)
		}
		if resp.Error == "" {
			t.Fatalf("%s: expected error message", tc.name)
		}
	}
}

func TestBindRoute(t *testing.T) {
	testlog.Start(t)
	s, seen := stubServer(t, config.Default(), http.StatusOK, "")
	rec := do(t, s, http.MethodPost, "/v1/stellar-toml/bind", validatorDocument)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d %s", rec.Code, rec.Body.String())
	}
	if len(*seen) != 0 {
		t.Fatalf("bind should not fetch: %v", *seen)
	}
	if !strings.Contains(rec.Body.String(), `"core1.example.org:11625"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	rec = do(t, s, http.MethodPost, "/v1/stellar-toml/bind", `[[CURRENCIES]]
code = "USD"
status = "retired"
`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status: %d %s", rec.Code, rec.Body.String())
	}
	resp := decodeError(t, rec)
	if resp.Kind != "field_decoding" || resp.Field != "CURRENCIES[0].status" {
		t.Fatalf("unexpected error: %+v", resp)
	}
}

func TestBindRouteSkipPolicy(t *testing.T) {
	testlog.Start(t)
	cfg := config.Default()
	cfg.Policy = "skip"
	s, _ := stubServer(t, cfg, http.StatusOK, "")
	rec := do(t, s, http.MethodPost, "/v1/stellar-toml/bind", `[[CURRENCIES]]
code = "USD"

[[CURRENCIES]]
code = "EUR"
status = "retired"
`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-Skipped-Elements"); got != "1" {
		t.Fatalf("unexpected skipped header: %q", got)
	}
}

func TestBindRouteBodyLimit(t *testing.T) {
	testlog.Start(t)
	cfg := config.Default()
	cfg.MaxBodyBytes = 16
	s, _ := stubServer(t, cfg, http.StatusOK, "")
	rec := do(t, s, http.MethodPost, "/v1/stellar-toml/bind", validatorDocument)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestCorsOrigins(t *testing.T) {
	testlog.Start(t)
	cfg := config.Default()
	cfg.CorsOrigins = []string{"https://wallet.example.org"}
	s, _ := stubServer(t, cfg, http.StatusOK, validatorDocument)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://wallet.example.org")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://wallet.example.org" {
		t.Fatalf("unexpected allow origin: %q", got)
	}
}

func TestStatusFor(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		err  error
		want int
	}{
		{&resolve.Error{Kind: resolve.KindTransport, Err: context.DeadlineExceeded}, http.StatusGatewayTimeout},
		{&resolve.Error{Kind: resolve.KindTransport, Err: resolve.ErrBodyTooLarge}, http.StatusBadGateway},
		{&resolve.Error{Kind: resolve.KindServerResponse}, http.StatusBadGateway},
		{&resolve.Error{Kind: resolve.KindAddress}, http.StatusBadRequest},
		{context.Canceled, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Fatalf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
