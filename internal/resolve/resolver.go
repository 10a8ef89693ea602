package resolve

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/danmuck/stellartoml/internal/document"
	"github.com/danmuck/stellartoml/internal/manifest"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultMaxBodyBytes     int64 = 1 << 20
	DefaultErrorExcerptSize       = 512
)

// Observer is told the outcome of every resolution: "ok" or a Kind name.
type Observer func(outcome string, elapsed time.Duration)

// Resolver resolves documents with a fixed configuration.
type Resolver struct {
	fetcher      Fetcher
	parser       document.Parser
	policy       manifest.Policy
	logger       zerolog.Logger
	maxBodyBytes int64
	excerptBytes int
	timeout      time.Duration
	observer     Observer
}

// Option configures a Resolver.
type Option func(*Resolver)

func WithFetcher(f Fetcher) Option {
	return func(r *Resolver) {
		if f != nil {
			r.fetcher = f
		}
	}
}

// WithHTTPClient fetches through client instead of http.DefaultClient.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Resolver) { r.fetcher = NewHTTPFetcher(client) }
}

func WithParser(p document.Parser) Option {
	return func(r *Resolver) {
		if p != nil {
			r.parser = p
		}
	}
}

func WithPolicy(p manifest.Policy) Option {
	return func(r *Resolver) { r.policy = p }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

func WithMaxBodyBytes(n int64) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxBodyBytes = n
		}
	}
}

func WithErrorExcerptBytes(n int) Option {
	return func(r *Resolver) {
		if n >= 0 {
			r.excerptBytes = n
		}
	}
}

// WithTimeout bounds each call in addition to the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) { r.timeout = d }
}

func WithObserver(o Observer) Option {
	return func(r *Resolver) { r.observer = o }
}

// New returns a Resolver. Without options it fetches with http.DefaultClient,
// parses with document.Default and binds with manifest.PolicyAbort.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		fetcher:      NewHTTPFetcher(nil),
		parser:       document.Default,
		policy:       manifest.PolicyAbort,
		logger:       log.Logger,
		maxBodyBytes: DefaultMaxBodyBytes,
		excerptBytes: DefaultErrorExcerptSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve fetches https://<domain>/.well-known/stellar.toml with default
// settings, logging through the current global logger.
func Resolve(ctx context.Context, domain string) (manifest.Manifest, error) {
	return New().Resolve(ctx, domain)
}

// ResolveURL fetches the document at address with default settings.
func ResolveURL(ctx context.Context, address string) (manifest.Manifest, error) {
	return New().ResolveURL(ctx, address)
}

// Resolve builds the secure well-known address for domain and resolves it.
// Use InsecureAddress with ResolveAddress to fetch over plain http.
func (r *Resolver) Resolve(ctx context.Context, domain string) (manifest.Manifest, error) {
	start := time.Now()
	address, err := SecureAddress(domain)
	if err != nil {
		r.logger.Warn().Str("domain", domain).Err(err).Msg("resolve.address failed")
		r.observe(err, start)
		return manifest.Manifest{}, err
	}
	m, err := r.resolve(ctx, address)
	r.observe(err, start)
	return m, err
}

// ResolveURL parses address and resolves it.
func (r *Resolver) ResolveURL(ctx context.Context, address string) (manifest.Manifest, error) {
	start := time.Now()
	u, err := parseAddress(address)
	if err != nil {
		r.logger.Warn().Str("address", address).Err(err).Msg("resolve.address failed")
		r.observe(err, start)
		return manifest.Manifest{}, err
	}
	m, err := r.resolve(ctx, u)
	r.observe(err, start)
	return m, err
}

// ResolveAddress resolves an already built address.
func (r *Resolver) ResolveAddress(ctx context.Context, address *url.URL) (manifest.Manifest, error) {
	start := time.Now()
	m, err := r.resolve(ctx, address)
	r.observe(err, start)
	return m, err
}

func (r *Resolver) resolve(ctx context.Context, address *url.URL) (manifest.Manifest, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	addr := address.String()
	logger := r.logger.With().Str("address", addr).Logger()

	logger.Debug().Msg("resolve.fetch start")
	resp, err := r.fetcher.Fetch(ctx, address, r.maxBodyBytes)
	if err != nil {
		logger.Warn().Err(err).Msg("resolve.fetch transport failure")
		return manifest.Manifest{}, &Error{Kind: KindTransport, Address: addr, Err: err}
	}

	switch Classify(resp.StatusCode) {
	case OutcomeClientError:
		logger.Warn().Int("status", resp.StatusCode).Msg("resolve.fetch client error")
		return manifest.Manifest{}, r.responseError(KindClientResponse, addr, resp)
	case OutcomeServerError:
		logger.Warn().Int("status", resp.StatusCode).Msg("resolve.fetch server error")
		return manifest.Manifest{}, r.responseError(KindServerResponse, addr, resp)
	}
	if resp.Truncated {
		logger.Warn().Int64("limit", r.maxBodyBytes).Msg("resolve.fetch body too large")
		return manifest.Manifest{}, &Error{Kind: KindTransport, Address: addr, Status: resp.StatusCode, Err: ErrBodyTooLarge}
	}

	logger.Debug().Int("status", resp.StatusCode).Int("bytes", len(resp.Body)).Msg("resolve.parse")
	tree, err := r.parser.Parse(resp.Body)
	if err != nil {
		logger.Warn().Err(err).Msg("resolve.parse failed")
		return manifest.Manifest{}, &Error{Kind: KindDocumentParse, Address: addr, Err: err}
	}

	m, err := manifest.Bind(tree, manifest.WithPolicy(r.policy))
	if err != nil {
		logger.Warn().Err(err).Msg("resolve.bind failed")
		return manifest.Manifest{}, fieldError(addr, err)
	}
	for _, skipped := range m.Skipped {
		logger.Warn().Str("field", skipped.Path).Err(skipped.Err).Msg("resolve.bind skipped element")
	}
	logger.Debug().
		Int("currencies", len(m.Currencies)).
		Int("validators", len(m.Validators)).
		Msg("resolve.done")
	return m, nil
}

func (r *Resolver) responseError(kind Kind, address string, resp Response) *Error {
	return &Error{
		Kind:    kind,
		Address: address,
		Status:  resp.StatusCode,
		Body:    excerptBody(resp.Body, r.excerptBytes),
	}
}

func (r *Resolver) observe(err error, start time.Time) {
	if r.observer == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = KindOf(err).String()
	}
	r.observer(outcome, time.Since(start))
}

// excerptBody keeps at most limit bytes, cut on a rune boundary.
func excerptBody(body []byte, limit int) string {
	if len(body) <= limit {
		return strings.ToValidUTF8(string(body), "")
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return strings.ToValidUTF8(string(body[:cut]), "")
}

// IsCanceled reports whether err came from the caller's context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
