package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/danmuck/stellartoml/internal/document"
	"github.com/danmuck/stellartoml/internal/manifest"
	"github.com/danmuck/stellartoml/internal/observability"
	"github.com/danmuck/stellartoml/internal/render"
	"github.com/danmuck/stellartoml/internal/resolve"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type errorResponse struct {
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`
	Field  string `json:"field,omitempty"`
	Status int    `json:"status,omitempty"`
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"uptime":    time.Since(s.started).String(),
			"component": "tomlctl",
			"version":   "0.1.0",
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.GET("/v1/stellar-toml/:domain", s.handleResolve)
	s.router.POST("/v1/stellar-toml/bind", s.handleBind)
}

func (s *Server) handleResolve(c *gin.Context) {
	domain := c.Param("domain")
	c.Set(observability.KeyTarget, domain)

	insecure, _ := strconv.ParseBool(c.Query("insecure"))
	var (
		m   manifest.Manifest
		err error
	)
	if insecure {
		if !s.cfg.AllowInsecure {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "insecure lookups are disabled", Kind: resolve.KindAddress.String()})
			return
		}
		address, aerr := resolve.InsecureAddress(domain)
		if aerr != nil {
			s.respondError(c, aerr)
			return
		}
		m, err = s.resolver.ResolveAddress(c.Request.Context(), address)
	} else {
		m, err = s.resolver.Resolve(c.Request.Context(), domain)
	}
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.respondManifest(c, m)
}

func (s *Server) handleBind(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, s.cfg.MaxBodyBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if int64(len(body)) > s.cfg.MaxBodyBytes {
		c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: resolve.ErrBodyTooLarge.Error()})
		return
	}
	m, err := manifest.Decode(body,
		manifest.WithParser(s.cfg.ParserImpl()),
		manifest.WithPolicy(s.cfg.BindPolicy()),
	)
	if err != nil {
		s.respondError(c, classifyDecode(err))
		return
	}
	s.respondManifest(c, m)
}

func (s *Server) respondManifest(c *gin.Context, m manifest.Manifest) {
	out, err := render.JSON(m)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if len(m.Skipped) > 0 {
		c.Header("X-Skipped-Elements", strconv.Itoa(len(m.Skipped)))
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", out)
}

func (s *Server) respondError(c *gin.Context, err error) {
	resp := errorResponse{Error: err.Error()}
	var re *resolve.Error
	if errors.As(err, &re) {
		resp.Kind = re.Kind.String()
		resp.Field = re.Field
		resp.Status = re.Status
		c.Set(observability.KeyKind, resp.Kind)
	}
	c.JSON(statusFor(err), resp)
}

// classifyDecode maps a local manifest.Decode failure onto the resolve taxonomy.
func classifyDecode(err error) error {
	var pe *document.ParseError
	if errors.As(err, &pe) {
		return &resolve.Error{Kind: resolve.KindDocumentParse, Err: err}
	}
	var fe *manifest.FieldError
	if errors.As(err, &fe) {
		return &resolve.Error{Kind: resolve.KindFieldDecoding, Field: fe.Path, Err: err}
	}
	return err
}

func statusFor(err error) int {
	switch resolve.KindOf(err) {
	case resolve.KindAddress:
		return http.StatusBadRequest
	case resolve.KindDocumentParse, resolve.KindFieldDecoding:
		return http.StatusUnprocessableEntity
	case resolve.KindTransport:
		if resolve.IsCanceled(err) {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	case resolve.KindClientResponse, resolve.KindServerResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
