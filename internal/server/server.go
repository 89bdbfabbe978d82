// Package server exposes the phrase tokenizer over HTTP as a small JSON
// API: /health, /vocab, POST /tokenize, and POST /detokenize. Batching and
// backpressure live here, outside the tokenizer core.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/example/go-phrasetok/internal/config"
	"github.com/example/go-phrasetok/internal/phrase"
	"github.com/example/go-phrasetok/internal/vocab"
)

// ParseLogLevel converts a case-insensitive level string to slog.Level.
// An empty string returns slog.LevelInfo. Unknown strings return an error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}

// Segmenter is the tokenizer surface the HTTP layer depends on. Satisfied
// by *phrase.Tokenizer.
type Segmenter interface {
	Tokenize(text string) (tokens []string, ids []int)
	Detokenize(ids []int) (string, error)
	DetokenizeToTokens(ids []int) ([]string, error)
}

// VocabInfo is the vocabulary surface exposed on /vocab: the size plus the
// narrow membership capability.
type VocabInfo interface {
	vocab.Membership
	Size() int
}

// ---------------------------------------------------------------------------
// Functional options
// ---------------------------------------------------------------------------

type options struct {
	maxTextBytes int
	workers      int
	logger       *slog.Logger
}

func defaultOptions() options {
	return options{
		maxTextBytes: 65536,
		workers:      2,
		logger:       slog.Default(),
	}
}

// Option configures the HTTP handler.
type Option func(*options)

// WithMaxTextBytes sets the maximum allowed text length in bytes for POST /tokenize.
func WithMaxTextBytes(n int) Option {
	return func(o *options) { o.maxTextBytes = n }
}

// WithWorkers sets the maximum number of concurrent tokenize/detokenize calls.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithLogger sets the slog.Logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ---------------------------------------------------------------------------
// handler
// ---------------------------------------------------------------------------

type handler struct {
	seg   Segmenter
	vocab VocabInfo
	opts  options
	sem   chan struct{} // semaphore for worker pool
	log   *slog.Logger
}

// NewHandler returns an http.Handler serving /health, /vocab, POST
// /tokenize, and POST /detokenize.
func NewHandler(seg Segmenter, vocab VocabInfo, optFns ...Option) http.Handler {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	h := &handler{
		seg:   seg,
		vocab: vocab,
		opts:  opts,
		log:   opts.logger,
	}
	if opts.workers > 0 {
		h.sem = make(chan struct{}, opts.workers)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/vocab", h.handleVocab)
	mux.HandleFunc("/tokenize", h.handleTokenize)
	mux.HandleFunc("/detokenize", h.handleDetokenize)
	return mux
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildVersion(),
	})
}

func (h *handler) handleVocab(w http.ResponseWriter, r *http.Request) {
	// Optional membership query: /vocab?phrase=...
	if p := r.URL.Query().Get("phrase"); p != "" {
		writeJSON(w, http.StatusOK, map[string]any{
			"phrase":   p,
			"contains": h.vocab.Contains(p),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"size": h.vocab.Size()})
}

type tokenizeRequest struct {
	Text string `json:"text"`
}

type tokenizeResponse struct {
	Tokens []string `json:"tokens"`
	IDs    []int    `json:"ids"`
}

func (h *handler) handleTokenize(w http.ResponseWriter, r *http.Request) {
	var req tokenizeRequest
	if !h.decodePost(w, r, &req) {
		return
	}

	if len(req.Text) > h.opts.maxTextBytes {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("text exceeds maximum size of %d bytes", h.opts.maxTextBytes))
		return
	}

	if !h.acquire(w, r) {
		return
	}
	defer h.release()

	start := time.Now()
	tokens, ids := h.seg.Tokenize(req.Text)

	h.log.InfoContext(r.Context(), "tokenize complete",
		slog.Int("text_len", len(req.Text)),
		slog.Int("tokens", len(tokens)),
		slog.Int64("duration_us", time.Since(start).Microseconds()),
	)

	writeJSON(w, http.StatusOK, tokenizeResponse{Tokens: tokens, IDs: ids})
}

type detokenizeRequest struct {
	IDs []int `json:"ids"`
}

type detokenizeResponse struct {
	Text   string   `json:"text"`
	Tokens []string `json:"tokens"`
}

func (h *handler) handleDetokenize(w http.ResponseWriter, r *http.Request) {
	var req detokenizeRequest
	if !h.decodePost(w, r, &req) {
		return
	}

	if !h.acquire(w, r) {
		return
	}
	defer h.release()

	tokens, err := h.seg.DetokenizeToTokens(req.IDs)
	if err != nil {
		if errors.Is(err, phrase.ErrIDOutOfRange) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.ErrorContext(r.Context(), "detokenize failed",
			slog.Int("ids", len(req.IDs)),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	text, err := h.seg.Detokenize(req.IDs)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, detokenizeResponse{Text: text, Tokens: tokens})
}

// decodePost validates the method and decodes the JSON body into dst,
// writing the error response itself when it returns false.
func (h *handler) decodePost(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}

	if r.Body == nil {
		writeError(w, http.StatusBadRequest, "request body is required")
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}

	return true
}

// acquire takes a worker slot, honouring context cancellation while
// waiting. It writes the error response itself when it returns false.
func (h *handler) acquire(w http.ResponseWriter, r *http.Request) bool {
	if h.sem == nil {
		return true
	}

	select {
	case h.sem <- struct{}{}:
		return true
	case <-r.Context().Done():
		writeError(w, http.StatusServiceUnavailable, "request cancelled while waiting for worker")
		return false
	}
}

func (h *handler) release() {
	if h.sem != nil {
		<-h.sem
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---------------------------------------------------------------------------
// Server — wires handler into net/http.Server with graceful shutdown
// ---------------------------------------------------------------------------

// Server wires the HTTP handler into a net/http.Server with graceful shutdown.
type Server struct {
	cfg             config.Config
	tok             *phrase.Tokenizer
	shutdownTimeout time.Duration
}

func New(cfg config.Config, tok *phrase.Tokenizer) *Server {
	return &Server{
		cfg:             cfg,
		tok:             tok,
		shutdownTimeout: 30 * time.Second,
	}
}

// WithShutdownTimeout overrides the graceful-shutdown drain period.
func (s *Server) WithShutdownTimeout(d time.Duration) *Server {
	s.shutdownTimeout = d
	return s
}

func (s *Server) Start(ctx context.Context) error {
	h := NewHandler(s.tok, s.tok.Vocab(),
		WithWorkers(s.cfg.Server.Workers),
		WithMaxTextBytes(s.cfg.Server.MaxTextBytes),
	)

	httpServer := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Server.RequestTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("http listen: %w", err)
	}
}

func ProbeHTTP(addr string) error {
	resp, err := http.Get("http://" + addr + "/health") //nolint:noctx
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status: %s", resp.Status)
	}
	return nil
}
