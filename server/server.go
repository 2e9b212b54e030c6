// Package server exposes glyph mosaic rendering over HTTP.
//
// POST /api/generate accepts a multipart form with the image in "file" and
// returns the rendered mosaic as an attachment. GET /healthz reports
// liveness.
package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wbrown/img2glyph"
	"github.com/wbrown/img2glyph/imageutil"
)

// Form defaults for /api/generate.
const (
	DefaultMaxUpload  = 10 << 20
	DefaultCustomText = "江雪利"
	DefaultLanguage   = img2glyph.ModeChinese
	DefaultFormat     = "jpg"
)

// Handler serves the rendering API. It is safe for concurrent use.
type Handler struct {
	maxUpload    int64
	logger       *log.Logger
	resolverOpts []img2glyph.ResolverOption
	mux          *http.ServeMux
}

// Option is a functional option for configuring a Handler.
type Option func(*Handler)

// New creates a new Handler with the given options.
// Default values: MaxUpload=10MiB, logging discarded.
func New(opts ...Option) *Handler {
	h := &Handler{
		maxUpload: DefaultMaxUpload,
		logger:    log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.mux = http.NewServeMux()
	h.mux.HandleFunc("POST /api/generate", h.generate)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	return h
}

// WithMaxUpload limits the request body size in bytes.
func WithMaxUpload(n int64) Option {
	return func(h *Handler) {
		h.maxUpload = n
	}
}

// WithLogger logs one line per request to logger.
func WithLogger(logger *log.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithResolverOptions passes font options to every glyph set resolution.
func WithResolverOptions(opts ...img2glyph.ResolverOption) Option {
	return func(h *Handler) {
		h.resolverOpts = opts
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok\n")
}

// request holds the parsed /api/generate form.
type request struct {
	customText string
	language   string
	color      bool
	portrait   bool
	columns    int
	format     string
}

// badRequestError marks failures caused by the client's input.
type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string { return e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

func badRequest(format string, args ...any) error {
	return &badRequestError{err: fmt.Errorf(format, args...)}
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	body, name, contentType, err := h.render(r)
	if err != nil {
		status := http.StatusInternalServerError
		var bre *badRequestError
		if errors.As(err, &bre) {
			status = http.StatusBadRequest
		}
		h.logger.Printf("%s %s: %d %v", r.Method, r.URL.Path, status, err)
		http.Error(w, err.Error(), status)
		return
	}

	h.logger.Printf("%s %s: %d %s (%d bytes)", r.Method, r.URL.Path, http.StatusOK, name, len(body))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Write(body)
}

// render decodes the upload and returns the encoded mosaic, its download
// name and its content type.
func (h *Handler) render(r *http.Request) ([]byte, string, string, error) {
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, "", "", badRequest("upload exceeds %d bytes", mbe.Limit)
		}
		return nil, "", "", badRequest("invalid multipart form: %v", err)
	}
	defer r.MultipartForm.RemoveAll()

	req, err := parseRequest(r)
	if err != nil {
		return nil, "", "", err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", "", badRequest("missing image file: %v", err)
	}
	defer file.Close()

	img, err := imageutil.Decode(file, req.color)
	if err != nil {
		return nil, "", "", badRequest("%v", err)
	}
	img = imageutil.RotateForPortrait(img, req.portrait)

	gs := img2glyph.Resolve(req.language, req.customText, h.resolverOpts...)
	canvas, err := img2glyph.Render(img, gs, req.columns, req.color)
	if err != nil {
		if isGeometryError(err) {
			return nil, "", "", badRequest("%v", err)
		}
		return nil, "", "", fmt.Errorf("failed to render image: %w", err)
	}

	var buf bytes.Buffer
	if err := imageutil.Encode(&buf, canvas, req.format); err != nil {
		return nil, "", "", err
	}
	return buf.Bytes(), outputName(header.Filename, req.format), imageutil.ContentType(req.format), nil
}

func isGeometryError(err error) bool {
	return errors.Is(err, img2glyph.ErrInvalidColumns) ||
		errors.Is(err, img2glyph.ErrEmptyImage) ||
		errors.Is(err, img2glyph.ErrDegenerateGrid)
}

// parseRequest reads the form fields, applying defaults to absent ones.
// A field sent empty is taken as given, so custom_text="" selects the
// language's own glyphs.
func parseRequest(r *http.Request) (*request, error) {
	field := func(key, def string) string {
		if v, ok := r.MultipartForm.Value[key]; ok && len(v) > 0 {
			return v[0]
		}
		return def
	}
	boolField := func(key string, def bool) (bool, error) {
		v := field(key, strconv.FormatBool(def))
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, badRequest("invalid %s %q", key, v)
		}
		return b, nil
	}

	req := &request{
		customText: field("custom_text", DefaultCustomText),
		language:   field("language", DefaultLanguage),
	}

	var err error
	if req.color, err = boolField("color", true); err != nil {
		return nil, err
	}
	if req.portrait, err = boolField("portrait", false); err != nil {
		return nil, err
	}

	cols := field("columns", strconv.Itoa(img2glyph.DefaultColumns))
	if req.columns, err = strconv.Atoi(cols); err != nil {
		return nil, badRequest("invalid columns %q", cols)
	}

	req.format = imageutil.NormalizeExt(field("format", DefaultFormat))
	switch req.format {
	case "png", "jpg":
	case "jpeg":
		req.format = "jpg"
	default:
		return nil, badRequest("unsupported format %q", req.format)
	}
	return req, nil
}

// outputName derives the download name from the uploaded file name.
func outputName(upload, format string) string {
	base := filepath.Base(upload)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "image"
	}
	return "ascii_" + base + "." + format
}
