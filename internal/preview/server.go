package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alnah/go-md2resume/internal/pipeline"
)

// Server defaults.
const (
	MaxDocumentSize  = 1 << 20 // POST /render body limit
	EditorDebounce   = 300 * time.Millisecond
	ShutdownTimeout  = 5 * time.Second
	RenderPath       = "/render"
	EventsPath       = "/events"
	readHeaderLimit  = 10 * time.Second
	reloadEventFrame = "event: reload\ndata: {}\n\n"
)

// reloadScript makes a watched-file page reload after each re-render.
const reloadScript = `<script>new EventSource("` + EventsPath + `").addEventListener("reload", function () { location.reload(); });</script>`

// ErrNoEditor indicates Options.Editor was empty.
var ErrNoEditor = errors.New("editor template is required")

// Renderer turns resume text into a complete HTML page.
type Renderer interface {
	Render(ctx context.Context, text string) ([]byte, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, text string) ([]byte, error)

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, text string) ([]byte, error) {
	return f(ctx, text)
}

// Options configures a Server.
type Options struct {
	Addr     string        // Listen address for ListenAndServe
	File     string        // Resume file to watch; empty serves the editor only
	Debounce time.Duration // Delay between a file event and the re-render
	Editor   string        // Editor page template
	Logger   *slog.Logger  // Nil discards logs
}

// Server is the preview HTTP server.
type Server struct {
	renderer Renderer
	opts     Options
	log      *slog.Logger
	router   chi.Router
	editor   *template.Template
	events   *broker

	mu        sync.RWMutex
	page      []byte
	renderErr error
}

// editorData is the editor template's view.
type editorData struct {
	Document       string
	RenderPath     string
	DebounceMillis int64
}

// New creates a Server. When opts.File is set the file is rendered once
// before New returns; a render failure is served as an error page rather
// than returned.
func New(renderer Renderer, opts Options) (*Server, error) {
	if opts.Editor == "" {
		return nil, ErrNoEditor
	}
	editor, err := template.New("editor").Parse(opts.Editor)
	if err != nil {
		return nil, fmt.Errorf("parsing editor template: %w", err)
	}

	if opts.File != "" {
		abs, err := filepath.Abs(opts.File)
		if err != nil {
			return nil, err
		}
		opts.File = abs
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		renderer: renderer,
		opts:     opts,
		log:      log,
		editor:   editor,
		events:   newBroker(),
	}
	s.setupRoutes()

	if opts.File != "" {
		if err := s.Refresh(context.Background()); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
			log.Warn("initial render failed", "file", opts.File, "error", err)
		}
	}
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(s.log))

	r.Get("/", s.handlePage)
	r.Get("/editor", s.handleEditor)
	r.Post(RenderPath, s.handleRender)
	r.Get(EventsPath, s.handleEvents)
	r.Get("/healthz", s.handleHealth)
	// Images and documents linked from the watched resume.
	r.Get("/*", s.handleStatic)

	s.router = r
}

// Refresh re-reads and re-renders the watched file, then notifies open
// pages. Read errors are returned and leave the last page in place.
// Render errors are stored and served until the next successful render.
func (s *Server) Refresh(ctx context.Context) error {
	if s.opts.File == "" {
		return nil
	}
	data, err := os.ReadFile(s.opts.File)
	if err != nil {
		return fmt.Errorf("reading %s: %w", s.opts.File, err)
	}

	page, renderErr := s.renderer.Render(ctx, string(data))

	s.mu.Lock()
	if renderErr == nil {
		s.page = []byte(pipeline.InjectBeforeBodyEnd(string(page), reloadScript))
	}
	s.renderErr = renderErr
	s.mu.Unlock()

	s.events.publish()
	return renderErr
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if s.opts.File == "" {
		http.Error(w, "no resume file is being watched; open /editor", http.StatusNotFound)
		return
	}

	s.mu.RLock()
	page, renderErr := s.page, s.renderErr
	s.mu.RUnlock()

	if renderErr != nil {
		http.Error(w, "render failed: "+renderErr.Error(), http.StatusInternalServerError)
		return
	}
	writeHTML(w, page)
}

func (s *Server) handleEditor(w http.ResponseWriter, r *http.Request) {
	data := editorData{
		RenderPath:     RenderPath,
		DebounceMillis: EditorDebounce.Milliseconds(),
	}
	if s.opts.File != "" {
		if doc, err := os.ReadFile(s.opts.File); err == nil {
			data.Document = string(doc)
		}
	}

	var buf bytes.Buffer
	if err := s.editor.Execute(&buf, data); err != nil {
		s.log.Error("editor template failed", "error", err)
		http.Error(w, "editor unavailable", http.StatusInternalServerError)
		return
	}
	writeHTML(w, buf.Bytes())
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxDocumentSize))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "document too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "reading document: "+err.Error(), http.StatusBadRequest)
		return
	}

	page, err := s.renderer.Render(r.Context(), string(body))
	if err != nil {
		s.log.Warn("render failed", "error", err, "request_id", middleware.GetReqID(r.Context()))
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeHTML(w, page)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)

	ch, ok := s.events.subscribe()
	if !ok {
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}
	defer s.events.unsubscribe(ch)

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, ": connected\n\n"); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		s.log.Error("event stream not flushable", "error", err)
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case _, open := <-ch:
			if !open {
				return
			}
			if _, err := io.WriteString(w, reloadEventFrame); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if s.opts.File == "" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	http.FileServer(http.Dir(filepath.Dir(s.opts.File))).ServeHTTP(w, r)
}

func writeHTML(w http.ResponseWriter, page []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(page)
}

// ListenAndServe serves on opts.Addr until ctx is canceled, then shuts
// down gracefully within ShutdownTimeout. Event streams are closed at
// shutdown so they do not hold it open.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s,
		ReadHeaderTimeout: readHeaderLimit,
	}
	srv.RegisterOnShutdown(s.events.close)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("preview server listening", "addr", s.opts.Addr, "file", s.opts.File)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		s.log.Info("preview server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
