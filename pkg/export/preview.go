package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultPreviewPort is the default port for the preview server.
const DefaultPreviewPort = 9000

// PreviewPortRangeStart and PreviewPortRangeEnd bound the ports tried when
// the default is taken.
const (
	PreviewPortRangeStart = 9000
	PreviewPortRangeEnd   = 9100
)

// PreviewServer serves a directory of exported diagrams for viewing in a
// browser. Responses are never cached so a re-export shows on reload.
type PreviewServer struct {
	dir    string
	addr   string
	logger *slog.Logger

	listener net.Listener
	server   *http.Server
	started  time.Time
}

// NewPreviewServer creates a preview server for dir listening on addr
// (host:port; port 0 picks a free one).
func NewPreviewServer(dir, addr string, logger *slog.Logger) *PreviewServer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &PreviewServer{
		dir:    dir,
		addr:   addr,
		logger: logger,
	}
}

// Handler returns the HTTP handler: the directory with no-cache headers and
// a JSON status endpoint.
func (p *PreviewServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", noCacheMiddleware(http.FileServer(http.Dir(p.dir))))
	mux.HandleFunc("/__preview__/status", p.statusHandler)
	return mux
}

// Listen binds the listening socket. Run calls it when needed.
func (p *PreviewServer) Listen() error {
	if p.listener != nil {
		return nil
	}
	if _, err := os.Stat(p.dir); err != nil {
		return fmt.Errorf("preview directory: %w", err)
	}
	ln, err := net.Listen("tcp", p.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", p.addr, err)
	}
	p.listener = ln
	return nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (p *PreviewServer) Run(ctx context.Context) error {
	if err := p.Listen(); err != nil {
		return err
	}
	p.server = &http.Server{
		Handler:           p.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	p.started = time.Now()
	p.logger.Info("preview server running", "url", p.URL(), "path", p.dir)

	errChan := make(chan error, 1)
	go func() {
		if err := p.server.Serve(p.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		p.logger.Info("shutting down preview server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return p.server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}

// Addr returns the bound address, or the configured one before Listen.
func (p *PreviewServer) Addr() string {
	if p.listener != nil {
		return p.listener.Addr().String()
	}
	return p.addr
}

// URL returns the full URL of the preview server.
func (p *PreviewServer) URL() string {
	addr := p.Addr()
	if host, port, err := net.SplitHostPort(addr); err == nil && (host == "" || host == "::" || host == "0.0.0.0") {
		addr = net.JoinHostPort("localhost", port)
	}
	return "http://" + addr
}

type previewStatus struct {
	Status string   `json:"status"`
	Dir    string   `json:"dir"`
	Files  []string `json:"files"`
	Uptime string   `json:"uptime,omitempty"`
}

// statusHandler returns the preview server status as JSON.
func (p *PreviewServer) statusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	st := previewStatus{Status: "running", Dir: p.dir, Files: []string{}}
	filepath.WalkDir(p.dir, func(path string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			rel, _ := filepath.Rel(p.dir, path)
			st.Files = append(st.Files, filepath.ToSlash(rel))
		}
		return nil
	})
	sort.Strings(st.Files)
	if !p.started.IsZero() {
		st.Uptime = time.Since(p.started).Round(time.Second).String()
	}
	json.NewEncoder(w).Encode(st)
}

// noCacheMiddleware adds headers to prevent browser caching.
func noCacheMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// FindAvailablePort finds an available port in the given range.
func FindAvailablePort(start, end int) (int, error) {
	for port := start; port <= end; port++ {
		listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			listener.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port in range %d-%d", start, end)
}

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>{{.Title}}</title>
<style>body{font-family:monospace;margin:2em;background:#fafafa}img{max-width:100%;border:1px solid #ddd;background:#fff}</style>
</head><body>
<h1>{{.Title}}</h1>
{{range .Images}}<figure><img src="{{.}}" alt="{{.}}"><figcaption>{{.}}</figcaption></figure>
{{end}}</body></html>
`))

// WriteIndex writes an index.html in dir showing every svg and png in it.
func WriteIndex(dir, title string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}
	var images []string
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !e.IsDir() && (ext == ".svg" || ext == ".png") {
			images = append(images, e.Name())
		}
	}

	f, err := os.Create(filepath.Join(dir, "index.html"))
	if err != nil {
		return fmt.Errorf("creating index: %w", err)
	}
	if err := indexTemplate.Execute(f, struct {
		Title  string
		Images []string
	}{title, images}); err != nil {
		f.Close()
		return fmt.Errorf("rendering index: %w", err)
	}
	return f.Close()
}
