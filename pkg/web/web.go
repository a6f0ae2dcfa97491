// Package web is the live browser frontend: clients send view transforms
// over a websocket and receive freshly rendered PNG frames back.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/willbeason/mandelterm/pkg/geometry"
	"github.com/willbeason/mandelterm/pkg/render"
)

// Frame dimension limits; requests outside them are clamped.
const (
	MinDim = 16
	MaxDim = 4096
)

// A command is one client request: optionally a transform, always a
// frame size to render back.
type command struct {
	Op     string `json:"op"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

var ops = map[string]render.Transform{
	"translateUp":    render.TranslateUp,
	"translateDown":  render.TranslateDown,
	"translateLeft":  render.TranslateLeft,
	"translateRight": render.TranslateRight,
	"scaleIn":        render.ScaleIn,
	"scaleOut":       render.ScaleOut,
	"incIterations":  render.IncIterations,
	"decIterations":  render.DecIterations,
	"incExp":         render.IncExp,
	"decExp":         render.DecExp,
	"switchFn":       render.SwitchFn,
	"reset":          render.Reset,
}

// A Server shares one render context among however many websocket
// clients connect; every transform is visible to all of them.
type Server struct {
	mu  sync.Mutex
	ctx *render.Context
}

func NewServer(ctx *render.Context) *Server {
	return &Server{ctx: ctx}
}

// Handler serves the index page at / and the frame socket at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(indexHTML))
	})
	return mux
}

// ListenAndServe runs an HTTP server for the frontend on addr.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("listening on http://%s", addr)
	return srv.ListenAndServe()
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Printf("websocket accept: %v", err)
		return
	}
	defer c.Close(websocket.StatusInternalError, "session ended")

	log.Printf("client connected: %s", r.RemoteAddr)

	for {
		if err := s.serveFrame(r.Context(), c); err != nil {
			log.Printf("client %s: %v", r.RemoteAddr, err)
			return
		}
	}
}

// serveFrame handles one command round-trip: read, transform, render,
// reply with a PNG frame.
func (s *Server) serveFrame(ctx context.Context, c *websocket.Conn) error {
	_, data, err := c.Read(ctx)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	var cmd command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return fmt.Errorf("decoding command: %w", err)
	}

	frame, err := s.renderFrame(cmd)
	if err != nil {
		return err
	}

	if err := c.Write(ctx, websocket.MessageBinary, frame); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (s *Server) renderFrame(cmd command) ([]byte, error) {
	bounds := geometry.Bounds{
		Width:  clampDim(cmd.Width),
		Height: clampDim(cmd.Height),
	}

	s.mu.Lock()
	if t, ok := ops[cmd.Op]; ok {
		s.ctx.Apply(t)
	}
	// Snapshot so rendering happens outside the lock.
	snapshot := s.ctx.Clone()
	s.mu.Unlock()

	img := snapshot.Bind(bounds).EMatrix().ToImage(snapshot.Colorer)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding frame: %w", err)
	}
	return buf.Bytes(), nil
}

func clampDim(d int) int {
	switch {
	case d < MinDim:
		return MinDim
	case d > MaxDim:
		return MaxDim
	default:
		return d
	}
}
