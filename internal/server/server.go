// Package server exposes the evaluator over HTTP and websocket.
//
// Endpoints:
//
//	/ws        websocket; each text message is an expression, each reply its JSON result
//	/eval      GET ?expr=...; JSON result, 400 when evaluation fails
//	/metrics   Prometheus metrics
package server

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cockroachdb/apint/internal/calc"
	"github.com/cockroachdb/apint/internal/logging"
	"github.com/cockroachdb/apint/internal/metrics"
	json "github.com/goccy/go-json"
	"github.com/lxzan/gws"
	"github.com/pkg/errors"
)

const shutdownTimeout = 5 * time.Second

// Server serves one Evaluator.
type Server struct {
	eval     *calc.Evaluator
	log      logging.Logger
	metrics  *metrics.Metrics
	upgrader *gws.Upgrader
	mux      *http.ServeMux

	mu    sync.Mutex
	conns map[*gws.Conn]struct{}
}

// New returns a Server. m may be nil, in which case /metrics is not served.
func New(e *calc.Evaluator, log logging.Logger, m *metrics.Metrics) *Server {
	s := &Server{
		eval:    e,
		log:     log,
		metrics: m,
		mux:     http.NewServeMux(),
		conns:   make(map[*gws.Conn]struct{}),
	}
	s.upgrader = gws.NewUpgrader(&socketHandler{s: s}, &gws.ServerOption{})
	s.mux.HandleFunc("/ws", s.serveWS)
	s.mux.HandleFunc("/eval", s.serveEval)
	if m != nil {
		s.mux.Handle("/metrics", m.Handler())
	}
	return s
}

// Handler returns the HTTP handler of s.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Serve accepts connections on l until ctx is canceled, then shuts down
// gracefully and closes the websockets that are still open.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(l) }()
	s.log.Info("serving", logging.String("addr", l.Addr().String()))

	select {
	case err := <-errc:
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("shutting down", logging.Int("websockets", s.openSockets()))
	err := srv.Shutdown(shutdownCtx)
	s.closeSockets()
	if err != nil {
		return errors.Wrap(err, "shutdown")
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serve")
	}
	return nil
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", addr)
	}
	return s.Serve(ctx, l)
}

// handle evaluates one expression and returns the JSON-encoded result.
func (s *Server) handle(ctx context.Context, expr string) (calc.Result, []byte) {
	res := s.eval.Eval(ctx, expr)
	data, err := json.Marshal(res)
	if err != nil {
		s.log.Error("encoding result", err, logging.String("expr", expr))
		data = []byte(`{"error":"internal error"}`)
	}
	return res, data
}

func (s *Server) serveEval(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	res, data := s.handle(r.Context(), r.URL.Query().Get("expr"))
	w.Header().Set("Content-Type", "application/json")
	if res.Failed() {
		w.WriteHeader(http.StatusBadRequest)
	}
	w.Write(data)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	socket, err := s.upgrader.Upgrade(w, r)
	if err != nil {
		s.log.Error("websocket upgrade", err, logging.String("remote", r.RemoteAddr))
		return
	}
	s.mu.Lock()
	s.conns[socket] = struct{}{}
	s.mu.Unlock()
	go socket.ReadLoop()
}

// closeSockets closes the connections of all open websockets. Their read
// loops then end and OnClose runs for each.
func (s *Server) closeSockets() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for socket := range s.conns {
		_ = socket.NetConn().Close()
	}
}

func (s *Server) openSockets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// socketHandler implements gws.Event.
type socketHandler struct {
	s *Server
}

func (h *socketHandler) OnOpen(socket *gws.Conn) {
	h.s.log.Debug("websocket open", logging.String("remote", socket.RemoteAddr().String()))
}

func (h *socketHandler) OnClose(socket *gws.Conn, err error) {
	h.s.mu.Lock()
	delete(h.s.conns, socket)
	h.s.mu.Unlock()
	h.s.log.Debug("websocket closed", logging.String("remote", socket.RemoteAddr().String()), logging.Err(err))
}

func (h *socketHandler) OnPing(socket *gws.Conn, payload []byte) {
	_ = socket.WritePong(payload)
}

func (h *socketHandler) OnPong(socket *gws.Conn, payload []byte) {}

func (h *socketHandler) OnMessage(socket *gws.Conn, message *gws.Message) {
	defer message.Close()
	if message.Opcode != gws.OpcodeText {
		return
	}
	_, data := h.s.handle(context.Background(), string(message.Bytes()))
	if err := socket.WriteMessage(gws.OpcodeText, data); err != nil {
		h.s.log.Error("websocket write", err)
	}
}
