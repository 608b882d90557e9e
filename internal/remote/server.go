// Package remote implements a remote debugger for a running
// emulator, served over a websocket.
package remote

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/thelolagemann/gbcore/internal/gameboy"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// Server exposes a gameboy.Runner to debuggers connecting to /ws.
type Server struct {
	r   *gameboy.Runner
	log log.Logger

	mu    sync.Mutex
	conns map[*conn]struct{}
}

// conn is a debugger connection. gorilla/websocket supports a
// single concurrent writer, hence the lock.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) write(resp Response) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(resp)
}

type handlerFunc func(ctx context.Context, data []byte) (gameboy.State, error)

// NewServer returns a new Server controlling r.
func NewServer(r *gameboy.Runner, l log.Logger) *Server {
	if l == nil {
		l = log.NewNullLogger()
	}
	return &Server{
		r:     r,
		log:   l,
		conns: make(map[*conn]struct{}),
	}
}

// Handler returns the HTTP handler serving the debugger endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebsocket)
	return mux
}

// ListenAndServe serves the debugger on addr until ctx is cancelled,
// forwarding runner events to every connected debugger.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(err, "failed to start debugger server")
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{Handler: s.Handler()}

	go s.forwardEvents(ctx)
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		server.Shutdown(shutdown)
		s.closeAll()
	}()

	s.log.Infof("debugger server listening on %s", ln.Addr())
	if err := server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Errorf("failed to perform websocket handshake: %v", err)
		return
	}
	c := &conn{ws: ws}
	s.mu.Lock()
	s.conns[c] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.conns, c)
		s.mu.Unlock()
		ws.Close()
	}()

	s.log.Debugf("debugger connected from %s", r.RemoteAddr)
	if err := s.drive(r.Context(), c); err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		s.log.Warnf("connection to debugger ended: %v", err)
	}
}

func (s *Server) handlers() map[string]handlerFunc {
	return map[string]handlerFunc{
		"pause": func(ctx context.Context, _ []byte) (gameboy.State, error) {
			return s.r.Pause(ctx)
		},
		"resume": func(ctx context.Context, _ []byte) (gameboy.State, error) {
			return s.r.Resume(ctx)
		},
		"step": func(ctx context.Context, _ []byte) (gameboy.State, error) {
			return s.r.Step(ctx)
		},
		"state": func(ctx context.Context, _ []byte) (gameboy.State, error) {
			return s.r.State(ctx)
		},
		"breakpoint": func(ctx context.Context, data []byte) (gameboy.State, error) {
			var bp breakpointData
			if err := json.Unmarshal(data, &bp); err != nil {
				return gameboy.State{}, errors.Wrap(err, "decoding breakpoint")
			}
			return s.r.SetBreakpoint(ctx, bp.Address, bp.Enabled)
		},
	}
}

// drive sends the initial state, then answers requests until the
// connection closes.
func (s *Server) drive(ctx context.Context, c *conn) error {
	handlers := s.handlers()

	st, err := s.r.State(ctx)
	if err != nil {
		return err
	}
	if err := c.write(Response{Event: "state", Data: stateData(st)}); err != nil {
		return err
	}

	for {
		var req Request
		if err := c.ws.ReadJSON(&req); err != nil {
			return err
		}
		s.log.Debugf("received %q from debugger", req.Event)

		resp := Response{Event: "state"}
		if h, ok := handlers[req.Event]; !ok {
			resp = Response{Event: "error", Error: "unknown event: " + req.Event}
		} else if st, err := h(ctx, req.Data); err != nil {
			s.log.Errorf("error handling debugger event %q: %v", req.Event, err)
			resp = Response{Event: "error", Error: err.Error()}
		} else {
			resp.Data = stateData(st)
		}

		if err := c.write(resp); err != nil {
			return err
		}
	}
}

// forwardEvents pushes run loop events to every connection.
func (s *Server) forwardEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-s.r.Events():
			resp := Response{Event: e.Kind.String(), Data: stateData(e.State)}
			if e.Err != nil {
				resp.Error = e.Err.Error()
			}
			s.broadcast(resp)
		}
	}
}

func (s *Server) broadcast(resp Response) {
	s.mu.Lock()
	conns := make([]*conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		if err := c.write(resp); err != nil {
			s.log.Warnf("failed to push %s event: %v", resp.Event, err)
		}
	}
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		c.ws.Close()
	}
}
