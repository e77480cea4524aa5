// Package ws is a reference WebSocket transport for the dispatcher
// core: each connection is a long-lived session, every inbound text
// frame is one JSON-RPC request, dispatched and answered on the same
// connection.
package ws

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/google/uuid"

	"github.com/localrivet/mcpcore/auth"
	"github.com/localrivet/mcpcore/dispatcher"
	"github.com/localrivet/mcpcore/logx"
	"github.com/localrivet/mcpcore/protocol"
	"github.com/localrivet/mcpcore/response"
)

// DefaultShutdownTimeout bounds how long Stop waits for connections to
// drain.
const DefaultShutdownTimeout = 10 * time.Second

// Transport upgrades incoming HTTP connections to WebSocket and
// dispatches every frame received on each connection.
type Transport struct {
	addr       string
	path       string
	dispatcher *dispatcher.Dispatcher
	validator  auth.TokenValidator
	logger     logx.Logger

	server *http.Server

	connsMu sync.Mutex
	conns   map[string]net.Conn
}

// Option configures a Transport.
type Option func(*Transport)

// WithPath overrides the default "/" upgrade path.
func WithPath(path string) Option {
	return func(t *Transport) { t.path = path }
}

// WithTokenValidator attaches a bearer-token validator checked once at
// connection upgrade time; the resolved principal's claims are reused
// as rpcContext for every message on that connection.
func WithTokenValidator(v auth.TokenValidator) Option {
	return func(t *Transport) { t.validator = v }
}

// WithLogger overrides the transport's logger.
func WithLogger(logger logx.Logger) Option {
	return func(t *Transport) { t.logger = logger }
}

// New creates a WebSocket transport bound to addr, dispatching every
// message received on any connection to d.
func New(addr string, d *dispatcher.Dispatcher, opts ...Option) *Transport {
	t := &Transport{
		addr:       addr,
		path:       "/",
		dispatcher: d,
		logger:     logx.NopLogger{},
		conns:      make(map[string]net.Conn),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Handler returns an http.Handler that upgrades connections on the
// configured path, for embedding in a caller's own server or for tests
// driven with httptest.
func (t *Transport) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(t.path, t.handleUpgrade)
	return mux
}

// Start begins accepting WebSocket connections in the background.
func (t *Transport) Start() error {
	t.server = &http.Server{
		Addr:    t.addr,
		Handler: t.Handler(),
	}

	go func() {
		if err := t.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			t.logger.Error("ws transport: serve: %v", err)
		}
	}()
	return nil
}

// Stop closes every open connection and shuts the server down.
func (t *Transport) Stop() error {
	t.connsMu.Lock()
	for id, conn := range t.conns {
		conn.Close()
		delete(t.conns, id)
	}
	t.connsMu.Unlock()

	if t.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	return t.server.Shutdown(ctx)
}

func (t *Transport) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	rpcContext, err := t.resolveRPCContext(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	conn, _, _, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		t.logger.Warn("ws transport: upgrade failed: %v", err)
		return
	}

	connID := uuid.NewString()
	t.connsMu.Lock()
	t.conns[connID] = conn
	t.connsMu.Unlock()

	go t.serveConnection(connID, conn, rpcContext)
}

func (t *Transport) resolveRPCContext(r *http.Request) (json.RawMessage, error) {
	if t.validator == nil {
		return nil, nil
	}
	token, ok := auth.BearerToken(r.Header.Get("Authorization"))
	if !ok {
		return nil, errMissingBearerToken
	}
	principal, err := t.validator.ValidateToken(r.Context(), token)
	if err != nil {
		return nil, err
	}
	return auth.RPCContext(principal)
}

var errMissingBearerToken = protocol.NewInvalidParamsError("missing bearer token")

func (t *Transport) serveConnection(connID string, conn net.Conn, rpcContext json.RawMessage) {
	defer func() {
		conn.Close()
		t.connsMu.Lock()
		delete(t.conns, connID)
		t.connsMu.Unlock()
	}()

	for {
		msg, op, err := wsutil.ReadClientData(conn)
		if err != nil {
			return
		}
		if op == ws.OpClose {
			return
		}
		if op != ws.OpText && op != ws.OpBinary {
			continue
		}

		resp := t.dispatchMessage(msg, rpcContext)
		if resp.IsNotification() {
			continue
		}

		encoded, err := json.Marshal(resp)
		if err != nil {
			t.logger.Error("ws transport: marshal response: %v", err)
			return
		}
		if err := wsutil.WriteServerMessage(conn, ws.OpText, encoded); err != nil {
			t.logger.Warn("ws transport: write failed: %v", err)
			return
		}
	}
}

func (t *Transport) dispatchMessage(raw []byte, rpcContext json.RawMessage) response.Response {
	req, err := protocol.ParseRequest(raw)
	if err != nil {
		return response.Error(json.RawMessage("null"), protocol.CodeParseError, "Parse error: "+err.Error(), nil)
	}
	return t.dispatcher.Dispatch(context.Background(), req, rpcContext)
}
