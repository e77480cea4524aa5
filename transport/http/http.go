// Package http is a reference long-lived HTTP transport for the
// dispatcher core: one JSON-RPC request per POST, one response per
// request, notifications answered with a bare 202.
package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/localrivet/mcpcore/auth"
	"github.com/localrivet/mcpcore/dispatcher"
	"github.com/localrivet/mcpcore/logx"
	"github.com/localrivet/mcpcore/protocol"
	"github.com/localrivet/mcpcore/response"
)

// DefaultShutdownTimeout bounds how long Stop waits for in-flight
// requests to finish.
const DefaultShutdownTimeout = 10 * time.Second

// DefaultAPIPath is the endpoint the dispatcher is mounted on.
const DefaultAPIPath = "/mcp"

// Transport serves a Dispatcher over HTTP POST.
type Transport struct {
	addr       string
	apiPath    string
	dispatcher *dispatcher.Dispatcher
	validator  auth.TokenValidator
	logger     logx.Logger
	server     *http.Server
}

// Option configures a Transport.
type Option func(*Transport)

// WithAPIPath overrides the default mount path.
func WithAPIPath(path string) Option {
	return func(t *Transport) { t.apiPath = path }
}

// WithTokenValidator attaches a bearer-token validator. When set, every
// request must carry a valid "Authorization: Bearer <token>" header;
// the resolved principal's claims become the dispatch's rpcContext.
func WithTokenValidator(v auth.TokenValidator) Option {
	return func(t *Transport) { t.validator = v }
}

// WithLogger overrides the transport's logger.
func WithLogger(logger logx.Logger) Option {
	return func(t *Transport) { t.logger = logger }
}

// New creates an HTTP transport bound to addr, dispatching every
// request on the mount path to d.
func New(addr string, d *dispatcher.Dispatcher, opts ...Option) *Transport {
	t := &Transport{
		addr:       addr,
		apiPath:    DefaultAPIPath,
		dispatcher: d,
		logger:     logx.NopLogger{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Handler returns an http.Handler serving the dispatcher at the
// configured API path, for embedding in a caller's own server or for
// tests driven with httptest.
func (t *Transport) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(t.apiPath, t.handleRequest)
	return mux
}

// Start begins serving in the background. It returns once the listener
// goroutine has been launched; use Stop for graceful shutdown.
func (t *Transport) Start() error {
	t.server = &http.Server{
		Addr:    t.addr,
		Handler: t.Handler(),
	}

	go func() {
		if err := t.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			t.logger.Error("http transport: serve: %v", err)
		}
	}()
	return nil
}

// Stop gracefully shuts the server down.
func (t *Transport) Stop() error {
	if t.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	return t.server.Shutdown(ctx)
}

func (t *Transport) handleRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	req, err := protocol.ParseRequest(body)
	if err != nil {
		t.writeResponse(w, response.Error(json.RawMessage("null"), protocol.CodeParseError, "Parse error: "+err.Error(), nil))
		return
	}

	rpcContext, authErr := t.resolveRPCContext(r)
	if authErr != nil {
		t.writeResponse(w, response.Error(req.ID, protocol.CodeInvalidRequest, authErr.Error(), nil))
		return
	}

	resp := t.dispatcher.Dispatch(r.Context(), req, rpcContext)

	if resp.IsNotification() {
		w.WriteHeader(http.StatusAccepted)
		return
	}
	t.writeResponse(w, resp)
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

func (t *Transport) writeResponse(w http.ResponseWriter, resp response.Response) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.logger.Error("http transport: encode response: %v", err)
	}
}
