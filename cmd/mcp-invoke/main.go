// Command mcp-invoke dispatches a single JSON-RPC request read from
// stdin and writes the response to stdout, then exits. It models the
// serverless invocation shape (one request in, one response out, no
// persistent connection) without depending on any particular FaaS
// runtime.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/localrivet/mcpcore/dispatcher"
	"github.com/localrivet/mcpcore/examples/otp"
	"github.com/localrivet/mcpcore/protocol"
	"github.com/localrivet/mcpcore/registry"
	"github.com/localrivet/mcpcore/response"
)

func main() {
	jwtSecret := flag.String("jwt-secret", "dev-secret", "HMAC secret used to sign session tokens issued by otp-verify")
	flag.Parse()

	body, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read stdin: %v\n", err)
		os.Exit(1)
	}

	resp := invoke(body, []byte(*jwtSecret))

	if resp.IsNotification() {
		os.Exit(0)
	}
	if err := json.NewEncoder(os.Stdout).Encode(resp); err != nil {
		fmt.Fprintf(os.Stderr, "encode response: %v\n", err)
		os.Exit(1)
	}
}

func invoke(body, jwtSecret []byte) response.Response {
	reg := registry.New()
	store := otp.NewStore(jwtSecret, nil)
	tools := store.Register(reg)

	d, err := dispatcher.New("mcpcore-invoke", "1.0.0", tools, nil, reg)
	if err != nil {
		return response.Error(nil, protocol.CodeInternalError, "build dispatcher: "+err.Error(), nil)
	}

	req, err := protocol.ParseRequest(body)
	if err != nil {
		return response.Error(nil, protocol.CodeParseError, "Parse error: "+err.Error(), nil)
	}

	return d.Dispatch(context.Background(), req, nil)
}
