// Command mcp-server runs a long-lived HTTP server exposing the otp
// example tools over the dispatcher core.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/localrivet/mcpcore/auth"
	"github.com/localrivet/mcpcore/dispatcher"
	"github.com/localrivet/mcpcore/examples/otp"
	"github.com/localrivet/mcpcore/logx"
	"github.com/localrivet/mcpcore/registry"
	transporthttp "github.com/localrivet/mcpcore/transport/http"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	jwtSecret := flag.String("jwt-secret", "dev-secret", "HMAC secret used to sign session tokens issued by otp-verify")
	jwksURL := flag.String("jwks-url", "", "JWKS endpoint; when set, every request must carry a valid bearer token")
	flag.Parse()

	logger := logx.NewDefaultLogger()

	reg := registry.New()
	store := otp.NewStore([]byte(*jwtSecret), logger)
	tools := store.Register(reg)

	d, err := dispatcher.New("mcpcore-server", "1.0.0", tools, nil, reg, dispatcher.WithLogger(logger))
	if err != nil {
		log.Fatalf("build dispatcher: %v", err)
	}

	httpOpts := []transporthttp.Option{transporthttp.WithLogger(logger)}
	if *jwksURL != "" {
		validator, err := auth.NewJWKSTokenValidator(auth.JWKSConfig{JWKSURL: *jwksURL}, nil)
		if err != nil {
			log.Fatalf("build JWKS token validator: %v", err)
		}
		httpOpts = append(httpOpts, transporthttp.WithTokenValidator(validator))
		logger.Info("requiring bearer tokens validated against %s", *jwksURL)
	}

	transport := transporthttp.New(*addr, d, httpOpts...)
	if err := transport.Start(); err != nil {
		log.Fatalf("start http transport: %v", err)
	}
	logger.Info("listening on %s%s", *addr, transporthttp.DefaultAPIPath)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down")
	if err := transport.Stop(); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
}
