package dispatcher

import (
	"fmt"

	"github.com/localrivet/mcpcore/catalog"
	"github.com/localrivet/mcpcore/logx"
	"github.com/localrivet/mcpcore/protocol"
	"github.com/localrivet/mcpcore/registry"
	"github.com/localrivet/mcpcore/response"
)

// Dispatcher is the single entry point for handling parsed JSON-RPC
// requests. It owns the tool and resource catalogs, their pre-serialized
// cached payloads, and the handler registry. A Dispatcher is stateless
// across requests and safe for concurrent use once built.
type Dispatcher struct {
	name    string
	version string

	tools     *catalog.ToolCatalog
	resources *catalog.ResourceCatalog
	handlers  *registry.Registry
	logger    logx.Logger

	initializeCached    *response.CachedPayload
	toolsListCached     *response.CachedPayload
	resourcesListCached *response.CachedPayload
}

// Option configures a Dispatcher at build time.
type Option func(*config)

type config struct {
	logger logx.Logger
}

// WithLogger overrides the default no-op logger.
func WithLogger(logger logx.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// New builds a Dispatcher for a server identified by (name, version),
// serving tools and resources, with handlers looked up from reg. The
// three cached payloads (initialize, tools/list, resources/list) are
// computed once here and never rebuilt.
func New(name, version string, tools []protocol.Tool, resources []protocol.Resource, reg *registry.Registry, opts ...Option) (*Dispatcher, error) {
	cfg := config{logger: logx.NopLogger{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	toolCatalog := catalog.NewToolCatalog(tools)
	resourceCatalog := catalog.NewResourceCatalog(resources)

	initResult := protocol.InitializeResult{
		ProtocolVersion: protocol.ProtocolVersion,
		Capabilities: protocol.Capabilities{
			Tools:     protocol.ToolsCapability{ListChanged: false},
			Resources: protocol.ResourcesCapability{Subscribe: false, ListChanged: false},
		},
		ServerInfo: protocol.ServerInfo{Name: name, Version: version},
	}
	initCached, err := response.NewCachedPayload(initResult)
	if err != nil {
		return nil, fmt.Errorf("build initialize cache: %w", err)
	}

	toolsListCached, err := response.NewCachedPayload(struct {
		Tools []protocol.Tool `json:"tools"`
	}{Tools: toolCatalog.List()})
	if err != nil {
		return nil, fmt.Errorf("build tools/list cache: %w", err)
	}

	resourcesListCached, err := response.NewCachedPayload(struct {
		Resources []protocol.Resource `json:"resources"`
	}{Resources: resourceCatalog.List()})
	if err != nil {
		return nil, fmt.Errorf("build resources/list cache: %w", err)
	}

	if reg == nil {
		reg = registry.New()
	}

	return &Dispatcher{
		name:                name,
		version:             version,
		tools:               toolCatalog,
		resources:           resourceCatalog,
		handlers:            reg,
		logger:              cfg.logger,
		initializeCached:    initCached,
		toolsListCached:     toolsListCached,
		resourcesListCached: resourcesListCached,
	}, nil
}
