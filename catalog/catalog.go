// Package catalog holds the immutable-after-build sets of tools and
// resources a dispatcher advertises, plus the schema.Metadata derived
// from each tool's inputSchema for later validation.
package catalog

import (
	"github.com/localrivet/mcpcore/protocol"
	"github.com/localrivet/mcpcore/schema"
)

// ToolEntry pairs a tool definition with the validation metadata parsed
// out of its inputSchema once, at catalog build time.
type ToolEntry struct {
	Tool protocol.Tool
	Meta schema.Metadata
}

// ToolCatalog is an insertion-ordered, immutable set of tools. Order is
// preserved so tools/list is deterministic across requests.
type ToolCatalog struct {
	order   []string
	entries map[string]ToolEntry
}

// ResourceCatalog is an insertion-ordered, immutable set of resources,
// looked up by name or by URI.
type ResourceCatalog struct {
	order  []string
	byName map[string]protocol.Resource
	byURI  map[string]protocol.Resource
}

// NewToolCatalog builds a ToolCatalog from tool definitions, parsing and
// caching each one's schema metadata. A later duplicate name overwrites
// an earlier one but keeps the earlier entry's position in List.
func NewToolCatalog(tools []protocol.Tool) *ToolCatalog {
	c := &ToolCatalog{entries: make(map[string]ToolEntry, len(tools))}
	for _, t := range tools {
		if _, exists := c.entries[t.Name]; !exists {
			c.order = append(c.order, t.Name)
		}
		c.entries[t.Name] = ToolEntry{Tool: t, Meta: schema.Parse(t.InputSchema)}
	}
	return c
}

// List returns tool definitions in catalog order.
func (c *ToolCatalog) List() []protocol.Tool {
	out := make([]protocol.Tool, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.entries[name].Tool)
	}
	return out
}

// Get looks up a tool entry (definition plus schema metadata) by name.
func (c *ToolCatalog) Get(name string) (ToolEntry, bool) {
	e, ok := c.entries[name]
	return e, ok
}

// Len returns the number of tools in the catalog.
func (c *ToolCatalog) Len() int {
	return len(c.order)
}

// NewResourceCatalog builds a ResourceCatalog from resource definitions.
// A later duplicate name or URI overwrites the earlier entry's mapping
// but keeps the earlier entry's position in List.
func NewResourceCatalog(resources []protocol.Resource) *ResourceCatalog {
	c := &ResourceCatalog{
		byName: make(map[string]protocol.Resource, len(resources)),
		byURI:  make(map[string]protocol.Resource, len(resources)),
	}
	for _, r := range resources {
		if _, exists := c.byName[r.Name]; !exists {
			c.order = append(c.order, r.Name)
		}
		c.byName[r.Name] = r
		if r.URI != "" {
			c.byURI[r.URI] = r
		}
	}
	return c
}

// List returns resource definitions in catalog order.
func (c *ResourceCatalog) List() []protocol.Resource {
	out := make([]protocol.Resource, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.byName[name])
	}
	return out
}

// GetByName looks up a resource by its declared name.
func (c *ResourceCatalog) GetByName(name string) (protocol.Resource, bool) {
	r, ok := c.byName[name]
	return r, ok
}

// GetByURI looks up a resource by its URI.
func (c *ResourceCatalog) GetByURI(uri string) (protocol.Resource, bool) {
	r, ok := c.byURI[uri]
	return r, ok
}

// Len returns the number of resources in the catalog.
func (c *ResourceCatalog) Len() int {
	return len(c.order)
}
