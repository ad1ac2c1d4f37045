package command

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-adventure/internal/mcptool"
	"github.com/pixil98/go-errors"
)

type McpConfig struct {
	Enabled bool     `json:"enabled"`
	Addr    string   `json:"addr"`
	Path    string   `json:"path"`
	Token   string   `json:"token,omitempty"`
	Origins []string `json:"origins,omitempty"`
}

func (c *McpConfig) validate() error {
	if !c.Enabled {
		return nil
	}

	el := errors.NewErrorList()
	if c.Addr == "" {
		el.Add(fmt.Errorf("mcp: addr is required"))
	}
	for _, o := range c.Origins {
		if !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			el.Add(fmt.Errorf("mcp: origin %q must start with http:// or https://", o))
		}
	}
	return el.Err()
}

func (c *McpConfig) buildServer(g mcptool.Game) *mcptool.Server {
	path := c.Path
	if path == "" {
		path = "/mcp"
	}

	var opts []mcptool.ServerOpt
	if c.Token != "" {
		opts = append(opts, mcptool.WithToken(c.Token))
	}
	if len(c.Origins) > 0 {
		opts = append(opts, mcptool.WithOrigins(c.Origins...))
	}

	return mcptool.NewServer(g, c.Addr, path, opts...)
}
