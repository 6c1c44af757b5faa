package main

import (
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/leonardcser/kvcache/internal/cache"
	"github.com/leonardcser/kvcache/internal/config"
	"github.com/leonardcser/kvcache/internal/logger"
	tools "github.com/leonardcser/kvcache/internal/tools"
)

const daemonBinary = "kvcache-server"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	// stdout carries MCP, so logs never go to stdio here.
	if cfg.LogPath != "" && cfg.LogPath != "-" {
		err = logger.Init(cfg.LogPath)
	} else {
		err = logger.InitFile("kvcache-mcp.log")
	}
	if err != nil {
		panic(err)
	}
	defer logger.Close()
	logger.SetDebug(cfg.Debug)

	logger.Infof("Starting kvcache MCP server")

	addr := dialAddr(cfg.Addr)
	logger.Infof("Attempting to connect to cache server at %s", addr)
	client, err := connectCache(addr)
	if err != nil {
		logger.Warnf("Failed to connect to cache server: %v, attempting to start it", err)
		if startErr := startCacheDaemon(); startErr != nil {
			logger.Errorf("Failed to start cache server: %v", startErr)
		} else {
			logger.Infof("Cache server started")
		}
		deadline := time.Now().Add(5 * time.Second)
		for time.Now().Before(deadline) {
			if c2, err2 := connectCache(addr); err2 == nil {
				client = c2
				err = nil
				break
			}
			time.Sleep(200 * time.Millisecond)
		}
		if client == nil {
			logger.Errorf("Failed to connect to cache server after startup attempt: %v", err)
			panic(err)
		}
	}
	defer client.Close()
	logger.Infof("Connected to cache server")

	s := server.NewMCPServer(
		"kvcache",
		"0.1.0",
		server.WithRecovery(),
		server.WithToolCapabilities(false),
	)

	toolGet := mcp.NewTool("cache-get",
		mcp.WithDescription(multiline(
			"Reads a value from the shared in-memory cache",
			"\nUsage notes:",
			"- Returns the stored value as text",
			"- Expired keys are reported as not found",
		)),
		mcp.WithString("key", mcp.Required(), mcp.Description("The key to look up")),
	)
	s.AddTool(toolGet, tools.CacheGetHandler(client))
	logger.Infof("Registered cache-get tool")

	toolSet := mcp.NewTool("cache-set",
		mcp.WithDescription(multiline(
			"Stores a value in the shared in-memory cache",
			"\nUsage notes:",
			"- Overwrites any previous value for the key",
			"- ttl_seconds is optional; without it the value never expires",
			"- Values may not contain line breaks",
		)),
		mcp.WithString("key", mcp.Required(), mcp.Description("The key to store under")),
		mcp.WithString("value", mcp.Required(), mcp.Description("The value to store")),
		mcp.WithNumber("ttl_seconds", mcp.Description("Seconds until the value expires")),
	)
	s.AddTool(toolSet, tools.CacheSetHandler(client))
	logger.Infof("Registered cache-set tool")

	logger.Infof("Starting MCP server on stdio")
	if err := server.ServeStdio(s); err != nil {
		logger.Errorf("server error: %v", err)
	}
}

// multiline joins lines with newlines for tool descriptions.
func multiline(lines ...string) string { return strings.Join(lines, "\n") }

// dialAddr turns a listen address such as ":7379" into something dialable.
func dialAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "127.0.0.1" + addr
	}
	return addr
}

func connectCache(addr string) (*cache.Client, error) {
	// quick probe
	conn, err := net.DialTimeout("tcp", addr, 200*time.Millisecond)
	if err != nil {
		return nil, err
	}
	_ = conn.Close()
	return cache.NewClient(addr), nil
}

func startCacheDaemon() error {
	// 1) Try cache binary next to this server executable
	if exePath, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(exePath), daemonBinary)
		if _, statErr := os.Stat(sibling); statErr == nil {
			return startDetached(sibling)
		}
	}

	// 2) Try PATH binary
	if path, err := exec.LookPath(daemonBinary); err == nil {
		return startDetached(path)
	}

	return exec.ErrNotFound
}

func startDetached(path string) error {
	cmd := exec.Command(path)
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Env = os.Environ()
	return cmd.Start()
}
