// Command flupp-mcp runs the MCP tool bridge over stdio, proxying tool
// calls to the booking API.
package main

import (
	"log"

	"flupp/config"
	"flupp/mcp"

	"github.com/mark3labs/mcp-go/server"
)

func main() {
	config.LoadConfig()

	s := server.NewMCPServer("flupp-mcp", "1.0.0")
	client := mcp.NewClient(config.AppConfig.FluppAPIURL)
	mcp.RegisterTools(s, client)

	if err := server.ServeStdio(s); err != nil {
		log.Fatalf("flupp-mcp: %v", err)
	}
}
