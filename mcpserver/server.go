/**
 * Copyright 2025 XcodeMCP Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package mcpserver registers the Xcode tools on an MCP stdio server.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/xcodemcp/xcodemcp/config"
	"github.com/xcodemcp/xcodemcp/fsx"
	"github.com/xcodemcp/xcodemcp/logcapture"
	"github.com/xcodemcp/xcodemcp/preview"
	"github.com/xcodemcp/xcodemcp/simulator"
	"github.com/xcodemcp/xcodemcp/xcode"
)

// Tool pairs a tool definition with its handler.
type Tool struct {
	Tool    mcp.Tool
	Handler server.ToolHandlerFunc
}

// ServerOptions configures the MCP server and its collaborators. Runner
// and Probe default to the real implementations when nil.
type ServerOptions struct {
	ServerName    string
	ServerVersion string
	Config        config.Config
	Runner        xcode.Runner
	Probe         fsx.Probe
	Log           *logrus.Entry
}

// Server wraps the underlying MCP server.
type Server struct {
	Server *server.MCPServer
}

// NewServer builds the tool surface from the options and registers every
// tool plus the integration-guide prompt.
func NewServer(opts ServerOptions) *Server {
	if opts.Runner == nil {
		opts.Runner = xcode.ExecRunner{}
	}
	if opts.Probe == nil {
		opts.Probe = fsx.OSProbe{}
	}
	if opts.Log == nil {
		opts.Log = logrus.NewEntry(logrus.StandardLogger())
	}

	orch := preview.NewOrchestrator(opts.Runner, opts.Probe, opts.Log.WithField("component", "preview"))
	if opts.Config.Preview.ArtifactDir != "" {
		orch.ArtifactDir = opts.Config.Preview.ArtifactDir
	}
	if opts.Config.Preview.MaxAttempts > 0 {
		orch.Poller = preview.Poller{
			Interval:    opts.Config.Preview.PollInterval.Std(),
			MaxAttempts: opts.Config.Preview.MaxAttempts,
		}
	}

	ts := &Toolset{
		Runner:       opts.Runner,
		Orchestrator: orch,
		Simulators:   simulator.NewService(opts.Runner, opts.Log.WithField("component", "simulator")),
		Logs:         logcapture.NewRegistry(opts.Log.WithField("component", "logcapture")),
	}

	svr := server.NewMCPServer(
		opts.ServerName,
		opts.ServerVersion,
		server.WithToolCapabilities(false),
		server.WithPromptCapabilities(false),
		server.WithRecovery(),
	)

	tools := []Tool{
		newPreviewTool(orch),
		NewTool(ToolBuildSim, DescBuildSim, SchemaBuildSim, ts.BuildSim),
		NewTool(ToolTestSim, DescTestSim, SchemaTestSim, ts.TestSim),
		NewTool(ToolShowSettings, DescShowSettings, SchemaShowSettings, ts.ShowBuildSettings),
		NewTool(ToolListSimulators, DescListSimulators, SchemaListSimulators, ts.ListSimulators),
		NewTool(ToolBootSimulator, DescBootSimulator, SchemaBootSimulator, ts.BootSimulator),
		NewTool(ToolOpenSimulator, DescOpenSimulator, SchemaOpenSimulator, ts.OpenSimulator),
		NewTool(ToolInstallApp, DescInstallApp, SchemaInstallApp, ts.InstallApp),
		NewTool(ToolLaunchApp, DescLaunchApp, SchemaLaunchApp, ts.LaunchApp),
		NewTool(ToolStartLogCapture, DescStartLogCapture, SchemaStartLogCapture, ts.StartLogCapture),
		NewTool(ToolStopLogCapture, DescStopLogCapture, SchemaStopLogCapture, ts.StopLogCapture),
	}
	for _, t := range tools {
		svr.AddTool(t.Tool, t.Handler)
	}

	svr.AddPrompt(
		mcp.NewPrompt("preview_integration",
			mcp.WithPromptDescription("what an app must do for preview_snapshot to capture it")),
		handlePreviewIntegrationPrompt,
	)

	opts.Log.WithField("tools", len(tools)).Info("MCP server initialized")
	return &Server{Server: svr}
}

// ServeStdio blocks serving MCP over stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.Server)
}
