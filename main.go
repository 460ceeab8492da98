// Copyright 2025 XcodeMCP Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xcodemcp/xcodemcp/config"
	"github.com/xcodemcp/xcodemcp/mcpserver"
	"github.com/xcodemcp/xcodemcp/version"
)

var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:          "xcodemcp",
	Short:        "MCP server exposing Xcode build, test, simulator and preview-capture tools",
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Start an MCP server on stdin/stdout exposing the Xcode toolset:
build_sim, test_sim, show_build_settings, simulator management, log
capture, and preview_snapshot (build an app with the capture sentinel
flag and return the SwiftUI preview it renders as a PNG).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}

		// stdout carries the MCP protocol; logs must stay on stderr
		logrus.SetOutput(os.Stderr)
		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		if flagVerbose {
			level = logrus.DebugLevel
		}
		logrus.SetLevel(level)

		svr := mcpserver.NewServer(mcpserver.ServerOptions{
			ServerName:    "xcodemcp",
			ServerVersion: version.Version,
			Config:        cfg,
			Log:           logrus.WithField("component", "server"),
		})
		return svr.ServeStdio()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(os.Stdout, version.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a yaml config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(serveCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
