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

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/xcodemcp/xcodemcp/internal/utils"
	"github.com/xcodemcp/xcodemcp/preview"
)

// NewTool adapts a typed handler into an MCP tool: call arguments are
// bound into R, the response is JSON, and any error becomes an IsError
// text result so the caller always receives a well-formed reply.
func NewTool[R any, T any](name string, desc string, schema json.RawMessage, handler func(ctx context.Context, req R) (*T, error)) Tool {
	return Tool{
		Tool: mcp.NewToolWithRawSchema(name, desc, schema),
		Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var req R
			if err := request.BindArguments(&req); err != nil {
				return nil, err
			}
			var final string
			var isError bool
			if resp, err := handler(ctx, req); err != nil {
				isError = true
				final = err.Error()
			} else if js, err := utils.MarshalJSONIndent(resp); err != nil {
				isError = true
				final = err.Error()
			} else {
				final = js
			}
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					mcp.NewTextContent(final),
				},
				IsError: isError,
			}, nil
		},
	}
}

// newPreviewTool is the one tool with a non-JSON success shape: a status
// line plus the PNG payload as image content. Failures are a single text
// result carrying diagnosis and remediation.
func newPreviewTool(orch *preview.Orchestrator) Tool {
	return Tool{
		Tool: mcp.NewToolWithRawSchema(ToolPreviewSnapshot, DescPreviewSnapshot, SchemaPreviewSnapshot),
		Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var req preview.Request
			if err := request.BindArguments(&req); err != nil {
				return nil, err
			}
			res := orch.Run(ctx, req)
			if !res.OK() {
				return &mcp.CallToolResult{
					Content: []mcp.Content{
						mcp.NewTextContent(res.Failure.Error()),
					},
					IsError: true,
				}, nil
			}
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					mcp.NewTextContent(fmt.Sprintf("captured preview snapshot of %s", res.ProductName)),
					mcp.NewImageContent(res.ImageBase64, res.MIMEType),
				},
			}, nil
		},
	}
}

func handlePreviewIntegrationPrompt(
	ctx context.Context,
	request mcp.GetPromptRequest,
) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "How an app must integrate the snapshot capture hook",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: "To make preview_snapshot work, the app must recognize the " +
						preview.SentinelFlag + " launch argument, render the preview, and write it as " +
						"<product name>.png into " + preview.DefaultArtifactDir + ". " +
						"The server polls that path and returns the image once it appears.",
				},
			},
		},
	}, nil
}
