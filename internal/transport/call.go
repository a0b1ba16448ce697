package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// EnvelopeCallPath is the fixed tool-call path used by envelope-style servers.
const EnvelopeCallPath = "/mcp/tools/call"

// BuildToolCall frames a tool invocation as a Request in one of the two
// observed server styles:
//
//   - "path": POST {base_url}/{tool} with the bare parameters object.
//   - "envelope": POST {base_url}/mcp/tools/call with a {name, arguments} body.
func BuildToolCall(style, baseURL, tool string, args map[string]any) (Request, error) {
	base := strings.TrimRight(baseURL, "/")

	var (
		url  string
		body any
	)

	switch style {
	case "path":
		url = base + "/" + strings.TrimLeft(tool, "/")
		body = args
	case "envelope":
		url = base + EnvelopeCallPath
		body = mcp.CallToolParams{
			Name:      tool,
			Arguments: args,
		}
	default:
		return Request{}, fmt.Errorf("unknown call style '%s'", style)
	}

	data, err := json.Marshal(body)
	if err != nil {
		return Request{}, fmt.Errorf("failed to encode tool arguments: %w", err)
	}

	return Request{
		Method: http.MethodPost,
		URL:    url,
		Body:   data,
	}, nil
}

// BuildHealthCheck frames the lightweight health probe for an endpoint.
func BuildHealthCheck(baseURL, healthPath string) Request {
	return Request{
		Method: http.MethodGet,
		URL:    strings.TrimRight(baseURL, "/") + healthPath,
	}
}
