package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	perr "minishop/internal/platform/errors"
	pnet "minishop/internal/platform/net"

	docs "minishop/internal/services/api/docs"
)

// readDoc is swapped in tests
var readDoc = func() string { return docs.SwaggerInfo.ReadDoc() }

const exampleRequestID = "579f33bf50b1/abc-000001"

// defaults are added to every operation that does not document the status itself
// examples come from the runtime envelope so the two cannot drift
var defaults = []struct {
	status string
	err    error
}{
	{"400", perr.Newf(perr.ErrorCodeValidation, "initData must be at most 8192")},
	{"429", perr.Newf(perr.ErrorCodeTooManyRequests, "rate limit exceeded")},
	{"500", perr.PanicErrf("internal error")},
}

func docHandler(o Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(readDoc()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		decorate(spec, o)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

func decorate(spec map[string]any, o Options) {
	// the UI renders 3.0 only, swagger 2 and 3.1 are both relabelled
	if _, v2 := spec["swagger"]; v2 {
		delete(spec, "swagger")
	}
	if v, _ := spec["openapi"].(string); !strings.HasPrefix(v, "3.0") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": o.Server}}
	}
	if o.TitleSuffix != "" {
		info := obj(spec, "info")
		title, _ := info["title"].(string)
		info["title"] = strings.TrimSpace(title + " " + o.TitleSuffix)
	}

	schemas := obj(obj(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = errorSchema()
	}

	paths, _ := spec["paths"].(map[string]any)
	for _, node := range paths {
		ops, ok := node.(map[string]any)
		if !ok {
			continue
		}
		for _, v := range ops {
			op, ok := v.(map[string]any)
			if !ok {
				continue
			}
			resps := obj(op, "responses")
			for _, d := range defaults {
				if _, ok := resps[d.status]; !ok {
					resps[d.status] = errorResponse(d.err)
				}
			}
		}
	}
}

// obj returns m[key] as an object, creating it when missing
func obj(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	v := map[string]any{}
	m[key] = v
	return v
}

func errorSchema() map[string]any {
	str := map[string]any{"type": "string"}
	num := map[string]any{"type": "integer", "format": "int32"}
	return map[string]any{
		"type":        "object",
		"description": "Error envelope",
		"properties": map[string]any{
			"status_code": num,
			"status":      str,
			"code":        num,
			"error":       str,
			"reason":      str,
			"request_id":  str,
		},
		"required": []any{"status_code", "status"},
	}
}

func errorResponse(err error) map[string]any {
	status, wire := pnet.Error(err, exampleRequestID)
	return map[string]any{
		"description": http.StatusText(status),
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": wire,
			},
		},
	}
}
