package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"strings"
)

//go:embed openapi.json
var openapiDoc string

// docReader is a seam so tests can feed a broken document
var docReader = func() string { return openapiDoc }

// errorExamples are the defaults every operation documents unless it says
// otherwise; they match what bind and RecoverJSON put on the wire
var errorExamples = map[string]map[string]any{
	"400": {"status_code": 400, "status": "Bad Request", "code": 4, "error": "granularity must be year or month"},
	"500": {"status_code": 500, "status": "Internal Server Error", "code": 1, "error": "internal error"},
}

// buildDoc parses the embedded document and finishes it for the UI
func buildDoc(opt Options) ([]byte, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(docReader()), &doc); err != nil {
		return nil, err
	}

	normalizeVersion(doc)
	if _, ok := doc["servers"]; !ok {
		doc["servers"] = []any{map[string]any{"url": "/api/v1"}}
	}
	if opt.TitleSuffix != "" {
		if info, ok := doc["info"].(map[string]any); ok {
			if title, ok := info["title"].(string); ok {
				info["title"] = title + " " + opt.TitleSuffix
			}
		}
	}

	schemas := child(child(doc, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = errorSchema()
	}
	eachOperation(doc, func(op map[string]any) {
		resps := child(op, "responses")
		for status, example := range errorExamples {
			if _, ok := resps[status]; !ok {
				resps[status] = errorResponse(example)
			}
		}
		for _, r := range resps {
			if resp, ok := r.(map[string]any); ok {
				child(resp, "headers")["X-Snapshot-ID"] = map[string]any{
					"description": "id of the corpus snapshot the response was computed from",
					"schema":      map[string]any{"type": "string"},
				}
			}
		}
	})

	return json.Marshal(doc)
}

// normalizeVersion pins the document to OAS 3.0.3; the UI cannot render 3.1
func normalizeVersion(doc map[string]any) {
	delete(doc, "swagger")
	if v, ok := doc["openapi"].(string); !ok || !strings.HasPrefix(v, "3.0") {
		doc["openapi"] = "3.0.3"
	}
}

func eachOperation(doc map[string]any, fn func(op map[string]any)) {
	paths, _ := doc["paths"].(map[string]any)
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, o := range node {
			if op, ok := o.(map[string]any); ok {
				fn(op)
			}
		}
	}
}

// child returns m[key] as an object, creating it when missing
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

func errorSchema() map[string]any {
	return map[string]any{
		"type":        "object",
		"description": "Error envelope",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

func errorResponse(example map[string]any) map[string]any {
	return map[string]any{
		"description": example["status"],
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": example,
			},
		},
	}
}
