// Package docs is generated by swag from the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/workspaces/{workspace_id}/query": {
            "post": {
                "description": "Classifies the query, routes it to the workspace backends and returns renderable content blocks.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Query"],
                "summary": "Answer a natural-language query",
                "parameters": [
                    {"type": "string", "description": "Workspace ID", "name": "workspace_id", "in": "path", "required": true},
                    {"type": "string", "description": "Caller identity, used for rate limiting", "name": "X-User-ID", "in": "header"},
                    {"description": "Query", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.queryReq"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/workspaces/{workspace_id}/index": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Query"],
                "summary": "Rebuild the passage index of a workspace",
                "parameters": [
                    {"type": "string", "description": "Workspace ID", "name": "workspace_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "503": {"description": "Index not configured", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/cache/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Query"],
                "summary": "Response cache statistics",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}}}
            }
        },
        "/api/v1/cache": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["Query"],
                "summary": "Drop every cached response",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}}}
            }
        },
        "/health": {
            "get": {"produces": ["application/json"], "tags": ["Health"], "summary": "Health Check", "responses": {"200": {"description": "API is healthy"}}}
        },
        "/ready": {
            "get": {"produces": ["application/json"], "tags": ["Health"], "summary": "Readiness Check", "responses": {"200": {"description": "API is ready"}, "503": {"description": "Dependency unavailable"}}}
        },
        "/live": {
            "get": {"produces": ["application/json"], "tags": ["Health"], "summary": "Liveness Check", "responses": {"200": {"description": "API is alive"}}}
        }
    },
    "definitions": {
        "http.queryReq": {
            "type": "object",
            "required": ["query"],
            "properties": {
                "query": {"type": "string", "maxLength": 2000},
                "include_debug": {"type": "boolean"},
                "bypass_cache": {"type": "boolean"},
                "max_response_time_ms": {"type": "integer", "minimum": 0, "maximum": 60000},
                "session": {
                    "type": "object",
                    "properties": {
                        "current_page_id": {"type": "string"},
                        "recent_queries": {"type": "array", "items": {"type": "string"}}
                    }
                }
            }
        },
        "response.Resp": {
            "type": "object",
            "properties": {
                "error_code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {},
                "errors": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1",
	Host:             "localhost:8080",
	BasePath:         "",
	Schemes:          []string{"http"},
	Title:            "Workspace Query API",
	Description:      "Natural-language queries over workspace databases and pages.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
