// Package docs holds the OpenAPI document served at /api/docs
// regenerate with: swag init --v3.1 -g services/api/api.go -d internal -o internal/services/api/docs
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/miniapp/auth": {
            "post": {
                "tags": ["miniapp"],
                "summary": "Verify init data and register the user",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/AuthRequest"}}}},
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/AuthResponse"}}}},
                    "401": {"description": "init data rejected", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}},
                    "503": {"description": "row store unavailable", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/miniapp/orders": {
            "post": {
                "tags": ["miniapp"],
                "summary": "Orders that mention the caller",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/AuthRequest"}}}},
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/OrdersResponse"}}}},
                    "401": {"description": "init data rejected", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}},
                    "503": {"description": "shop unavailable", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            },
            "get": {
                "tags": ["miniapp"],
                "summary": "Orders that mention the caller, init data in the Authorization header",
                "parameters": [{"name": "Authorization", "in": "header", "required": true, "schema": {"type": "string"}, "description": "tma <initData>"}],
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/OrdersResponse"}}}},
                    "401": {"description": "init data rejected", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/miniapp/products": {
            "post": {
                "tags": ["miniapp"],
                "summary": "Products the caller owns",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/AuthRequest"}}}},
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ProductsResponse"}}}},
                    "401": {"description": "init data rejected", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}},
                    "503": {"description": "row store unavailable", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            },
            "get": {
                "tags": ["miniapp"],
                "summary": "Products the caller owns, init data in the Authorization header",
                "parameters": [{"name": "Authorization", "in": "header", "required": true, "schema": {"type": "string"}, "description": "tma <initData>"}],
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ProductsResponse"}}}},
                    "401": {"description": "init data rejected", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/meta/health": {"get": {"tags": ["Meta"], "summary": "Health check", "responses": {"200": {"description": "ok"}}}},
        "/meta/ready": {"get": {"tags": ["Meta"], "summary": "Readiness probe with dependency checks", "responses": {"200": {"description": "ok or degraded"}, "503": {"description": "a required dependency is down"}}}},
        "/meta/version": {"get": {"tags": ["Meta"], "summary": "Build and version info", "responses": {"200": {"description": "ok"}}}},
        "/meta/service": {"get": {"tags": ["Meta"], "summary": "Service info and uptime", "responses": {"200": {"description": "ok"}}}}
    },
    "components": {
        "schemas": {
            "AuthRequest": {
                "type": "object",
                "properties": {
                    "initData": {"type": "string", "maxLength": 8192},
                    "initDataUnsafe": {"type": "object", "properties": {"user": {"$ref": "#/components/schemas/UnsafeUser"}}}
                }
            },
            "UnsafeUser": {
                "type": "object",
                "properties": {
                    "id": {"type": "integer", "format": "int64"},
                    "username": {"type": "string", "maxLength": 64},
                    "first_name": {"type": "string"},
                    "last_name": {"type": "string"}
                }
            },
            "Profile": {
                "type": "object",
                "properties": {
                    "id": {"type": "integer", "format": "int64"},
                    "username": {"type": "string"},
                    "first_name": {"type": "string"},
                    "last_name": {"type": "string"},
                    "created_at": {"type": "string", "format": "date-time"},
                    "updated_at": {"type": "string", "format": "date-time"},
                    "created": {"type": "boolean"}
                }
            },
            "AuthResponse": {"type": "object", "properties": {"user": {"$ref": "#/components/schemas/Profile"}}},
            "OrdersResponse": {
                "type": "object",
                "properties": {
                    "orders": {"type": "array", "items": {"type": "object"}},
                    "count": {"type": "integer"}
                }
            },
            "ProductsResponse": {
                "type": "object",
                "properties": {
                    "products": {"type": "array", "items": {"type": "object"}},
                    "count": {"type": "integer"}
                }
            },
            "ErrorResponse": {
                "type": "object",
                "properties": {
                    "status_code": {"type": "integer"},
                    "status": {"type": "string"},
                    "code": {"type": "integer"},
                    "error": {"type": "string"},
                    "reason": {"type": "string", "enum": ["missing_signature", "signature_mismatch", "invalid_auth_date", "expired", "malformed"]},
                    "request_id": {"type": "string"}
                },
                "required": ["status_code", "status"]
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Title:            "minishop API",
	Description:      "Telegram Mini App gate over the shop and the row store",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
