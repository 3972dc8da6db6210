// Package docs Quill API 文档，由 swag 注释维护
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
        "/health": {
            "get": {"tags": ["系统"], "summary": "存活检查", "responses": {"200": {"description": "OK"}}}
        },
        "/ready": {
            "get": {"tags": ["系统"], "summary": "就绪检查", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}
        },
        "/api/gemini/tags": {
            "post": {
                "tags": ["AI"],
                "summary": "生成标签",
                "description": "远程模型失败或未配置时使用本地关键词兜底，仍返回 200",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/TagRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TagResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/MessageError"}},
                    "405": {"description": "Method Not Allowed"},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/MessageError"}}
                }
            }
        },
        "/api/gemini/summarize": {
            "post": {
                "tags": ["AI"],
                "summary": "生成摘要",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/SummaryRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SummaryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/MessageError"}},
                    "405": {"description": "Method Not Allowed"},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/MessageError"}}
                }
            }
        },
        "/api/ai/status": {
            "get": {"tags": ["AI"], "summary": "AI 配置状态", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/StatusResponse"}}}}
        },
        "/api/posts": {
            "get": {
                "tags": ["文章"],
                "summary": "文章列表",
                "parameters": [
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "string", "name": "tag", "in": "query"},
                    {"type": "integer", "default": 1, "name": "page", "in": "query"},
                    {"type": "integer", "default": 50, "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "headers": {"X-Total-Count": {"type": "integer"}}, "schema": {"type": "array", "items": {"$ref": "#/definitions/Post"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["文章"],
                "summary": "创建文章",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/PostRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Post"}}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/posts/{id}": {
            "get": {
                "tags": ["文章"],
                "summary": "文章详情",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Post"}}, "404": {"description": "Not Found"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["文章"],
                "summary": "更新文章",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/PostRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Post"}}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["文章"],
                "summary": "删除文章",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/auth/register": {
            "post": {"tags": ["认证"], "summary": "注册", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/api/v1/auth/login": {
            "post": {"tags": ["认证"], "summary": "登录", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}}
        },
        "/api/v1/auth/refresh": {
            "post": {"tags": ["认证"], "summary": "刷新 Access Token", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/v1/auth/logout": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["认证"], "summary": "退出登录", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/auth/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["认证"], "summary": "当前用户", "responses": {"200": {"description": "OK"}}}
        },
        "/api/admin/users": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["管理"], "summary": "用户列表", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/api/admin/users/{id}": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["管理"], "summary": "修改用户角色/状态", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["管理"], "summary": "删除用户", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/admin/posts": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["管理"], "summary": "全部文章", "responses": {"200": {"description": "OK"}}}
        },
        "/api/admin/posts/{id}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["管理"], "summary": "删除文章", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/admin/stats": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["管理"], "summary": "站点统计", "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "TagRequest": {"type": "object", "properties": {"content": {"type": "string"}}},
        "TagResponse": {"type": "object", "properties": {"tags": {"type": "array", "items": {"type": "string"}}}},
        "SummaryRequest": {"type": "object", "properties": {"content": {"type": "string"}, "maxLength": {"type": "integer", "default": 150}}},
        "SummaryResponse": {"type": "object", "properties": {"summary": {"type": "string"}}},
        "StatusResponse": {"type": "object", "properties": {"provider": {"type": "string"}, "model": {"type": "string"}, "enabled": {"type": "boolean"}}},
        "MessageError": {"type": "object", "properties": {"message": {"type": "string"}}},
        "ErrorResponse": {"type": "object", "properties": {"code": {"type": "integer"}, "message": {"type": "string"}, "detail": {"type": "string"}}},
        "PostRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "maxLength": 200},
                "description": {"type": "string", "maxLength": 500},
                "content": {"type": "string"},
                "author": {"type": "string", "maxLength": 100},
                "tags": {"type": "array", "maxItems": 10, "items": {"type": "string"}}
            }
        },
        "Post": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "content": {"type": "string"},
                "author": {"type": "string"},
                "user_id": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Quill API",
	Description:      "博客内容管理服务：文章、认证、管理后台与 AI 标签/摘要生成",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
