// Package docs registers the OpenAPI document served at /swagger.
// The template is maintained by hand; keep it in step with the handler
// annotations when routes change.
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
        "/api/v1/auth/signup": {"post": {"tags": ["账号"], "summary": "注册账号", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}},
        "/api/v1/auth/login": {"post": {"tags": ["账号"], "summary": "登录并下发会话 Cookie", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/v1/auth/logout": {"post": {"tags": ["账号"], "summary": "登出并吊销会话", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/v1/me": {"get": {"tags": ["账号"], "summary": "当前登录用户", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/v1/me/posts": {"get": {"tags": ["博文"], "summary": "当前用户的博文", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/v1/feed": {"get": {"tags": ["博文"], "summary": "随机博文", "parameters": [{"type": "integer", "default": 10, "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/posts": {"post": {"tags": ["博文"], "summary": "发布博文", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/api/v1/posts/{id}": {
            "get": {"tags": ["博文"], "summary": "博文详情（含评论树）", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["博文"], "summary": "编辑博文（仅作者）", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["博文"], "summary": "删除博文（仅作者，级联删除评论与点赞）", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/posts/{id}/comments": {
            "get": {"tags": ["评论"], "summary": "博文的评论树", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["评论"], "summary": "发表评论（parent_id 非空时为回复）", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/api/v1/posts/{id}/like": {"post": {"tags": ["博文"], "summary": "切换点赞状态", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/v1/comments/{id}": {"delete": {"tags": ["评论"], "summary": "删除评论及其全部回复（仅作者）", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/api/v1/chats": {"get": {"tags": ["私信"], "summary": "会话列表（按最近消息倒序）", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/chats/{user_id}": {
            "get": {"tags": ["私信"], "summary": "与某用户的全部私信（时间正序）", "parameters": [{"type": "string", "name": "user_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "post": {"tags": ["私信"], "summary": "发送私信", "parameters": [{"type": "string", "name": "user_id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Blog Service API",
	Description:      "博客、评论、点赞与私信",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
