// Package docs registers the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/main.go
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
        "/api/v1/auth/login": {
            "post": {"tags": ["Auth"], "summary": "Sign in with email and password", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/v1/auth/register": {
            "post": {"tags": ["Auth"], "summary": "Create a member account", "responses": {"201": {"description": "Created"}}}
        },
        "/api/v1/auth/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Auth"], "summary": "Current profile", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/hotels": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Hotels"], "summary": "List applications", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Hotels"], "summary": "Submit a membership registration", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/api/v1/hotels/{id}/approve": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Review"], "summary": "Approve an application", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/api/v1/hotels/{id}/reject": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Review"], "summary": "Reject an application", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/api/v1/hotels/{id}/restore": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Review"], "summary": "Move an application back to pending", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/api/v1/directory": {
            "get": {"tags": ["Directory"], "summary": "Approved members", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/activities": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Activity"], "summary": "Activity log, newest first", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/users": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "List accounts", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "Create an account", "responses": {"201": {"description": "Created"}}}
        },
        "/api/v1/users/{id}/role": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "Change an account's role", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/users/{id}/password": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "Set an account's password", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Hotel Association Membership API",
	Description:      "Membership registrations, review workflow, member directory and activity log.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
