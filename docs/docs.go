// Package docs registers the OpenAPI document served under /swagger.
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
            "get": {"tags": ["health"], "summary": "Liveness and database check", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        },
        "/auth/register": {
            "post": {"tags": ["auth"], "summary": "Create an account", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterInput"}}],
                "responses": {"201": {"description": "Created"}, "400": {"$ref": "#/responses/Error"}, "409": {"$ref": "#/responses/Error"}}}
        },
        "/auth/login": {
            "post": {"tags": ["auth"], "summary": "Exchange credentials for a bearer token", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginInput"}}],
                "responses": {"200": {"description": "OK"}, "401": {"$ref": "#/responses/Error"}}}
        },
        "/auth/me": {
            "get": {"tags": ["auth"], "summary": "Current user profile", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "401": {"$ref": "#/responses/Error"}}}
        },
        "/categories": {
            "get": {"tags": ["categories"], "summary": "List categories", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["categories"], "summary": "Create a category", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CategoryInput"}}],
                "responses": {"201": {"description": "Created"}, "409": {"$ref": "#/responses/Error"}}}
        },
        "/categories/{id}": {
            "get": {"tags": ["categories"], "summary": "Category details", "parameters": [{"$ref": "#/parameters/ID"}],
                "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/responses/Error"}}},
            "put": {"tags": ["categories"], "summary": "Edit a category", "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/ID"}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CategoryInput"}}],
                "responses": {"200": {"description": "OK"}, "409": {"$ref": "#/responses/Error"}}},
            "delete": {"tags": ["categories"], "summary": "Delete an unused category", "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/ID"}],
                "responses": {"204": {"description": "No Content"}, "409": {"$ref": "#/responses/Error"}}}
        },
        "/campaigns": {
            "get": {"tags": ["campaigns"], "summary": "List campaigns, newest first",
                "parameters": [
                    {"in": "query", "name": "category_id", "type": "integer"},
                    {"in": "query", "name": "user_id", "type": "integer"},
                    {"in": "query", "name": "status", "type": "string", "enum": ["active", "completed", "cancelled"]},
                    {"in": "query", "name": "page", "type": "integer", "default": 1},
                    {"in": "query", "name": "limit", "type": "integer", "default": 10}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"$ref": "#/responses/Error"}}},
            "post": {"tags": ["campaigns"], "summary": "Start a campaign", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CampaignInput"}}],
                "responses": {"201": {"description": "Created"}, "400": {"$ref": "#/responses/Error"}}}
        },
        "/campaigns/{id}": {
            "get": {"tags": ["campaigns"], "summary": "Campaign details", "parameters": [{"$ref": "#/parameters/ID"}],
                "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/responses/Error"}}},
            "put": {"tags": ["campaigns"], "summary": "Edit a campaign or change its status", "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/ID"}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CampaignPatch"}}],
                "responses": {"200": {"description": "OK"}, "403": {"$ref": "#/responses/Error"}, "422": {"$ref": "#/responses/Error"}}},
            "delete": {"tags": ["campaigns"], "summary": "Delete a campaign that has no donations", "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/ID"}],
                "responses": {"204": {"description": "No Content"}, "409": {"$ref": "#/responses/Error"}}}
        },
        "/campaigns/{id}/recompute-status": {
            "post": {"tags": ["campaigns"], "summary": "Re-evaluate goal and deadline transitions now", "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/ID"}],
                "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/responses/Error"}}}
        },
        "/campaigns/{id}/donations": {
            "get": {"tags": ["donations"], "summary": "Donations made to a campaign", "parameters": [{"$ref": "#/parameters/ID"}],
                "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["donations"], "summary": "Donate to an active campaign", "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/ID"}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/DonationInput"}}],
                "responses": {"201": {"description": "Created"}, "400": {"$ref": "#/responses/Error"}, "404": {"$ref": "#/responses/Error"}, "422": {"$ref": "#/responses/Error"}}}
        },
        "/campaigns/{id}/donations/stats": {
            "get": {"tags": ["donations"], "summary": "Donation count, total, average, max and min", "parameters": [{"$ref": "#/parameters/ID"}],
                "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/responses/Error"}}}
        },
        "/campaigns/{id}/comments": {
            "get": {"tags": ["comments"], "summary": "Comments on a campaign", "parameters": [{"$ref": "#/parameters/ID"}],
                "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["comments"], "summary": "Comment on a campaign", "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/ID"}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CommentInput"}}],
                "responses": {"201": {"description": "Created"}}}
        },
        "/donations/mine": {
            "get": {"tags": ["donations"], "summary": "Donations made by the caller", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/donations/{id}": {
            "get": {"tags": ["donations"], "summary": "One of the caller's donations", "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/ID"}],
                "responses": {"200": {"description": "OK"}, "403": {"$ref": "#/responses/Error"}}}
        },
        "/comments/{id}": {
            "get": {"tags": ["comments"], "summary": "Comment details", "parameters": [{"$ref": "#/parameters/ID"}],
                "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["comments"], "summary": "Edit own comment", "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/ID"}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CommentInput"}}],
                "responses": {"200": {"description": "OK"}, "403": {"$ref": "#/responses/Error"}}},
            "delete": {"tags": ["comments"], "summary": "Delete own comment", "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/ID"}],
                "responses": {"204": {"description": "No Content"}, "403": {"$ref": "#/responses/Error"}}}
        }
    },
    "parameters": {
        "ID": {"in": "path", "name": "id", "required": true, "type": "integer"}
    },
    "responses": {
        "Error": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
    },
    "definitions": {
        "ErrorResponse": {"type": "object", "properties": {
            "error": {"type": "string"}, "code": {"type": "string"}, "request_id": {"type": "string"},
            "fields": {"type": "array", "items": {"type": "object", "properties": {"field": {"type": "string"}, "message": {"type": "string"}}}}}},
        "RegisterInput": {"type": "object", "required": ["name", "email", "password"], "properties": {
            "name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}},
        "LoginInput": {"type": "object", "required": ["email", "password"], "properties": {
            "email": {"type": "string"}, "password": {"type": "string"}}},
        "CategoryInput": {"type": "object", "properties": {"name": {"type": "string"}, "description": {"type": "string"}}},
        "CampaignInput": {"type": "object", "required": ["title", "description", "target_amount", "deadline", "category_id"], "properties": {
            "title": {"type": "string"}, "description": {"type": "string"}, "target_amount": {"type": "string", "example": "1000.00"},
            "deadline": {"type": "string", "example": "2026-12-31"}, "category_id": {"type": "integer"}}},
        "CampaignPatch": {"type": "object", "properties": {
            "title": {"type": "string"}, "description": {"type": "string"}, "target_amount": {"type": "string"},
            "deadline": {"type": "string"}, "category_id": {"type": "integer"},
            "status": {"type": "string", "enum": ["active", "completed", "cancelled"]}}},
        "DonationInput": {"type": "object", "required": ["amount"], "properties": {
            "amount": {"type": "string", "example": "25.00"}, "message": {"type": "string"}}},
        "CommentInput": {"type": "object", "required": ["text"], "properties": {"text": {"type": "string"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Donation Platform API",
	Description:      "Fundraising campaigns, donations and comments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
