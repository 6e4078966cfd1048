// Package docs registers the OpenAPI document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/api/courses": {
            "get": {"tags": ["catalog"], "summary": "List courses", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/courses/{course}": {
            "get": {"tags": ["catalog"], "summary": "Course with its pages in module and section order",
                "parameters": [{"name": "course", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "course not found"}}}
        },
        "/api/pages": {
            "get": {"tags": ["catalog"], "summary": "List pages", "responses": {"200": {"description": "OK"}}}
        },
        "/api/pages/{slug}": {
            "get": {"tags": ["catalog"], "summary": "Page content without answers",
                "parameters": [{"name": "slug", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "page not found"}}}
        },
        "/api/banks": {
            "get": {"tags": ["catalog"], "summary": "List question banks", "responses": {"200": {"description": "OK"}}}
        },
        "/api/quiz/pages/{slug}/runs": {
            "post": {"tags": ["quiz"], "summary": "Start a run of a page's end-of-section quiz",
                "parameters": [{"name": "slug", "in": "path", "required": true, "type": "string"}],
                "responses": {"201": {"description": "Created"}, "404": {"description": "quiz not found"}}}
        },
        "/api/quiz/pages/{slug}/grade": {
            "post": {"tags": ["quiz"], "summary": "Grade a full answer sheet for a page's quiz",
                "parameters": [{"name": "slug", "in": "path", "required": true, "type": "string"},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "option index out of range"}}}
        },
        "/api/quiz/pages/{slug}/checks/{questionID}": {
            "post": {"tags": ["quiz"], "summary": "Answer an inline check",
                "parameters": [{"name": "slug", "in": "path", "required": true, "type": "string"},
                    {"name": "questionID", "in": "path", "required": true, "type": "string"},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "question not found"}}}
        },
        "/api/quiz/banks/{bank}/runs": {
            "post": {"tags": ["quiz"], "summary": "Start a mock exam drawn from a question bank",
                "parameters": [{"name": "bank", "in": "path", "required": true, "type": "string"},
                    {"name": "body", "in": "body", "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Created"}, "404": {"description": "quiz not found"}}}
        },
        "/api/quiz/runs/select": {
            "post": {"tags": ["quiz"], "summary": "Answer one question of a run",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "invalid run token"}}}
        },
        "/api/quiz/runs/score": {
            "post": {"tags": ["quiz"], "summary": "Score a run",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "invalid run token"}}}
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Study Centre API",
	Description:      "Course pages, answer checks and quiz runs for electrical apprenticeship training.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
