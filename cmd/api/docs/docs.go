// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o cmd/api/docs
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
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        },
        "/api/generate_quiz": {
            "post": {
                "description": "Fetches the article, asks the model for a quiz (up to 3 attempts), stores and returns it",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Generate a quiz from a Wikipedia article",
                "parameters": [
                    {"description": "Article URL", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.GenerateQuizRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuizResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/history": {
            "get": {
                "description": "Returns stored quizzes, newest first",
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "List generated quizzes",
                "parameters": [
                    {"type": "integer", "description": "Page size (default 20, max 100)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Entries to skip", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HistoryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/quiz/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Get a stored quiz",
                "parameters": [
                    {"type": "string", "description": "Quiz ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuizResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.FieldError": {
            "type": "object",
            "properties": {"field": {"type": "string"}, "message": {"type": "string"}}
        },
        "domain.KeyEntities": {
            "type": "object",
            "properties": {
                "people": {"type": "array", "items": {"type": "string"}},
                "organizations": {"type": "array", "items": {"type": "string"}},
                "locations": {"type": "array", "items": {"type": "string"}}
            }
        },
        "domain.QuizQuestion": {
            "type": "object",
            "properties": {
                "question": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}},
                "answer": {"type": "string"},
                "difficulty": {"type": "string", "enum": ["easy", "medium", "hard"]},
                "explanation": {"type": "string"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "object", "additionalProperties": true}
            }
        },
        "dto.GenerateQuizRequest": {
            "description": "Request body for generating a quiz",
            "type": "object",
            "required": ["url"],
            "properties": {"url": {"type": "string", "example": "https://en.wikipedia.org/wiki/Alan_Turing"}}
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {"service": {"type": "string"}, "status": {"type": "string"}}
        },
        "dto.HistoryItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "url": {"type": "string"},
                "title": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "dto.HistoryResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/dto.HistoryItem"}},
                "total": {"type": "integer"},
                "limit": {"type": "integer"},
                "offset": {"type": "integer"}
            }
        },
        "dto.QuizResponse": {
            "description": "Generated quiz",
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "created_at": {"type": "string"},
                "url": {"type": "string"},
                "title": {"type": "string"},
                "summary": {"type": "string"},
                "key_entities": {"$ref": "#/definitions/domain.KeyEntities"},
                "sections": {"type": "array", "items": {"type": "string"}},
                "quiz": {"type": "array", "items": {"$ref": "#/definitions/domain.QuizQuestion"}},
                "related_topics": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dto.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/domain.FieldError"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Wiki Quiz API",
	Description:      "Generates multiple-choice quizzes from Wikipedia articles.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
