// Package docs holds the swagger document for the sample API
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
                "description": "Greeting used as a liveness probe",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Root",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Reports service health and pings the storage backend",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/samples": {
            "get": {
                "description": "List every stored sample in ascending id order",
                "produces": ["application/json"],
                "tags": ["samples"],
                "summary": "List samples",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.SampleRead"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            },
            "post": {
                "description": "Store a sample. The id is assigned by the server; any id in the body is ignored.",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["samples"],
                "summary": "Create a new sample",
                "parameters": [
                    {
                        "description": "Sample details",
                        "name": "sample",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.SampleCreate"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Sample"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errors.APIError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/samples/{id}": {
            "get": {
                "description": "Get a single sample by id",
                "produces": ["application/json"],
                "tags": ["samples"],
                "summary": "Get a sample",
                "parameters": [
                    {"type": "integer", "description": "Sample ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SampleRead"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.APIError"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        }
    },
    "definitions": {
        "errors.APIError": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"}
            }
        },
        "models.SampleCreate": {
            "type": "object",
            "required": ["name", "timestamp"],
            "properties": {
                "name": {"type": "string"},
                "timestamp": {"type": "string", "format": "date-time"},
                "v0": {"type": "number", "description": "v0 is the first optional sensor value", "x-nullable": true},
                "v1": {"type": "number", "x-nullable": true}
            }
        },
        "models.Sample": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "timestamp": {"type": "string", "format": "date-time"},
                "v0": {"type": "number", "description": "v0 is the first optional sensor value", "x-nullable": true},
                "v1": {"type": "number", "x-nullable": true}
            }
        },
        "models.SampleRead": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "timestamp": {"type": "string", "format": "date-time"},
                "v0": {"type": "number", "description": "v0 is the first optional sensor value", "x-nullable": true},
                "v1": {"type": "number", "x-nullable": true}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "dbwriter API",
	Description:      "Stores timestamped sensor samples in SQLite or PostgreSQL",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
