// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with `swag init -g server/main.go` after changing annotations.
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
        "/bookings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Every booking of the caller, cancelled ones included",
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "List my bookings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Reserves 1 to 7 seats for the caller, preferring a single row",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Book seats",
                "parameters": [
                    {
                        "description": "seat count",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/bookings.CreateBookingRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/bookings/cancel-all": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Cancel all my bookings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/seats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["seats"],
                "summary": "List seats",
                "parameters": [
                    {"type": "boolean", "description": "only available seats", "name": "available", "in": "query"},
                    {"type": "integer", "description": "row number", "name": "row", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/seats/available": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["seats"],
                "summary": "List available seats",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/seats/count": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["seats"],
                "summary": "Count seats",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/seats/my-bookings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["seats"],
                "summary": "My booked seats",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/seats/user-bookings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["seats"],
                "summary": "Active bookings grouped by user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/seats/reset": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Admin only. Cancels every active booking and returns every seat to available.",
                "produces": ["application/json"],
                "tags": ["seats"],
                "summary": "Reset all seats and bookings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        }
    },
    "definitions": {
        "bookings.CreateBookingRequest": {
            "type": "object",
            "required": ["numberOfSeats"],
            "properties": {
                "numberOfSeats": {"type": "integer", "minimum": 1, "maximum": 7}
            }
        },
        "response.StandardApiResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "statusCode": {"type": "integer"},
                "message": {"type": "string"},
                "data": {},
                "errors": {}
            }
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
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Seatbook API",
	Description:      "Seat reservation service: book up to seven seats per user, cancel, and reset.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
