// Package docs registers the OpenAPI description served at /swagger.
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
        "/sessions": {
            "post": {
                "tags": ["session"],
                "summary": "Start a parking session",
                "produces": ["application/json"],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/zones": {
            "get": {
                "tags": ["zones"],
                "summary": "List zone configuration",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/session": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["session"],
                "summary": "Get the session snapshot",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/session/zone": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["session"],
                "summary": "Select the active zone",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.SetActiveZoneRequest"}}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Unknown zone"}}
            }
        },
        "/session/user": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["session"],
                "summary": "Get the registered driver",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.User"}}, "404": {"description": "No driver"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["session"],
                "summary": "Register the session's driver",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.RegisterRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.User"}}, "422": {"description": "Validation failed"}}
            }
        },
        "/slots": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["slots"],
                "summary": "List parking slots",
                "parameters": [{"in": "query", "name": "zone", "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/slots/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["slots"],
                "summary": "Get a parking slot",
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ParkingSlot"}}, "404": {"description": "Not found"}}
            }
        },
        "/slots/{id}/booking": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["slots"],
                "summary": "Book a parking slot",
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"},
                    {"in": "header", "name": "If-Match", "type": "string"},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.BookingRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Not bookable"}, "409": {"description": "Not available"}, "412": {"description": "Stale etag"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["slots"],
                "summary": "Cancel a booking",
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Nothing to cancel"}}
            }
        },
        "/slots/{id}/arrival": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["slots"],
                "summary": "Confirm arrival at a reserved slot",
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Not reserved"}}
            }
        },
        "/zones/{zone}/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["zones"],
                "summary": "Visitor slot counts for a zone",
                "parameters": [{"in": "path", "name": "zone", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ZoneStats"}}}
            }
        },
        "/bookings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["slots"],
                "summary": "List the driver's bookings",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "handler.RegisterRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "vehicleNumber": {"type": "string"}, "email": {"type": "string"}}
        },
        "handler.SetActiveZoneRequest": {
            "type": "object",
            "properties": {"zone": {"type": "string"}}
        },
        "model.BookingRequest": {
            "type": "object",
            "properties": {"arrivalTime": {"type": "string"}, "durationHours": {"type": "integer", "enum": [1, 2, 3, 4, 8]}}
        },
        "model.User": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "vehicleNumber": {"type": "string"}, "email": {"type": "string"}}
        },
        "model.ParkingSlot": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "slotNumber": {"type": "integer"},
                "zone": {"type": "string"},
                "category": {"type": "string", "enum": ["user", "employee", "emergency"]},
                "status": {"type": "string", "enum": ["available", "reserved", "occupied"]},
                "occupantName": {"type": "string"},
                "occupantVehicle": {"type": "string"},
                "arrivalTime": {"type": "string"},
                "durationHours": {"type": "integer"},
                "bookedAt": {"type": "string"}
            }
        },
        "model.ZoneStats": {
            "type": "object",
            "properties": {"zone": {"type": "string"}, "total": {"type": "integer"}, "available": {"type": "integer"}, "reserved": {"type": "integer"}, "occupied": {"type": "integer"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the session token.",
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
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Parking Reservation API",
	Description:      "Per-session parking slot booking: register a driver, book visitor slots, confirm arrival, cancel.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
