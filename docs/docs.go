// Package docs registers the Swagger document served at /swagger/*.
// Keep it in step with the @Router annotations on the handlers.
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
                "description": "Returns API status",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Root endpoint",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Check API and store health",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/db-status": {
            "get": {
                "description": "Connection flag, last connection error and whether the connection string came from the environment",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Store connection status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/config.ConnectionStatus"}}
                }
            }
        },
        "/api/data": {
            "get": {
                "description": "Users, loans, the 200 newest notifications and the global settings in one object",
                "produces": ["application/json"],
                "tags": ["Sync"],
                "summary": "Pull all data",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Snapshot"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/users": {
            "post": {
                "description": "Upserts every user by id, in array order. Earlier items stay saved if a later one fails.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Sync"],
                "summary": "Push users",
                "parameters": [
                    {"description": "Users", "name": "body", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.User"}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/users/{id}": {
            "delete": {
                "description": "Deletes the user and every loan and notification with that userId",
                "produces": ["application/json"],
                "tags": ["Sync"],
                "summary": "Delete user",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/loans": {
            "post": {
                "description": "Upserts every loan by id, in array order. The referenced user is not checked.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Sync"],
                "summary": "Push loans",
                "parameters": [
                    {"description": "Loans", "name": "body", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Loan"}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/notifications": {
            "post": {
                "description": "Upserts every notification by id, in array order",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Sync"],
                "summary": "Push notifications",
                "parameters": [
                    {"description": "Notifications", "name": "body", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Notification"}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/budget": {
            "post": {
                "description": "Sets the budget of the settings singleton; rank profit is left as is",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Settings"],
                "summary": "Set budget",
                "parameters": [
                    {"description": "Budget", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.BudgetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/rankProfit": {
            "post": {
                "description": "Sets the rank profit of the settings singleton; budget is left as is",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Settings"],
                "summary": "Set rank profit",
                "parameters": [
                    {"description": "Rank profit", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RankProfitRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "config.ConnectionStatus": {
            "type": "object",
            "properties": {
                "connected": {"type": "boolean"},
                "error": {"type": "string"},
                "timestamp": {"type": "string"},
                "uri_provided": {"type": "boolean"}
            }
        },
        "domain.Loan": {
            "type": "object",
            "required": ["createdAt", "date", "id", "status", "userId", "userName"],
            "properties": {
                "amount": {"type": "number"},
                "billImage": {"type": "string"},
                "createdAt": {"type": "string"},
                "date": {"type": "string"},
                "fine": {"type": "number"},
                "id": {"type": "string"},
                "rejectionReason": {"type": "string"},
                "signature": {"type": "string"},
                "status": {"type": "string"},
                "updatedAt": {"type": "integer"},
                "userId": {"type": "string"},
                "userName": {"type": "string"}
            }
        },
        "domain.Notification": {
            "type": "object",
            "required": ["id", "message", "time", "title", "type", "userId"],
            "properties": {
                "createdAt": {"type": "string"},
                "id": {"type": "string"},
                "message": {"type": "string"},
                "read": {"type": "boolean"},
                "time": {"type": "string"},
                "title": {"type": "string"},
                "type": {"type": "string"},
                "updatedAt": {"type": "string"},
                "userId": {"type": "string"}
            }
        },
        "domain.Snapshot": {
            "type": "object",
            "properties": {
                "budget": {"type": "number"},
                "loans": {"type": "array", "items": {"$ref": "#/definitions/domain.Loan"}},
                "notifications": {"type": "array", "items": {"$ref": "#/definitions/domain.Notification"}},
                "rankProfit": {"type": "number"},
                "users": {"type": "array", "items": {"$ref": "#/definitions/domain.User"}}
            }
        },
        "domain.User": {
            "type": "object",
            "required": ["fullName", "id", "idNumber", "phone"],
            "properties": {
                "address": {"type": "string"},
                "balance": {"type": "number"},
                "bankAccountHolder": {"type": "string"},
                "bankAccountNumber": {"type": "string"},
                "bankName": {"type": "string"},
                "createdAt": {"type": "string"},
                "fullName": {"type": "string"},
                "id": {"type": "string"},
                "idBack": {"type": "string"},
                "idFront": {"type": "string"},
                "idNumber": {"type": "string"},
                "isAdmin": {"type": "boolean"},
                "isLoggedIn": {"type": "boolean"},
                "joinDate": {"type": "string"},
                "lastLoanSeq": {"type": "number"},
                "pendingUpgradeRank": {"type": "string"},
                "phone": {"type": "string"},
                "rank": {"type": "string"},
                "rankProgress": {"type": "number"},
                "rankUpgradeBill": {"type": "string"},
                "refZalo": {"type": "string"},
                "relationship": {"type": "string"},
                "totalLimit": {"type": "number"},
                "updatedAt": {"type": "integer"}
            }
        },
        "handlers.BudgetRequest": {
            "type": "object",
            "properties": {
                "budget": {"type": "number"}
            }
        },
        "handlers.RankProfitRequest": {
            "type": "object",
            "properties": {
                "rankProfit": {"type": "number"}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"type": "string"},
                "message": {"type": "string"},
                "success": {"type": "boolean"}
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
	Title:            "NDV26V Sync API",
	Description:      "Bulk pull/push persistence backend for the NDV26V lending client.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
