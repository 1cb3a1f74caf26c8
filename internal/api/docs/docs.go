// Package docs holds the OpenAPI document served at /docs.
// Regenerate with: swag init -g internal/api/server.go -o internal/api/docs
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
                "tags": [
                    "meta"
                ],
                "summary": "API root info",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/health": {
            "get": {
                "tags": [
                    "health"
                ],
                "summary": "Health check",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/health/data": {
            "get": {
                "tags": [
                    "health"
                ],
                "summary": "Data health check",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/health/cache": {
            "get": {
                "tags": [
                    "health"
                ],
                "summary": "Cache health check",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/v1/players": {
            "get": {
                "tags": [
                    "entities"
                ],
                "summary": "List players",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Team abbreviation",
                        "name": "team",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Position",
                        "name": "position",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Era or season",
                        "name": "era",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Page size (0 for all)",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Page offset",
                        "name": "offset",
                        "in": "query"
                    }
                ]
            }
        },
        "/api/v1/teams": {
            "get": {
                "tags": [
                    "entities"
                ],
                "summary": "List teams",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Team abbreviation",
                        "name": "team",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Position",
                        "name": "position",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Era or season",
                        "name": "era",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Page size (0 for all)",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Page offset",
                        "name": "offset",
                        "in": "query"
                    }
                ]
            }
        },
        "/api/v1/coaches": {
            "get": {
                "tags": [
                    "entities"
                ],
                "summary": "List coaches",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Team abbreviation",
                        "name": "team",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Position",
                        "name": "position",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Era or season",
                        "name": "era",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Page size (0 for all)",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Page offset",
                        "name": "offset",
                        "in": "query"
                    }
                ]
            }
        },
        "/api/v1/{entityType}/{entityID}": {
            "get": {
                "tags": [
                    "entities"
                ],
                "summary": "Get entity summary",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "player, team or coach",
                        "name": "entityType",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Entity ID",
                        "name": "entityID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/api/v1/search": {
            "get": {
                "tags": [
                    "entities"
                ],
                "summary": "Search entities",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Query",
                        "name": "q",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Maximum results",
                        "name": "limit",
                        "in": "query"
                    }
                ]
            }
        },
        "/api/v1/compare": {
            "get": {
                "tags": [
                    "entities"
                ],
                "summary": "Compare entities",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Comma-separated ids",
                        "name": "ids",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "boolean",
                        "description": "Enable advanced metrics",
                        "name": "advanced",
                        "in": "query"
                    }
                ]
            }
        },
        "/api/v1/games": {
            "get": {
                "tags": [
                    "league"
                ],
                "summary": "List games",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "description": "",
                        "name": "season",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "",
                        "name": "week",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Team abbreviation (home or away)",
                        "name": "team",
                        "in": "query"
                    }
                ]
            }
        },
        "/api/v1/schedule": {
            "get": {
                "tags": [
                    "league"
                ],
                "summary": "Season schedule",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/v1/standings": {
            "get": {
                "tags": [
                    "league"
                ],
                "summary": "Standings",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Season (latest when omitted)",
                        "name": "season",
                        "in": "query"
                    }
                ]
            }
        },
        "/api/v1/leaders": {
            "get": {
                "tags": [
                    "league"
                ],
                "summary": "League leaders",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Entries per stat",
                        "name": "limit",
                        "in": "query"
                    }
                ]
            }
        },
        "/api/v1/matchups": {
            "get": {
                "tags": [
                    "league"
                ],
                "summary": "Upcoming matchups",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/v1/overview": {
            "get": {
                "tags": [
                    "league"
                ],
                "summary": "Data overview",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/v1/league/teams": {
            "get": {
                "tags": [
                    "league"
                ],
                "summary": "League alignment",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "AFC or NFC",
                        "name": "conference",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Division, e.g. AFC East",
                        "name": "division",
                        "in": "query"
                    }
                ]
            }
        },
        "/api/v1/reload": {
            "post": {
                "tags": [
                    "meta"
                ],
                "summary": "Reload data",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/v1/settings/tables/{page}/{table}/{version}": {
            "get": {
                "tags": [
                    "settings"
                ],
                "summary": "Get table state",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Page id",
                        "name": "page",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Table id",
                        "name": "table",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Table layout version",
                        "name": "version",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "",
                        "name": "columns",
                        "in": "query"
                    },
                    {
                        "type": "boolean",
                        "description": "",
                        "name": "stretch_last",
                        "in": "query"
                    }
                ]
            },
            "put": {
                "tags": [
                    "settings"
                ],
                "summary": "Save table state",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Page id",
                        "name": "page",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Table id",
                        "name": "table",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Table layout version",
                        "name": "version",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "State",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.TableStateRequest"
                        }
                    }
                ]
            }
        }
    },
    "definitions": {
        "respond.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {
                            "type": "string"
                        },
                        "message": {
                            "type": "string"
                        },
                        "detail": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "handler.TableStateRequest": {
            "type": "object",
            "properties": {
                "widths": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                },
                "column_count": {
                    "type": "integer"
                },
                "stretch_last": {
                    "type": "boolean"
                },
                "sort_column": {
                    "type": "integer"
                },
                "sort_order": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Gridiron Labs API",
	Description:      "Read-only NFL players, teams, coaches and games served from processed Parquet tables.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
