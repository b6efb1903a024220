// Package docs registra el spec OpenAPI para http-swagger.
// Regenerar con: swag init -g cmd/api/main.go --parseInternal
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
        "/bears/": {
            "get": {
                "description": "Devuelve todos los osos registrados y los conteos machos/hembras y oreja izquierda/derecha. Sin filtros ni paginación.",
                "produces": ["application/json"],
                "tags": ["bears"],
                "summary": "Listar osos",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/bears.bearListResponse"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            }
        },
        "/bears/update": {
            "post": {
                "description": "Con POST autenticado (firma X-Hub-Signature-256 o Bearer JWT con rol deployer) hace git pull de la copia de trabajo y, si está configurado, pide reload al hosting. Cualquier otro método devuelve el texto de rechazo sin hacer nada.",
                "consumes": ["application/json"],
                "produces": ["text/plain"],
                "tags": ["deploy"],
                "summary": "Redeploy del servicio",
                "parameters": [
                    {"type": "string", "description": "sha256=<hex> del body con el secreto del webhook", "name": "X-Hub-Signature-256", "in": "header"},
                    {"type": "string", "description": "Bearer token con rol deployer", "name": "Authorization", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "Updated code / Couldn't update the code", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}},
                    "403": {"description": "forbidden", "schema": {"type": "string"}},
                    "502": {"description": "Deploy failed", "schema": {"type": "string"}},
                    "503": {"description": "Deploy busy", "schema": {"type": "string"}}
                }
            }
        },
        "/bears/{bearID}/": {
            "get": {
                "description": "Devuelve un oso con todos sus avistamientos, ordenados por seen_at ascendente.",
                "produces": ["application/json"],
                "tags": ["bears"],
                "summary": "Detalle de oso",
                "parameters": [
                    {"type": "string", "description": "ID del oso", "name": "bearID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/bears.bearDetailResponse"}},
                    "404": {"description": "bear not found", "schema": {"type": "string"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "bears.bearResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "pit_tag": {"type": "string"},
                "wildlife_tag": {"type": "string"},
                "sex": {"type": "string"},
                "ear_applied": {"type": "string"},
                "capture_date": {"type": "string"},
                "notes": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "bears.sightingResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "bear_id": {"type": "string"},
                "seen_at": {"type": "string"},
                "location": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "notes": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "bears.bearListResponse": {
            "type": "object",
            "properties": {
                "bears": {"type": "array", "items": {"$ref": "#/definitions/bears.bearResponse"}},
                "left_ear": {"type": "integer"},
                "right_ear": {"type": "integer"},
                "male": {"type": "integer"},
                "female": {"type": "integer"}
            }
        },
        "bears.bearDetailResponse": {
            "type": "object",
            "properties": {
                "bear": {"$ref": "#/definitions/bears.bearResponse"},
                "sightings": {"type": "array", "items": {"$ref": "#/definitions/bears.sightingResponse"}}
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
	Title:            "bear-tracker API",
	Description:      "Osos marcados, sus avistamientos y el webhook de redeploy.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
