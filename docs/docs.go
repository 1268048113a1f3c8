// Package docs registra el documento OpenAPI que sirve /swagger.
// Refleja las anotaciones de los handlers; para regenerarlo: swag init -g cmd/api/main.go
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
        "/animals": {
            "get": {
                "description": "Lista los animales ordenados por ID (orden lexicográfico del string). ` + "`" + `q` + "`" + ` filtra por ID o raza sin distinguir mayúsculas.",
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Listar animales",
                "parameters": [
                    {"type": "string", "description": "Texto a buscar en ID o raza", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/animals.animalListItem"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Alta de animal",
                "parameters": [
                    {"description": "Datos del animal; birth_date en formato YYYY-MM-DD", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/animals.createAnimalRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/animals.animalResponse"}},
                    "400": {"description": "invalid json / campos requeridos / fecha inválida", "schema": {"type": "string"}},
                    "409": {"description": "duplicate identifier", "schema": {"type": "string"}},
                    "500": {"description": "persistence failure", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "description": "Vacía el registro completo. Requiere ` + "`" + `confirm=true` + "`" + `.",
                "tags": ["animals"],
                "summary": "Borrar todo",
                "parameters": [
                    {"type": "boolean", "description": "Confirmación explícita", "name": "confirm", "in": "query", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "412": {"description": "confirmation required", "schema": {"type": "string"}}
                }
            }
        },
        "/animals/{animalID}": {
            "get": {
                "description": "Devuelve el animal con sus sub-registros y métricas derivadas (peso actual, ganancia total, ganancia diaria promedio).",
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Ficha del animal",
                "parameters": [
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/animals.animalResponse"}},
                    "404": {"description": "animal not found", "schema": {"type": "string"}}
                }
            },
            "put": {
                "description": "Reemplaza nacimiento, raza, peso de ingreso y categoría. El ID no se puede cambiar.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Editar animal",
                "parameters": [
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true},
                    {"description": "Campos editables", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/animals.updateAnimalRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/animals.animalResponse"}},
                    "400": {"description": "invalid json / campos requeridos / fecha inválida", "schema": {"type": "string"}},
                    "404": {"description": "animal not found", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "description": "Elimina el animal junto con todas sus pesadas, enfermedades, vacunas y crías.",
                "tags": ["animals"],
                "summary": "Eliminar animal",
                "parameters": [
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "animal not found", "schema": {"type": "string"}}
                }
            }
        },
        "/animals/{animalID}/illnesses": {
            "post": {
                "description": "Todos los campos son obligatorios. El fin del tratamiento no puede ser anterior al inicio.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["subrecords"],
                "summary": "Registrar enfermedad",
                "parameters": [
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true},
                    {"description": "Episodio y tratamiento", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/animals.addIllnessRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/animals.animalResponse"}},
                    "400": {"description": "invalid json / campos requeridos / end < start", "schema": {"type": "string"}},
                    "404": {"description": "animal not found", "schema": {"type": "string"}}
                }
            }
        },
        "/animals/{animalID}/offspring": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["subrecords"],
                "summary": "Registrar cría",
                "parameters": [
                    {"type": "string", "description": "ID de la madre", "name": "animalID", "in": "path", "required": true},
                    {"description": "ID de la cría y fecha de nacimiento", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/animals.addOffspringRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/animals.animalResponse"}},
                    "400": {"description": "invalid json / campos requeridos", "schema": {"type": "string"}},
                    "404": {"description": "animal not found", "schema": {"type": "string"}}
                }
            }
        },
        "/animals/{animalID}/vaccinations": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["subrecords"],
                "summary": "Registrar vacuna",
                "parameters": [
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true},
                    {"description": "Fecha y nombre obligatorios; withdrawal_days opcional (>= 0)", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/animals.addVaccinationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/animals.animalResponse"}},
                    "400": {"description": "invalid json / campos requeridos", "schema": {"type": "string"}},
                    "404": {"description": "animal not found", "schema": {"type": "string"}}
                }
            }
        },
        "/animals/{animalID}/weights": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["subrecords"],
                "summary": "Registrar pesada",
                "parameters": [
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true},
                    {"description": "Fecha YYYY-MM-DD y kg (>= 0)", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/animals.addWeightRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/animals.animalResponse"}},
                    "400": {"description": "invalid json / fecha inválida / kg negativo", "schema": {"type": "string"}},
                    "404": {"description": "animal not found", "schema": {"type": "string"}}
                }
            }
        },
        "/export": {
            "get": {
                "description": "Descarga el documento completo (formato de persistencia) como ganado-YYYY-MM-DD.json.",
                "produces": ["application/json"],
                "tags": ["document"],
                "summary": "Exportar registro",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}}
                }
            }
        },
        "/import": {
            "post": {
                "description": "Reemplaza el registro completo por el documento enviado (no hace merge). Requiere ` + "`" + `confirm=true` + "`" + `.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["document"],
                "summary": "Importar registro",
                "parameters": [
                    {"type": "boolean", "description": "Confirmación explícita", "name": "confirm", "in": "query", "required": true},
                    {"description": "Arreglo JSON de animales", "name": "payload", "in": "body", "required": true, "schema": {"type": "string"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/animals.importResponse"}},
                    "400": {"description": "malformed document / invalid record", "schema": {"type": "string"}},
                    "412": {"description": "confirmation required", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "animals.addIllnessRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "diagnosis": {"type": "string"},
                "dose": {"type": "string"},
                "end": {"type": "string"},
                "start": {"type": "string"},
                "treatment_name": {"type": "string"}
            }
        },
        "animals.addOffspringRequest": {
            "type": "object",
            "properties": {
                "birth_date": {"type": "string"},
                "id": {"type": "string"}
            }
        },
        "animals.addVaccinationRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "dose": {"type": "string"},
                "lot": {"type": "string"},
                "name": {"type": "string"},
                "withdrawal_days": {"description": "opcional", "type": "integer"}
            }
        },
        "animals.addWeightRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "kg": {"type": "number"}
            }
        },
        "animals.animalListItem": {
            "type": "object",
            "properties": {
                "birth_date": {"type": "string"},
                "breed": {"type": "string"},
                "category": {"type": "string"},
                "entry_weight": {"type": "number"},
                "id": {"type": "string"},
                "summary": {"$ref": "#/definitions/animals.summaryResponse"}
            }
        },
        "animals.animalResponse": {
            "type": "object",
            "properties": {
                "birth_date": {"type": "string"},
                "breed": {"type": "string"},
                "category": {"type": "string"},
                "entry_weight": {"type": "number"},
                "id": {"type": "string"},
                "illnesses": {"type": "array", "items": {"$ref": "#/definitions/animals.illnessResponse"}},
                "offspring": {"type": "array", "items": {"$ref": "#/definitions/animals.offspringResponse"}},
                "summary": {"$ref": "#/definitions/animals.summaryResponse"},
                "vaccinations": {"type": "array", "items": {"$ref": "#/definitions/animals.vaccinationResponse"}},
                "weights": {"type": "array", "items": {"$ref": "#/definitions/animals.weightResponse"}}
            }
        },
        "animals.createAnimalRequest": {
            "type": "object",
            "required": ["birth_date", "breed", "entry_weight", "id"],
            "properties": {
                "birth_date": {"description": "YYYY-MM-DD", "type": "string"},
                "breed": {"type": "string"},
                "category": {"type": "string"},
                "entry_weight": {"type": "number"},
                "id": {"type": "string"}
            }
        },
        "animals.illnessResponse": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "diagnosis": {"type": "string"},
                "treatment": {"$ref": "#/definitions/animals.treatmentResponse"},
                "uid": {"type": "string"}
            }
        },
        "animals.importResponse": {
            "type": "object",
            "properties": {
                "imported": {"type": "integer"}
            }
        },
        "animals.offspringResponse": {
            "type": "object",
            "properties": {
                "birth_date": {"type": "string"},
                "id": {"type": "string"},
                "uid": {"type": "string"}
            }
        },
        "animals.summaryResponse": {
            "type": "object",
            "properties": {
                "average_daily_gain": {"type": "number"},
                "current_weight": {"type": "number"},
                "offspring_count": {"type": "integer"},
                "total_gain": {"type": "number"}
            }
        },
        "animals.treatmentResponse": {
            "type": "object",
            "properties": {
                "dose": {"type": "string"},
                "end": {"type": "string"},
                "name": {"type": "string"},
                "start": {"type": "string"}
            }
        },
        "animals.updateAnimalRequest": {
            "type": "object",
            "required": ["birth_date", "breed", "entry_weight"],
            "properties": {
                "birth_date": {"type": "string"},
                "breed": {"type": "string"},
                "category": {"type": "string"},
                "entry_weight": {"type": "number"}
            }
        },
        "animals.vaccinationResponse": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "dose": {"type": "string"},
                "lot": {"type": "string"},
                "name": {"type": "string"},
                "uid": {"type": "string"},
                "withdrawal_days": {"type": "integer"}
            }
        },
        "animals.weightResponse": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "kg": {"type": "number"},
                "uid": {"type": "string"}
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
	Title:            "Livestock Records API",
	Description:      "Registro de ganado: animales, pesadas, enfermedades, vacunas, crías e import/export del documento.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
