package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Enrollment Intake API",
        "description": "Public enrollment form intake with guardian email confirmations",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Enrollments", "description": "Enrollment submission and listing"},
        {"name": "Diagnostics", "description": "Database and SMTP connectivity checks"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/enviar_inscripcion": {
            "post": {
                "tags": ["Enrollments"],
                "summary": "Submit an enrollment application",
                "description": "Persists the application and emails a confirmation to each guardian with a valid address.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EnrollmentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SubmissionResponse"}},
                    "400": {"description": "Missing field or malformed JSON", "schema": {"$ref": "#/definitions/Failure"}},
                    "500": {"description": "Persistence failure", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/consultar_inscripciones": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List recent enrollments",
                "description": "Returns up to 50 enrollments, newest first.",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/EnrollmentListResponse"}},
                    "500": {"description": "Query failed", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/consultar_inscripciones/export": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "Download the recent enrollments roster",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Roster file", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/test_db": {
            "get": {
                "tags": ["Diagnostics"],
                "summary": "Check database connectivity",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/StatusResponse"}},
                    "500": {"description": "Database unreachable", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/test_email": {
            "get": {
                "tags": ["Diagnostics"],
                "summary": "Check SMTP connectivity",
                "responses": {
                    "200": {"description": "Probe result", "schema": {"$ref": "#/definitions/EmailStatusResponse"}},
                    "500": {"description": "Mail not configured", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        }
    },
    "definitions": {
        "EnrollmentRequest": {
            "type": "object",
            "required": ["nombres", "apellidos", "fechaNacimiento", "grado", "anoEscolar", "direccion"],
            "properties": {
                "nombres": {"type": "string"},
                "apellidos": {"type": "string"},
                "fechaNacimiento": {"type": "string", "example": "2015-03-10"},
                "grado": {"type": "string"},
                "anoEscolar": {"type": "string"},
                "padreNombres": {"type": "string"},
                "madreNombres": {"type": "string"},
                "padreTelefono": {"type": "string"},
                "madreTelefono": {"type": "string"},
                "emailPadre": {"type": "string"},
                "emailMadre": {"type": "string"},
                "direccion": {"type": "string"},
                "profesion": {"type": "string"}
            }
        },
        "SubmissionResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "inscripcion_id": {"type": "integer"},
                "correos_enviados": {"type": "integer"}
            }
        },
        "EnrollmentListItem": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "nombres": {"type": "string"},
                "apellidos": {"type": "string"},
                "fecha_nacimiento": {"type": "string", "example": "10/03/2015"},
                "grado": {"type": "string"},
                "ano_escolar": {"type": "string"},
                "padre_nombres": {"type": "string"},
                "madre_nombres": {"type": "string"},
                "email_padre": {"type": "string"},
                "email_madre": {"type": "string"},
                "fecha_registro": {"type": "string", "example": "15/01/2025 09:00:00"}
            }
        },
        "EnrollmentListResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "inscripciones": {"type": "array", "items": {"$ref": "#/definitions/EnrollmentListItem"}},
                "total": {"type": "integer"}
            }
        },
        "StatusResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"}
            }
        },
        "EmailStatusResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "field": {"type": "string"}
            }
        },
        "Failure": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "help": {"type": "string"},
                "error": {"$ref": "#/definitions/APIError"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
