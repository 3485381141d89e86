// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with `swag init -g cmd/main.go` after changing handler annotations.
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
        "/health": {
            "get": {"tags": ["Health"], "summary": "Liveness", "responses": {"200": {"description": "OK"}, "503": {"description": "store unreachable"}}}
        },
        "/tasks/upload_sweep": {
            "post": {"tags": ["Task"], "summary": "Run the orphaned upload sweep now", "responses": {"200": {"description": "OK"}, "404": {"description": "task disabled"}, "429": {"description": "ran too recently"}}}
        },
        "/branches": {
            "get": {"tags": ["Branch"], "summary": "List branches", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Branch"], "summary": "Create a branch", "responses": {"201": {"description": "Created"}, "400": {"description": "validation error"}}}
        },
        "/branches/{id}": {
            "get": {"tags": ["Branch"], "summary": "Get a branch", "responses": {"200": {"description": "OK"}, "404": {"description": "not found"}}},
            "patch": {"tags": ["Branch"], "summary": "Update a branch", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Branch"], "summary": "Delete a branch", "responses": {"204": {"description": "No Content"}}}
        },
        "/branches/slug/{slug}": {
            "get": {"tags": ["Branch"], "summary": "Get a branch by slug", "responses": {"200": {"description": "OK"}}}
        },
        "/branches/{id}/schedule": {
            "get": {"tags": ["Schedule"], "summary": "Weekly schedule of a branch", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Schedule"], "summary": "Schedule a variant", "responses": {"201": {"description": "Created"}}}
        },
        "/branches/{id}/schedule/{itemId}": {
            "get": {"tags": ["Schedule"], "summary": "Get a scheduled item", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["Schedule"], "summary": "Update a scheduled item", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Schedule"], "summary": "Remove a scheduled item", "responses": {"204": {"description": "No Content"}}}
        },
        "/categories": {
            "get": {"tags": ["Category"], "summary": "List categories", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Category"], "summary": "Create a category", "responses": {"201": {"description": "Created"}}}
        },
        "/categories/{id}": {
            "get": {"tags": ["Category"], "summary": "Get a category", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["Category"], "summary": "Update a category", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Category"], "summary": "Delete a category", "responses": {"204": {"description": "No Content"}}}
        },
        "/categories/slug/{slug}": {
            "get": {"tags": ["Category"], "summary": "Get a category by slug", "responses": {"200": {"description": "OK"}}}
        },
        "/recipes": {
            "get": {"tags": ["Recipe"], "summary": "List recipes", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Recipe"], "summary": "Create a recipe", "consumes": ["application/json", "multipart/form-data"], "responses": {"201": {"description": "Created"}}}
        },
        "/recipes/{id}": {
            "get": {"tags": ["Recipe"], "summary": "Get a recipe", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["Recipe"], "summary": "Update a recipe", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Recipe"], "summary": "Delete a recipe", "responses": {"204": {"description": "No Content"}}}
        },
        "/recipes/slug/{slug}": {
            "get": {"tags": ["Recipe"], "summary": "Get a recipe by slug", "responses": {"200": {"description": "OK"}}}
        },
        "/recipes/{id}/image": {
            "get": {"tags": ["Recipe"], "summary": "Recipe image", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Recipe"], "summary": "Replace the recipe image", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Recipe"], "summary": "Remove the recipe image", "responses": {"204": {"description": "No Content"}}}
        },
        "/recipes/{id}/variants": {
            "get": {"tags": ["Variant"], "summary": "List the variants of a recipe", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Variant"], "summary": "Create a variant", "responses": {"201": {"description": "Created"}}}
        },
        "/recipes/{id}/variants/{variantId}": {
            "get": {"tags": ["Variant"], "summary": "Get a variant", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["Variant"], "summary": "Update a variant", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Variant"], "summary": "Delete a variant", "responses": {"204": {"description": "No Content"}}}
        },
        "/recipes/{id}/variants/{variantId}/scaled": {
            "get": {"tags": ["Variant"], "summary": "Scale a variant to another size", "responses": {"200": {"description": "OK"}, "409": {"description": "no conversion between the sizes"}}}
        },
        "/conversion_types": {
            "get": {"tags": ["ConversionType"], "summary": "List conversion types", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["ConversionType"], "summary": "Create a conversion type", "responses": {"201": {"description": "Created"}}}
        },
        "/conversion_types/{id}": {
            "get": {"tags": ["ConversionType"], "summary": "Get a conversion type with its sizes", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["ConversionType"], "summary": "Rename a conversion type", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["ConversionType"], "summary": "Delete a conversion type", "responses": {"204": {"description": "No Content"}}}
        },
        "/conversion_types/{id}/sizes": {
            "get": {"tags": ["Size"], "summary": "List the sizes of a conversion type", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Size"], "summary": "Create a size", "responses": {"201": {"description": "Created"}}}
        },
        "/conversion_types/{id}/sizes/{sizeId}": {
            "get": {"tags": ["Size"], "summary": "Get a size", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["Size"], "summary": "Rename a size", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Size"], "summary": "Delete a size", "responses": {"204": {"description": "No Content"}}}
        },
        "/conversion_types/{id}/conversions": {
            "get": {"tags": ["Conversion"], "summary": "List conversions", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Conversion"], "summary": "Create a conversion", "responses": {"201": {"description": "Created"}, "409": {"description": "sizes identical or unknown"}}}
        },
        "/conversion_types/{id}/conversions/{conversionId}": {
            "get": {"tags": ["Conversion"], "summary": "Get a conversion", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["Conversion"], "summary": "Change a multiplicator", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Conversion"], "summary": "Delete a conversion", "responses": {"204": {"description": "No Content"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Bakery Planner API",
	Description:      "Branches, recipes, variants, size conversions and the weekly production schedule.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
