package blueprint

import (
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "blueprint.schema.json"

const schemaSource = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "oneOf": [
    {"required": ["blueprint"]},
    {"required": ["blueprint_book"]}
  ],
  "properties": {
    "blueprint": {
      "type": "object",
      "properties": {
        "label": {"type": "string"},
        "version": {"type": "integer"},
        "entities": {
          "type": "array",
          "items": {"$ref": "#/definitions/entity"}
        }
      }
    },
    "blueprint_book": {"type": "object"}
  },
  "definitions": {
    "entity": {
      "type": "object",
      "required": ["entity_number", "name", "position"],
      "properties": {
        "entity_number": {"type": "integer", "minimum": 1},
        "name": {"type": "string", "minLength": 1},
        "position": {
          "type": "object",
          "required": ["x", "y"],
          "properties": {
            "x": {"type": "number"},
            "y": {"type": "number"}
          }
        },
        "direction": {"type": "integer", "minimum": 0},
        "recipe": {"type": "string"},
        "type": {"type": "string"},
        "filters": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["index", "name"],
            "properties": {
              "index": {"type": "integer"},
              "name": {"type": "string"}
            }
          }
        }
      }
    }
  }
}`

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString(schemaURL, schemaSource)
})
