// Command schema-generator writes the JSON schema for tclean's config.toml.
package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/invopop/jsonschema"

	"github.com/custodia-labs/tclean/internal/core/domain"
)

func main() {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		FieldNameTag:              "toml",
	}

	schema := r.Reflect(&domain.Settings{})
	schema.Title = "tclean Configuration"
	schema.Description = "Schema for tclean's config.toml."

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling schema: %v", err)
	}

	if err := os.WriteFile("tclean.schema.json", data, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated tclean schema at tclean.schema.json")
}
