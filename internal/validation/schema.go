package validation

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Schema names, one per backend payload shape
const (
	SchemaUsers              = "users"
	SchemaDailyStat          = "daily_stat"
	SchemaWeeklyStat         = "weekly_stat"
	SchemaMonthlyStat        = "monthly_stat"
	SchemaTimeline           = "timeline"
	SchemaHeatmap            = "heatmap"
	SchemaTeamSummary        = "team_summary"
	SchemaProductivityTrends = "productivity_trends"
	SchemaBreakPatterns      = "break_patterns"
	SchemaFocusScore         = "focus_score"
)

var schemaNames = []string{
	SchemaUsers,
	SchemaDailyStat,
	SchemaWeeklyStat,
	SchemaMonthlyStat,
	SchemaTimeline,
	SchemaHeatmap,
	SchemaTeamSummary,
	SchemaProductivityTrends,
	SchemaBreakPatterns,
	SchemaFocusScore,
}

// Validator checks backend response bodies against the embedded schemas
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// NewValidator compiles every embedded schema
func NewValidator() (*Validator, error) {
	v := &Validator{schemas: make(map[string]*gojsonschema.Schema, len(schemaNames))}
	for _, name := range schemaNames {
		schema, err := LoadSchema(name)
		if err != nil {
			return nil, err
		}
		v.schemas[name] = schema
	}
	return v, nil
}

// LoadSchema compiles one embedded schema by name
func LoadSchema(name string) (*gojsonschema.Schema, error) {
	data, err := schemaFS.ReadFile("schemas/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create schema %s: %w", name, err)
	}
	return schema, nil
}

// Validate checks body against the named schema
func (v *Validator) Validate(name string, body []byte) error {
	schema, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("unknown schema: %s", name)
	}
	return ValidateDocument(body, schema)
}

// ValidateDocument validates a JSON document against a compiled schema
func ValidateDocument(body []byte, schema *gojsonschema.Schema) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("failed to validate: %w", err)
	}

	if !result.Valid() {
		var errors []string
		for _, desc := range result.Errors() {
			errors = append(errors, desc.String())
		}
		return fmt.Errorf("validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}
