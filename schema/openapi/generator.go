package openapi

import (
	"fmt"
	"math"
	"strconv"

	prefs "github.com/goliatone/go-preferences"
)

// Generate describes the entries of container as an OpenAPI document whose
// single operation accepts the preference payload. Each entry becomes a
// property carrying its type, current bounds and default; update notifiers
// are flagged with x-update-notifier.
func Generate(container *prefs.Container, opts ...GeneratorOption) (map[string]any, error) {
	if container == nil {
		return nil, fmt.Errorf("openapi: container cannot be nil")
	}
	cfg := defaultGeneratorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	properties := make(map[string]any, container.Len())
	for _, entry := range container.Entries() {
		properties[entry.Name()] = entrySchema(entry)
	}
	component := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}

	document := map[string]any{
		"openapi": cfg.openAPIVersion,
		"info":    buildInfo(cfg.info),
		"paths":   buildPaths(cfg),
		"components": map[string]any{
			"schemas": map[string]any{
				cfg.component: component,
			},
		},
	}
	if err := validateDocument(document); err != nil {
		return nil, err
	}
	return document, nil
}

func entrySchema(entry *prefs.Entry) map[string]any {
	schema := map[string]any{
		"type":  schemaType(entry.Kind()),
		"title": entry.DisplayName(),
	}
	if description := entry.Description(); description != "" {
		schema["description"] = description
	}
	if minimum, maximum, ok := entry.Bounds(); ok && entry.Kind().Numeric() {
		if !math.IsInf(minimum, 0) {
			schema["minimum"] = minimum
		}
		if !math.IsInf(maximum, 0) {
			schema["maximum"] = maximum
		}
	}
	if format := entry.Format(); format != nil && format.Default != "" {
		schema["default"] = typedDefault(entry.Kind(), format.Default)
	}
	if entry.IsUpdateNotifier() {
		schema["x-update-notifier"] = true
	}
	return schema
}

func schemaType(kind prefs.Kind) string {
	switch kind {
	case prefs.KindInteger:
		return "integer"
	case prefs.KindFloat:
		return "number"
	case prefs.KindBoolean:
		return "boolean"
	default:
		return "string"
	}
}

// typedDefault keeps the raw text when it does not parse as kind.
func typedDefault(kind prefs.Kind, text string) any {
	switch kind {
	case prefs.KindInteger:
		if v, err := strconv.Atoi(text); err == nil {
			return v
		}
	case prefs.KindFloat:
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			return v
		}
	case prefs.KindBoolean:
		if v, err := strconv.ParseBool(text); err == nil {
			return v
		}
	}
	return text
}

func buildInfo(info openapiInfo) map[string]any {
	out := map[string]any{
		"title":   info.Title,
		"version": info.Version,
	}
	if info.Description != "" {
		out["description"] = info.Description
	}
	return out
}

func buildPaths(cfg generatorConfig) map[string]any {
	operation := map[string]any{
		"operationId": cfg.operation.OperationID,
		"requestBody": map[string]any{
			"required": true,
			"content": map[string]any{
				cfg.contentType: map[string]any{
					"schema": map[string]any{
						"$ref": "#/components/schemas/" + cfg.component,
					},
				},
			},
		},
		"responses": map[string]any{
			"204": map[string]any{"description": "OK"},
		},
	}
	if cfg.operation.Summary != "" {
		operation["summary"] = cfg.operation.Summary
	}
	return map[string]any{
		cfg.operation.Path: map[string]any{
			cfg.operation.Method: operation,
		},
	}
}

func validateDocument(document map[string]any) error {
	if openapi, _ := document["openapi"].(string); openapi == "" {
		return fmt.Errorf("openapi: document missing version string")
	}
	info, _ := document["info"].(map[string]any)
	if title, _ := info["title"].(string); title == "" {
		return fmt.Errorf("openapi: info.title must be set")
	}
	if version, _ := info["version"].(string); version == "" {
		return fmt.Errorf("openapi: info.version must be set")
	}
	paths, _ := document["paths"].(map[string]any)
	for pathKey, pathValue := range paths {
		pathItem, _ := pathValue.(map[string]any)
		if len(pathItem) == 0 {
			return fmt.Errorf("openapi: path %q missing operations", pathKey)
		}
		for method, operationValue := range pathItem {
			operation, _ := operationValue.(map[string]any)
			if id, _ := operation["operationId"].(string); id == "" {
				return fmt.Errorf("openapi: operation %s %s missing operationId", method, pathKey)
			}
		}
	}
	return nil
}
