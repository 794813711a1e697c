package openapi_test

import (
	"encoding/json"
	"testing"

	prefs "github.com/goliatone/go-preferences"
	"github.com/goliatone/go-preferences/schema/openapi"
)

func slicerContainer(t *testing.T) *prefs.Container {
	t.Helper()
	engine, err := prefs.NewEngine(prefs.SessionDefaults())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	container := prefs.NewContainer(prefs.WithNotifier(engine))
	if err := container.Add(prefs.NewSlicerEntries(nil)...); err != nil {
		t.Fatalf("add: %v", err)
	}
	return container
}

func componentProperties(t *testing.T, doc map[string]any, name string) map[string]any {
	t.Helper()
	components, _ := doc["components"].(map[string]any)
	schemas, _ := components["schemas"].(map[string]any)
	component, _ := schemas[name].(map[string]any)
	properties, _ := component["properties"].(map[string]any)
	if properties == nil {
		t.Fatalf("missing component %q in %v", name, doc)
	}
	return properties
}

func TestGenerateDescribesEntries(t *testing.T) {
	container := slicerContainer(t)
	if _, err := container.Set(prefs.KeyNumberOfSlices.String(), "30"); err != nil {
		t.Fatalf("set: %v", err)
	}

	doc, err := openapi.Generate(container)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if doc["openapi"] != "3.0.3" {
		t.Fatalf("expected default version, got %v", doc["openapi"])
	}

	properties := componentProperties(t, doc, "Preferences")
	slices, _ := properties["NUMBER_OF_SLICES"].(map[string]any)
	if slices["type"] != "integer" || slices["minimum"] != float64(10) || slices["maximum"] != float64(1000) {
		t.Fatalf("unexpected slices schema: %v", slices)
	}
	if slices["default"] != 100 || slices["x-update-notifier"] != true {
		t.Fatalf("unexpected slices metadata: %v", slices)
	}

	first, _ := properties["FIRST_SLICE_INDEX"].(map[string]any)
	if first["maximum"] != float64(29) {
		t.Fatalf("expected current dependent bound, got %v", first["maximum"])
	}
	if _, ok := first["x-update-notifier"]; ok {
		t.Fatalf("expected dependent not flagged as notifier")
	}

	if _, err := json.Marshal(doc); err != nil {
		t.Fatalf("expected JSON-serializable document: %v", err)
	}
}

func TestGenerateOptions(t *testing.T) {
	doc, err := openapi.Generate(slicerContainer(t),
		openapi.WithOpenAPIVersion("3.1.0"),
		openapi.WithInfo("Slicer", "2.0.0", openapi.WithInfoDescription("Slicer preferences")),
		openapi.WithOperation("/slicer", "POST", "saveSlicer", openapi.WithOperationSummary("Save")),
		openapi.WithContentType("application/vnd.prefs+json"),
		openapi.WithComponentName("Slicer"),
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	info, _ := doc["info"].(map[string]any)
	if doc["openapi"] != "3.1.0" || info["title"] != "Slicer" || info["description"] != "Slicer preferences" {
		t.Fatalf("unexpected header: %v %v", doc["openapi"], info)
	}
	paths, _ := doc["paths"].(map[string]any)
	item, _ := paths["/slicer"].(map[string]any)
	operation, _ := item["post"].(map[string]any)
	if operation["operationId"] != "saveSlicer" || operation["summary"] != "Save" {
		t.Fatalf("unexpected operation: %v", operation)
	}
	body, _ := operation["requestBody"].(map[string]any)
	content, _ := body["content"].(map[string]any)
	media, _ := content["application/vnd.prefs+json"].(map[string]any)
	schema, _ := media["schema"].(map[string]any)
	if schema["$ref"] != "#/components/schemas/Slicer" {
		t.Fatalf("unexpected schema ref: %v", schema)
	}
	componentProperties(t, doc, "Slicer")
}

func TestGenerateRejectsNilContainer(t *testing.T) {
	if _, err := openapi.Generate(nil); err == nil {
		t.Fatalf("expected error for nil container")
	}
}
