package plangen

import (
	"fmt"

	"github.com/sakif/study-plan/internal/model"
)

// Normalize converts the AI service's raw JSON payload into a PlanContent.
//
// The external workflow is not stable about its envelope; depending on how
// it is configured, the subject list arrives as:
//
//	[{"output": {"subjects": [...]}}]   wrapped array + output envelope
//	[{"subjects": [...]}]               wrapped array
//	{"subjects": [...]}                 bare object
//	{"output": {"subjects": [...]}}     output envelope
//
// Each candidate is tried in that order and the first match wins. Anything
// else (including null, numbers, or an empty array) yields an empty module
// list. Normalize never fails: a malformed payload degrades to a plan with a
// description and no modules.
//
// raw is the result of decoding the response body into `any`, so lists are
// []any and objects are map[string]any.
func Normalize(raw any, days int, theme string) model.PlanContent {
	subjects := extractSubjects(raw)

	modules := make([]model.PlanModule, 0, len(subjects))
	for _, item := range subjects {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		modules = append(modules, buildModule(entry))
	}

	return model.PlanContent{
		Description: fmt.Sprintf("Plano de estudos personalizado para %d dias sobre %s.", days, theme),
		Modules:     modules,
	}
}

// extractSubjects walks the known envelope shapes, first match wins.
func extractSubjects(raw any) []any {
	if list, ok := raw.([]any); ok && len(list) > 0 {
		if first, ok := list[0].(map[string]any); ok {
			if output, ok := first["output"].(map[string]any); ok {
				if subjects, ok := output["subjects"].([]any); ok {
					return subjects
				}
			}
			if subjects, ok := first["subjects"].([]any); ok {
				return subjects
			}
		}
		return nil
	}

	if obj, ok := raw.(map[string]any); ok {
		if subjects, ok := obj["subjects"].([]any); ok {
			return subjects
		}
		if output, ok := obj["output"].(map[string]any); ok {
			if subjects, ok := output["subjects"].([]any); ok {
				return subjects
			}
		}
	}

	return nil
}

// buildModule maps one subject entry to a module.
//
// All four fields are optional in the upstream payload. Missing or
// non-string values are coerced to "" rather than leaking a marker like
// "undefined" into the rendered plan. An empty interval means the title is
// just the topic, with no ": " prefix.
func buildModule(entry map[string]any) model.PlanModule {
	interval := stringField(entry, "interval")
	topic := stringField(entry, "topic")

	title := topic
	if interval != "" {
		title = interval + ": " + topic
	}

	return model.PlanModule{
		Title: title,
		Topics: []string{
			stringField(entry, "description"),
			"Dica: " + stringField(entry, "tip"),
		},
	}
}

func stringField(entry map[string]any, key string) string {
	s, _ := entry[key].(string)
	return s
}
