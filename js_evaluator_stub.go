//go:build !js_eval

package prefs

// NewJSEvaluator is unavailable without the js_eval build tag.
func NewJSEvaluator(...JSEvaluatorOption) Evaluator {
	return nil
}

func jsEvaluatorAvailable() bool {
	return false
}
