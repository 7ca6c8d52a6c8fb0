package pipeline

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/contentforge/content-forge/internal/llm"
)

// extractYAML extracts YAML content from a ```yaml ... ``` code block.
// Returns an error only when a code block opening is found but no closing
// marker. Without any fence, the whole content is tried as YAML.
func extractYAML(content string) (string, error) {
	if idx := strings.Index(content, "```yaml"); idx >= 0 {
		rest := content[idx+7:]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end]), nil
		}
		return "", fmt.Errorf("unclosed ```yaml code block")
	}
	if idx := strings.Index(content, "```"); idx >= 0 {
		rest := content[idx+3:]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end]), nil
		}
		return "", fmt.Errorf("unclosed ``` code block")
	}
	return strings.TrimSpace(content), nil
}

// generate issues one call to the generation service and decodes the fenced
// YAML response into T. Transport and format failures both surface as
// *llm.ServiceError: a response the pipeline cannot decode is a service
// problem and is fair game for the retry wrapper.
func generate[T any](ctx context.Context, provider llm.Provider, op, system, user string) (T, error) {
	var out T

	resp, err := provider.CallLLM(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	})
	if err != nil {
		return out, err
	}

	raw, err := extractYAML(resp.Content)
	if err != nil {
		return out, &llm.ServiceError{Op: op, Err: err}
	}
	if err := yaml.Unmarshal([]byte(raw), &out); err != nil {
		return out, &llm.ServiceError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return out, nil
}
