package memory

import (
	"strings"

	"github.com/samber/lo"
	"github.com/sandevgo/aitalk/internal/core"
)

// ContextPlaceholder marks where the assembled context goes in a prompt template.
const ContextPlaceholder = "{{context}}"

const DefaultPromptTemplate = "以下はユーザーに関する情報です:\n" + ContextPlaceholder

// Assemble joins result texts with newlines, keeping rank order.
func Assemble(results []core.QueryResult) string {
	return strings.Join(lo.Map(results, func(r core.QueryResult, _ int) string {
		return r.Text
	}), "\n")
}

// SystemPrompt substitutes context into template.
func SystemPrompt(template, context string) string {
	if template == "" {
		template = DefaultPromptTemplate
	}
	return strings.ReplaceAll(template, ContextPlaceholder, context)
}
