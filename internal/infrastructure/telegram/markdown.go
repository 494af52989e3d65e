package telegram

import (
	"fmt"
	"strings"

	"ainewshub/internal/domain"
)

// summaryCap bounds the summary inside a message; the stored summary is
// longer, so it is re-truncated here for channel readability.
const summaryCap = 200

// markdownEscaper escapes every character MarkdownV2 treats as markup.
// A single Replacer pass guarantees each character is escaped exactly once.
var markdownEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"]", "\\]",
	"(", "\\(",
	")", "\\)",
	"~", "\\~",
	"`", "\\`",
	">", "\\>",
	"#", "\\#",
	"+", "\\+",
	"-", "\\-",
	"=", "\\=",
	"|", "\\|",
	"{", "\\{",
	"}", "\\}",
	".", "\\.",
	"!", "\\!",
)

// urlEscaper handles inline-link targets, where only parentheses break
// the markup.
var urlEscaper = strings.NewReplacer(
	"(", "\\(",
	")", "\\)",
)

// EscapeMarkdownV2 escapes text for literal rendering under MarkdownV2.
func EscapeMarkdownV2(text string) string {
	return markdownEscaper.Replace(text)
}

var categoryEmoji = map[domain.Category]string{
	domain.CategoryClaude: "🟠",
	domain.CategoryOpenAI: "🟢",
	domain.CategoryGoogle: "🔵",
	domain.CategoryOther:  "⚪",
}

// FormatArticle renders one article as a MarkdownV2 message.
func FormatArticle(a domain.Article) string {
	emoji, ok := categoryEmoji[a.Category]
	if !ok {
		emoji = categoryEmoji[domain.CategoryOther]
	}

	summary := a.Summary
	if runes := []rune(summary); len(runes) > summaryCap {
		summary = string(runes[:summaryCap]) + "…"
	}

	return fmt.Sprintf("%s *%s*\n%s\n\n📌 %s \\| %s\n🔗 [Read more](%s)",
		emoji,
		EscapeMarkdownV2(a.Title),
		EscapeMarkdownV2(summary),
		EscapeMarkdownV2(a.Source),
		EscapeMarkdownV2(string(a.Category)),
		urlEscaper.Replace(a.URL),
	)
}
