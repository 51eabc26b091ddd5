package command

import (
	"fmt"
	"strings"
)

// ResponseFormatter renders command output as Markdown. Telegram and the
// terminal both render it.
type ResponseFormatter struct{}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{}
}

func (f *ResponseFormatter) Info(title string) string {
	return fmt.Sprintf("**%s**\n", title)
}

func (f *ResponseFormatter) Label(label, value string) string {
	return fmt.Sprintf("**%s**  ›  `%s`\n", label, value)
}

func (f *ResponseFormatter) Usage(command string) string {
	return fmt.Sprintf("**Usage**: `%s`\n", command)
}

func (f *ResponseFormatter) Examples(examples []string) string {
	var sb strings.Builder
	sb.WriteString("**Examples**:\n")
	for _, ex := range examples {
		sb.WriteString(fmt.Sprintf("`%s`\n", ex))
	}
	return sb.String()
}

func (f *ResponseFormatter) List(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("› %s\n", item))
	}
	return sb.String()
}

func (f *ResponseFormatter) Tip(text string) string {
	return fmt.Sprintf("**Tip**: %s\n", text)
}

func (f *ResponseFormatter) Combine(sections ...string) string {
	return strings.Join(sections, "\n")
}
