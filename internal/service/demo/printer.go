package demo

import (
	"fmt"
	"io"
	"strings"

	"github.com/sandevgo/aitalk/internal/core"
	"github.com/sandevgo/aitalk/internal/service/ui"
	"github.com/sandevgo/aitalk/pkg/conv"
)

// Printer writes demo output. Write errors are ignored as with fmt.Println.
type Printer struct {
	out            io.Writer
	renderMarkdown bool
}

func NewPrinter(out io.Writer, renderMarkdown bool) *Printer {
	return &Printer{out: out, renderMarkdown: renderMarkdown}
}

func (p *Printer) line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Header(id, title string) {
	p.line("%s", ui.Banner())
	p.line("%s", ui.TitleStyle.Render(fmt.Sprintf("【デモ%s】%s", id, title)))
	p.line("%s", ui.Banner())
}

func (p *Printer) Rule() {
	p.line("%s", ui.Rule())
}

func (p *Printer) End() {
	p.line("")
}

func (p *Printer) Sent(text string) {
	p.line("📤 送信: %s", text)
	p.Rule()
}

// Reply prints a model answer under label, rendered from Markdown when enabled.
func (p *Printer) Reply(label, answer string) {
	p.line("%s", label)
	p.line("%s", p.render(answer))
}

func (p *Printer) render(answer string) string {
	if !p.renderMarkdown {
		return answer
	}
	text, err := conv.MarkdownToText(answer)
	if err != nil || text == "" {
		return answer
	}
	return text
}

func (p *Printer) Corpus(texts []string) {
	p.line("📝 外部メモリに保存された情報:")
	p.Rule()
	p.numbered(texts)
	p.End()
	p.line("%s", ui.SuccessStyle.Render("✅ ベクトルDBに保存完了"))
}

func (p *Printer) Query(query string) {
	p.line("🔍 質問: %s", query)
	p.Rule()
}

func (p *Printer) Results(results []core.QueryResult) {
	p.line("📋 検索結果（関連度が高い情報）:")
	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Text
	}
	p.numbered(texts)
}

func (p *Printer) Context(context string) {
	p.line("📋 LLMに渡したコンテキスト:")
	p.line("  %s", context)
	p.Rule()
}

func (p *Printer) numbered(texts []string) {
	for i, t := range texts {
		p.line("  %s %s", ui.FlagStyle.Render(fmt.Sprintf("%d.", i+1)), t)
	}
}

// Usage prints the step list for a suite.
func (p *Printer) Usage(command string, s *Suite) {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s %s [%s]\n\n", ui.TitleStyle.Render("使い方:"), command, strings.Join(s.IDs(), "|"))
	b.WriteString(ui.TitleStyle.Render("デモ番号:") + "\n")
	for _, st := range s.Steps {
		fmt.Fprintf(&b, "    %-6s %s\n", ui.FlagStyle.Render(st.ID), ui.DescStyle.Render(st.Help))
	}
	fmt.Fprintf(&b, "    %-6s %s\n", ui.FlagStyle.Render(AllSteps), ui.DescStyle.Render("全て順番に実行"))
	fmt.Fprint(p.out, b.String())
}
