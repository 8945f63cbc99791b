package docdig

import (
	"regexp"
	"strings"
)

// markdownStep is one cosmetic rewrite of converted Markdown.
// Every step is total: input without a match is returned unchanged.
type markdownStep func(string) string

// normalizeSteps run in order before code blocks are restored, so none of
// them can touch code content.
var normalizeSteps = []markdownStep{
	dropIconGlyphs,
	promoteBoldLines,
	spaceCallTokens,
	dropLineNumberRuns,
	collapseBlankLines,
}

var (
	iconEntityRe = regexp.MustCompile(`&#x[0-9a-fA-F]+;`)
	iconGlyphRe  = regexp.MustCompile(`[\x{E000}-\x{F8FF}]`)
	boldLineRe   = regexp.MustCompile(`(?m)^[ \t]*\*\*([^*\n]+?)\*\*[ \t]*$`)
	callTokenRe  = regexp.MustCompile(`(^|\n)(note\(|s\()`)
	lineNumberRe = regexp.MustCompile(`(?:^|\n)(?:[ \t]*\d+[ \t]*\n){3,}`)
	blankRunRe   = regexp.MustCompile(`\n(?:[ \t]*\n){2,}`)
)

// languageLinePattern matches a bare language-name line directly above a
// placeholder. The placeholder is appended quoted.
const languageLinePattern = `(^|\n)([a-zA-Z0-9_+-]{2,})\n\n`

// NormalizeMarkdown applies the cosmetic cleanup chain to converted Markdown
// and then restores code blocks as fenced blocks, byte-for-byte.
func NormalizeMarkdown(markdown string, blocks []CodeBlock) string {
	for _, step := range normalizeSteps {
		markdown = step(markdown)
	}
	return restoreCodeBlocks(markdown, blocks)
}

// dropIconGlyphs removes icon-font glyphs, both as literal hex character
// references and as decoded private-use code points.
func dropIconGlyphs(s string) string {
	s = iconEntityRe.ReplaceAllString(s, "")
	return iconGlyphRe.ReplaceAllString(s, "")
}

// promoteBoldLines turns a line consisting only of bold text into a heading.
func promoteBoldLines(s string) string {
	return boldLineRe.ReplaceAllString(s, "## $1")
}

// spaceCallTokens puts a paragraph break before call-like tokens that themes
// render flush against the preceding text.
func spaceCallTokens(s string) string {
	return callTokenRe.ReplaceAllString(s, "${1}\n\n${2}")
}

// dropLineNumberRuns removes runs of three or more lines holding only a
// number, left behind by line-number gutters rendered outside <pre>.
func dropLineNumberRuns(s string) string {
	return lineNumberRe.ReplaceAllString(s, "\n")
}

// collapseBlankLines reduces any run of blank lines to a single one.
func collapseBlankLines(s string) string {
	return blankRunRe.ReplaceAllString(s, "\n\n")
}

// restoreCodeBlocks swaps placeholders for fenced blocks. Only the exact
// placeholders of blocks are recognized. Each is first isolated into its own
// paragraph; a bare language-name line directly above an untagged block
// becomes the block's language.
func restoreCodeBlocks(s string, blocks []CodeBlock) string {
	if len(blocks) == 0 {
		return finishMarkdown(s)
	}

	for _, b := range blocks {
		s = strings.ReplaceAll(s, b.Placeholder, "\n\n"+b.Placeholder+"\n\n")
	}
	s = collapseBlankLines(s)

	languages := make([]string, len(blocks))
	for i, b := range blocks {
		languages[i] = b.Language
		if b.Language != "" {
			continue
		}
		re := regexp.MustCompile(languageLinePattern + regexp.QuoteMeta(b.Placeholder))
		m := re.FindStringSubmatchIndex(s)
		if m == nil {
			continue
		}
		languages[i] = s[m[4]:m[5]]
		s = s[:m[0]] + s[m[2]:m[3]] + "\n" + b.Placeholder + s[m[1]:]
	}
	s = collapseBlankLines(s)

	s = finishMarkdown(s)

	for i, b := range blocks {
		s = strings.Replace(s, b.Placeholder, "```"+languages[i]+"\n"+b.Code+"\n```", 1)
	}
	return s
}

// finishMarkdown trims surrounding blank lines and ends non-empty output
// with exactly one newline.
func finishMarkdown(s string) string {
	s = strings.Trim(s, "\n")
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s + "\n"
}
