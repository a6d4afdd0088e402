// Package extractor turns fetched documents into plain text suitable for
// summarization. The default strategy is regex/heuristic tag stripping: full
// DOM reconstruction is deliberately out of scope, the output only has to be
// good enough to summarize. A readability-based strategy is available for
// callers that want article distillation.
package extractor

import (
	"regexp"
	"strings"

	"pagebrief/models"
)

// Block elements removed wholesale before any text is considered. Their
// contents are navigation or machinery, never article text.
var reBlocks = func() []*regexp.Regexp {
	tags := []string{"script", "style", "nav", "header", "footer"}
	res := make([]*regexp.Regexp, len(tags))
	for i, tag := range tags {
		res[i] = regexp.MustCompile(`(?is)<` + tag + `[^>]*>.*?</` + tag + `>`)
	}
	return res
}()

var (
	reArticle = regexp.MustCompile(`(?is)<article[^>]*>(.*?)</article>`)
	reMain    = regexp.MustCompile(`(?is)<main[^>]*>(.*?)</main>`)
	reTag     = regexp.MustCompile(`(?s)<[^>]+>`)
	reSpace   = regexp.MustCompile(`\s+`)
)

// Only this fixed set of named entities is decoded. &amp; goes through the
// same single replacer pass as the rest, so it is never double-decoded.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// ExtractText strips an HTML document down to plain text: remove scaffolding
// blocks, prefer <article> then <main> content, drop remaining tags, decode
// entities, collapse whitespace, and cap the length.
func ExtractText(html string) string {
	for _, re := range reBlocks {
		html = re.ReplaceAllString(html, " ")
	}

	if m := reArticle.FindStringSubmatch(html); m != nil {
		html = m[1]
	} else if m := reMain.FindStringSubmatch(html); m != nil {
		html = m[1]
	}

	text := reTag.ReplaceAllString(html, " ")
	text = entityReplacer.Replace(text)
	text = strings.TrimSpace(reSpace.ReplaceAllString(text, " "))
	return models.Truncate(text, models.MaxContentLength)
}
