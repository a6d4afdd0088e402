package extractor

import (
	"bufio"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"pagebrief/models"
)

// ExtractReadable distills the main article from a document with
// go-readability, then flattens the clean content into plain text.
func ExtractReadable(rawURL, html string) (string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), parsedURL)
	if err != nil {
		return "", fmt.Errorf("readability parse failed: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return "", fmt.Errorf("failed to parse distilled content: %w", err)
	}

	var sb strings.Builder
	if title := normalizeText(article.Title); title != "" {
		sb.WriteString(title)
		sb.WriteString("\n\n")
	}
	doc.Find("h1,h2,h3,h4,p,li,pre,td").Each(func(i int, s *goquery.Selection) {
		if text := normalizeText(s.Text()); text != "" {
			sb.WriteString(text)
			sb.WriteString(" ")
		}
	})

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("readability produced no content for %s", rawURL)
	}
	return models.Truncate(text, models.MaxContentLength), nil
}

// normalizeText trims each line and joins non-empty lines with single spaces.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
