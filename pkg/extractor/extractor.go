package extractor

import (
	"context"
	"fmt"

	"pagebrief/models"
	"pagebrief/pkg/fetcher"
	"pagebrief/pkg/transcript"
)

// Extractor resolves a URL to plain text, branching between the generic page
// pipeline and the video transcript path.
type Extractor struct {
	fetcher *fetcher.Fetcher
	video   *transcript.Extractor
}

func New(f *fetcher.Fetcher, video *transcript.Extractor) *Extractor {
	return &Extractor{fetcher: f, video: video}
}

// Extract fetches a URL and produces capped plain text. Video watch URLs go
// through the transcript extractor; everything else is fetched and reduced
// with the selected strategy. Readability mode falls back to the heuristic
// strategy when distillation finds nothing.
func (e *Extractor) Extract(ctx context.Context, url string, mode models.ExtractMode) (string, error) {
	if transcript.IsVideoURL(url) {
		return e.video.ExtractVideo(ctx, url)
	}

	html, err := e.fetcher.GetHTML(ctx, url)
	if err != nil {
		return "", err
	}

	if mode == models.ExtractModeReadability {
		if text, err := ExtractReadable(url, html); err == nil {
			return text, nil
		}
	}

	text := ExtractText(html)
	if text == "" {
		return "", fmt.Errorf("no readable content found at %s", url)
	}
	return text, nil
}
