// Package transcript extracts summarizable text from video watch pages. The
// preferred path probes the live page for transcript segments; when that is
// unavailable or comes up empty, it degrades to title/channel/description
// scraped from the static watch-page HTML. Total failure is reserved for the
// page itself being unfetchable.
package transcript

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pagebrief/models"
	"pagebrief/pkg/fetcher"
)

var reWatchURL = regexp.MustCompile(`(?i)(?:youtube\.com/(?:watch\?|shorts/)|youtu\.be/)`)

// IsVideoURL reports whether a URL matches a recognized video watch pattern.
func IsVideoURL(url string) bool {
	return reWatchURL.MatchString(url)
}

// Patterns over the player-config JSON embedded in watch-page HTML. Values
// are JSON string literals, so escaped characters must be tolerated.
var (
	reShortDescription = regexp.MustCompile(`"shortDescription":"((?:[^"\\]|\\.)*)"`)
	reLDDescription    = regexp.MustCompile(`"description":"((?:[^"\\]|\\.)*)"`)
	reOwnerChannel     = regexp.MustCompile(`"ownerChannelName":"((?:[^"\\]|\\.)*)"`)
	reAuthor           = regexp.MustCompile(`"author":"((?:[^"\\]|\\.)*)"`)
	reUnicodeEscape    = regexp.MustCompile(`\\u([0-9a-fA-F]{4})`)
)

const transcriptNote = "(Note: the transcript could not be extracted for this video; " +
	"this summary is based on the video description only.)"

// Extractor produces plain text from a video URL.
type Extractor struct {
	fetcher  *fetcher.Fetcher
	sessions SessionFactory // nil when no live-page capability is wired
	logger   *slog.Logger
}

func NewExtractor(f *fetcher.Fetcher, sessions SessionFactory, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{fetcher: f, sessions: sessions, logger: logger}
}

// ExtractVideo returns transcript text when the live-page probe succeeds and
// description-based text otherwise. It only errors when even the watch page
// cannot be fetched.
func (e *Extractor) ExtractVideo(ctx context.Context, url string) (string, error) {
	if e.sessions != nil {
		if text, ok := e.tryProbe(ctx, url); ok {
			return text, nil
		}
	}
	return e.extractFromWatchPage(ctx, url)
}

func (e *Extractor) tryProbe(ctx context.Context, url string) (string, bool) {
	session, err := e.sessions.Open(ctx, url)
	if err != nil {
		e.logger.Debug("live page session unavailable", "url", url, "error", err)
		return "", false
	}
	defer session.Close(ctx)

	data, debug, err := RunProbe(ctx, session)
	if err != nil {
		e.logger.Debug("transcript probe failed",
			"url", url,
			"error", err,
			"segments_present", debug.SegmentsPresent,
			"expand_clicked", debug.ExpandClicked,
			"control_found", debug.ControlFound,
			"control_selector", debug.ControlSelector,
		)
		return "", false
	}

	var sb strings.Builder
	if data.Title != "" {
		fmt.Fprintf(&sb, "Video title: %s\n", data.Title)
	}
	if data.Channel != "" {
		fmt.Fprintf(&sb, "Channel: %s\n", data.Channel)
	}
	sb.WriteString("Transcript: ")
	sb.WriteString(data.Transcript)
	return truncate(strings.TrimSpace(sb.String())), true
}

// extractFromWatchPage scrapes title, channel and description out of the
// static watch-page HTML and appends the no-transcript note.
func (e *Extractor) extractFromWatchPage(ctx context.Context, url string) (string, error) {
	html, err := e.fetcher.GetHTML(ctx, url)
	if err != nil {
		return "", err
	}

	title, channel := staticMetadata(html)
	description := watchPageDescription(html)

	var sb strings.Builder
	if title != "" {
		fmt.Fprintf(&sb, "Video title: %s\n", title)
	}
	if channel != "" {
		fmt.Fprintf(&sb, "Channel: %s\n", channel)
	}
	if description != "" {
		fmt.Fprintf(&sb, "Description: %s\n", description)
	}
	sb.WriteString("\n")
	sb.WriteString(transcriptNote)
	return truncate(strings.TrimSpace(sb.String())), nil
}

// staticMetadata pulls title and channel from the parts of a watch page that
// are present in the static document.
func staticMetadata(html string) (title, channel string) {
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		if v, ok := doc.Find(`meta[name="title"]`).Attr("content"); ok {
			title = strings.TrimSpace(v)
		}
		if title == "" {
			title = strings.TrimSpace(doc.Find("title").First().Text())
			title = strings.TrimSuffix(title, " - YouTube")
		}
		if v, ok := doc.Find(`link[itemprop="name"]`).Attr("content"); ok {
			channel = strings.TrimSpace(v)
		}
	}
	if channel == "" {
		if m := reOwnerChannel.FindStringSubmatch(html); m != nil {
			channel = unescapeJSONString(m[1])
		} else if m := reAuthor.FindStringSubmatch(html); m != nil {
			channel = unescapeJSONString(m[1])
		}
	}
	return title, channel
}

// watchPageDescription finds the video description in the player config, or
// failing that in JSON-LD style "description" fields.
func watchPageDescription(html string) string {
	if m := reShortDescription.FindStringSubmatch(html); m != nil {
		return unescapeJSONString(m[1])
	}
	if m := reLDDescription.FindStringSubmatch(html); m != nil {
		return unescapeJSONString(m[1])
	}
	return ""
}

// unescapeJSONString resolves the escape sequences that appear in embedded
// player-config string literals.
func unescapeJSONString(s string) string {
	r := strings.NewReplacer(
		`\n`, "\n",
		`\t`, " ",
		`\r`, "",
		`\"`, `"`,
		`\/`, "/",
		`\\`, `\`,
	)
	s = r.Replace(s)
	return reUnicodeEscape.ReplaceAllStringFunc(s, func(m string) string {
		code, err := strconv.ParseUint(m[2:], 16, 32)
		if err != nil {
			return m
		}
		return string(rune(code))
	})
}

func truncate(s string) string {
	return models.Truncate(s, models.MaxContentLength)
}
