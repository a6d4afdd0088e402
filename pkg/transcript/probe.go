package transcript

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrNoSegments means the probe ran its full state machine and no transcript
// segments ever appeared. Callers fall back to watch-page metadata.
var ErrNoSegments = errors.New("no transcript segments found")

// segmentWait bounds the post-activation poll for transcript segments.
const segmentWait = 3 * time.Second

// Selector strategies, in priority order. Transcript panels are populated by
// page script, so these reflect the markup the player renders, not anything
// present in the fetched document.
var (
	segmentSelectors = []string{
		"ytd-transcript-segment-renderer .segment-text",
		"ytd-transcript-segment-renderer yt-formatted-string",
		"[class*='transcript-segment']",
	}
	expandSelectors = []string{
		"tp-yt-paper-button#expand",
		"#expand",
		"#description-inline-expander tp-yt-paper-button",
	}
	showMoreSelectors = []string{
		"#more",
		"tp-yt-paper-button#more",
	}
	transcriptControlSelectors = []string{
		"ytd-video-description-transcript-section-renderer button",
		"button[aria-label='Show transcript']",
		"[aria-label='Show transcript']",
	}
	titleSelectors = []string{
		"h1.ytd-watch-metadata yt-formatted-string",
		"h1.title",
	}
	channelSelectors = []string{
		"ytd-channel-name#channel-name a",
		"#owner #channel-name a",
	}
)

// Control is a clickable element discovered on the page.
type Control struct {
	Selector string
	Label    string
}

// DOMSession exposes the live-page primitives the probe needs. Transcript
// panels only exist after client-side script runs, which is why a plain HTTP
// fetch cannot serve this path.
type DOMSession interface {
	// WaitReady blocks until the page has finished its initial load.
	WaitReady(ctx context.Context) error
	// Scroll scrolls the page to trigger lazy-loaded regions.
	Scroll(ctx context.Context) error
	// Texts returns the text content of every element matching selector.
	Texts(ctx context.Context, selector string) ([]string, error)
	// Click clicks the first match; false means nothing matched.
	Click(ctx context.Context, selector string) (bool, error)
	// Controls lists button-like elements with their accessible labels.
	Controls(ctx context.Context) ([]Control, error)
	// WaitForTexts polls for elements matching selector until the timeout.
	WaitForTexts(ctx context.Context, selector string, timeout time.Duration) ([]string, error)
	Close(ctx context.Context) error
}

// SessionFactory opens a live session on a video page. Implementations are
// external collaborators; tests use fakes.
type SessionFactory interface {
	Open(ctx context.Context, url string) (DOMSession, error)
}

// ProbeData is the successful outcome of a transcript probe.
type ProbeData struct {
	Title      string
	Channel    string
	Transcript string
}

// ProbeDebug records which probe steps succeeded, for diagnostics when no
// segments appear.
type ProbeDebug struct {
	SegmentsPresent bool
	ExpandClicked   bool
	ShowMoreClicked bool
	ControlFound    bool
	ControlSelector string
}

// RunProbe executes the transcript extraction state machine against a live
// page: Probe -> Prime -> Locate -> Activate -> Collect. Each step's failure
// routes to the next fallback; only a total absence of segments is an error.
func RunProbe(ctx context.Context, page DOMSession) (*ProbeData, *ProbeDebug, error) {
	debug := &ProbeDebug{}

	// Probe: segments may already be on screen.
	segments := collectSegments(ctx, page)
	if len(segments) == 0 {
		// Prime: wait for readiness, trigger lazy regions, open the
		// description. All best-effort; missing controls are expected.
		if err := page.WaitReady(ctx); err != nil {
			return nil, debug, err
		}
		_ = page.Scroll(ctx)
		debug.ExpandClicked = clickFirst(ctx, page, expandSelectors)
		debug.ShowMoreClicked = clickFirst(ctx, page, showMoreSelectors)

		// Locate and activate the transcript control.
		selector, found := locateTranscriptControl(ctx, page)
		debug.ControlFound = found
		debug.ControlSelector = selector
		if found {
			if _, err := page.Click(ctx, selector); err == nil {
				segments = awaitSegments(ctx, page)
			}
		}
	} else {
		debug.SegmentsPresent = true
	}

	if len(segments) == 0 {
		return nil, debug, ErrNoSegments
	}

	data := &ProbeData{
		Title:      firstText(ctx, page, titleSelectors),
		Channel:    firstText(ctx, page, channelSelectors),
		Transcript: strings.Join(segments, " "),
	}
	return data, debug, nil
}

func collectSegments(ctx context.Context, page DOMSession) []string {
	for _, selector := range segmentSelectors {
		texts, err := page.Texts(ctx, selector)
		if err != nil {
			continue
		}
		if cleaned := cleanTexts(texts); len(cleaned) > 0 {
			return cleaned
		}
	}
	return nil
}

func awaitSegments(ctx context.Context, page DOMSession) []string {
	for _, selector := range segmentSelectors {
		texts, err := page.WaitForTexts(ctx, selector, segmentWait)
		if err != nil {
			continue
		}
		if cleaned := cleanTexts(texts); len(cleaned) > 0 {
			return cleaned
		}
	}
	return nil
}

// locateTranscriptControl tries the attribute selectors first, then scans all
// button-like elements for a "transcript" label.
func locateTranscriptControl(ctx context.Context, page DOMSession) (string, bool) {
	for _, selector := range transcriptControlSelectors {
		texts, err := page.Texts(ctx, selector)
		if err == nil && len(texts) > 0 {
			return selector, true
		}
	}

	controls, err := page.Controls(ctx)
	if err != nil {
		return "", false
	}
	for _, c := range controls {
		if strings.Contains(strings.ToLower(c.Label), "transcript") {
			return c.Selector, true
		}
	}
	return "", false
}

func clickFirst(ctx context.Context, page DOMSession, selectors []string) bool {
	for _, selector := range selectors {
		if ok, err := page.Click(ctx, selector); err == nil && ok {
			return true
		}
	}
	return false
}

func firstText(ctx context.Context, page DOMSession, selectors []string) string {
	for _, selector := range selectors {
		texts, err := page.Texts(ctx, selector)
		if err != nil {
			continue
		}
		for _, t := range texts {
			if t = strings.TrimSpace(t); t != "" {
				return t
			}
		}
	}
	return ""
}

func cleanTexts(texts []string) []string {
	var out []string
	for _, t := range texts {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
