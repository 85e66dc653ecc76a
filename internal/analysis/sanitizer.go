package analysis

import (
	"regexp"
	"strings"
)

// FilteredMarker replaces any text caught by the medical safety filters.
// It stays visible in the output so the user can see filtering occurred.
const FilteredMarker = "[CONTENT FILTERED FOR SAFETY]"

// maxOutputLength is the cap applied to sanitized model output, in runes
const maxOutputLength = 500

var (
	scriptRe       = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	iframeRe       = regexp.MustCompile(`(?is)<iframe\b.*?</iframe>`)
	objectRe       = regexp.MustCompile(`(?is)<object\b.*?</object>`)
	embedRe        = regexp.MustCompile(`(?is)<embed\b.*?</embed>`)
	jsProtoRe      = regexp.MustCompile(`(?i)javascript:`)
	dataHTMLRe     = regexp.MustCompile(`(?i)data:text/html`)
	vbProtoRe      = regexp.MustCompile(`(?i)vbscript:`)
	eventHandlerRe = regexp.MustCompile(`(?i)\bon\w+\s*=`)

	boldRe       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe     = regexp.MustCompile(`\*(.*?)\*`)
	codeBlockRe  = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe = regexp.MustCompile("`([^`]+)`")
	linkRe       = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	headingRe    = regexp.MustCompile(`#{1,6}\s*`)
	angleRe      = regexp.MustCompile(`[<>]`)
)

// medicalSafetyFilters are applied in order; every match is replaced with
// FilteredMarker rather than removed silently.
var medicalSafetyFilters = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(suicide|kill yourself|harm yourself)\b`),
	regexp.MustCompile(`(?i)\b(overdose|lethal dose)\b`),
	regexp.MustCompile(`(?i)\b(dangerous|toxic|poison)\s+(medication|drug|substance)\b`),
	regexp.MustCompile(`(?i)\b(ignore|skip|avoid)\s+(doctor|medical|professional)\b`),
}

// Sanitize strips browser-executable HTML constructs and markdown decoration
// from model output, redacts unsafe medical phrases, and truncates the result
// to 500 characters. It is pure and never fails; absence of matches is a no-op.
func Sanitize(raw string) string {
	s := raw

	// HTML constructs that could execute in a browser
	s = scriptRe.ReplaceAllString(s, "")
	s = iframeRe.ReplaceAllString(s, "")
	s = objectRe.ReplaceAllString(s, "")
	s = embedRe.ReplaceAllString(s, "")
	s = jsProtoRe.ReplaceAllString(s, "")
	s = dataHTMLRe.ReplaceAllString(s, "")
	s = vbProtoRe.ReplaceAllString(s, "")
	s = eventHandlerRe.ReplaceAllString(s, "")

	// Markdown decoration; the output renders as plain chat text
	s = boldRe.ReplaceAllString(s, "$1")
	s = italicRe.ReplaceAllString(s, "$1")
	s = codeBlockRe.ReplaceAllString(s, "")
	s = inlineCodeRe.ReplaceAllString(s, "$1")
	s = linkRe.ReplaceAllString(s, "$1")
	s = headingRe.ReplaceAllString(s, "")
	s = angleRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	for _, filter := range medicalSafetyFilters {
		s = filter.ReplaceAllString(s, FilteredMarker)
	}

	return truncate(s, maxOutputLength)
}

// truncate caps s at limit runes, appending an ellipsis when it cuts
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
