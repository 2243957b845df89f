package itinerary

import (
	"errors"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	imageSearchURL = "https://source.unsplash.com/800x600/?"

	// shown in place of a missing budget summary
	SummaryPlaceholder = "No budget summary was included in this itinerary."
)

// returned when the text holds no day heading
var ErrUnparseable = errors.New("itinerary has no recognizable day headings")

var (
	// "### DAY 3 : Title" at line start; "jour" is accepted for French output
	dayHeadingRegex = regexp.MustCompile(`(?im)^[ \t]*#{0,6}[ \t]*\**[ \t]*(?:day|jour)[ \t]+(\d+)[ \t]*\**[ \t]*:([^\n]*)$`)

	// "### BUDGET SUMMARY ..." or a line holding only "**BUDGET SUMMARY**",
	// matching the heading forms the day pattern accepts
	summaryHeadingRegex = regexp.MustCompile(`(?im)^[ \t]*(?:#{1,6}[ \t]*\**[ \t]*(?:budget summary|résumé du budget)\b[^\n]*|\**[ \t]*(?:budget summary|résumé du budget)[ \t]*:?[ \t]*\**[ \t]*:?[ \t]*\r?)$`)

	// "- 📷 **Image :** [Kyoto,Temple]", the emoji optionally followed by U+FE0F
	imageFieldRegex = regexp.MustCompile(`(?m)^[ \t]*[-*][ \t]*📷\x{FE0F}?[ \t]*\*\*[ \t]*Image[ \t]*:?[ \t]*\*\*[ \t]*:?[ \t]*\[([^\]\n]*)\][^\n]*(?:\r?\n|$)`)
)

// Split partitions a generated document into ordered day blocks and the
// trailing budget summary. Day blocks are returned in document order and are
// not checked against the requested duration.
func Split(text string) (*Itinerary, error) {
	matches := dayHeadingRegex.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil, ErrUnparseable
	}

	it := &Itinerary{
		Raw:  text,
		Days: make([]Day, 0, len(matches)),
	}

	// the summary is only recognized after the last day heading
	end := len(text)
	lastHeadingEnd := matches[len(matches)-1][1]

	if loc := summaryHeadingRegex.FindStringIndex(text[lastHeadingEnd:]); loc != nil {
		summaryStart := lastHeadingEnd + loc[0]
		summaryBodyStart := lastHeadingEnd + loc[1]

		end = summaryStart
		it.Summary = strings.TrimSpace(text[summaryBodyStart:])
		it.HasSummary = true
	}

	for i, m := range matches {
		bodyEnd := end
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}

		number, _ := strconv.Atoi(text[m[2]:m[3]]) //nolint:errcheck // regex guarantees digits

		day := Day{
			Number:  number,
			Heading: cleanHeading(text[m[0]:m[1]]),
			Title:   strings.TrimSpace(strings.Trim(strings.TrimSpace(text[m[4]:m[5]]), "*")),
		}

		day.Body, day.ImageKeyword = extractImage(text[m[1]:bodyEnd])
		day.ImageURL = ImageURL(day.ImageKeyword)

		it.Days = append(it.Days, day)
	}

	return it, nil
}

// removes the image field from a day body and returns its keyword
func extractImage(body string) (string, string) {
	match := imageFieldRegex.FindStringSubmatch(body)
	if match == nil {
		return strings.TrimSpace(body), ""
	}

	keyword := normalizeKeyword(match[1])
	cleaned := imageFieldRegex.ReplaceAllString(body, "")

	return strings.TrimSpace(cleaned), keyword
}

// "  Kyoto Temple " -> "Kyoto,Temple"; existing commas are kept
func normalizeKeyword(raw string) string {
	terms := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '"' || r == '\'' || unicode.IsSpace(r)
	})
	return strings.Join(terms, ",")
}

// builds the image search URL for a keyword; empty keyword gives no URL
func ImageURL(keyword string) string {
	if keyword == "" {
		return ""
	}

	terms := strings.Split(keyword, ",")
	for i, term := range terms {
		terms[i] = url.QueryEscape(term)
	}

	return imageSearchURL + strings.Join(terms, ",")
}

func cleanHeading(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "# \t")
	return strings.TrimSpace(strings.ReplaceAll(line, "**", ""))
}
