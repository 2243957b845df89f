package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"codeberg.org/atlasagency/server/internal/paywall"
)

type Options struct {
	Width int

	// glamour style name; auto-detected from the terminal when empty
	Style string
}

// renders a gated view for the terminal. locked days show their heading
// and a badge, nothing else.
func Render(view paywall.View, opts Options) (string, error) {
	md, err := newRenderer(opts)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Your Visual Itinerary"))
	b.WriteString("\n")

	if err := renderDay(&b, md, view.Free); err != nil {
		return "", err
	}

	for _, day := range view.Locked {
		if day.Locked {
			b.WriteString(lockedDayStyle.Render(fmt.Sprintf("%s %s", day.Heading, lockBadge)))
			b.WriteString("\n")
			continue
		}

		if err := renderDay(&b, md, day); err != nil {
			return "", err
		}
	}

	switch {
	case view.SummaryLocked:
		b.WriteString(lockedDayStyle.Render(fmt.Sprintf("BUDGET SUMMARY %s", lockBadge)))
		b.WriteString("\n")
	case view.Summary != "":
		out, err := md.Render("### BUDGET SUMMARY\n\n" + view.Summary)
		if err != nil {
			return "", fmt.Errorf("failed to render summary: %w", err)
		}
		b.WriteString(out)
	}

	if view.Paywall != nil {
		b.WriteString(paywallStyle.Render(fmt.Sprintf("%s\n%s: %s",
			view.Paywall.Message,
			view.Paywall.CheckoutLabel,
			view.Paywall.CheckoutURL,
		)))
		b.WriteString("\n")
	}

	return b.String(), nil
}

func renderDay(b *strings.Builder, md *glamour.TermRenderer, day paywall.DayView) error {
	b.WriteString(dayStyle.Render(day.Heading))
	b.WriteString("\n")

	out, err := md.Render(day.Body)
	if err != nil {
		return fmt.Errorf("failed to render day %d: %w", day.Number, err)
	}
	b.WriteString(out)

	if day.ImageURL != "" {
		b.WriteString(infoStyle.Render(fmt.Sprintf("%s: %s", day.ImageCaption, day.ImageURL)))
		b.WriteString("\n")
	}

	return nil
}

func newRenderer(opts Options) (*glamour.TermRenderer, error) {
	style := glamour.WithAutoStyle()
	if opts.Style != "" {
		style = glamour.WithStandardStyle(opts.Style)
	}

	return glamour.NewTermRenderer(style, glamour.WithWordWrap(opts.Width))
}
