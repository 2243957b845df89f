package config

import (
	"flag"
	"os"
)

const defaultPreviewWidth = 100

// parses CLI flags for the preview command
func ParsePreviewFlags(args []string) (Flags, error) {
	defaults := DefaultPreviewFlags()

	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	path := fs.String("file", "", "path to a generated itinerary (markdown); stdin when empty")
	unlocked := fs.Bool("unlocked", false, "render the locked days as if a valid key was presented")
	width := fs.Int("width", 0, "word wrap width; terminal width when 0")
	checkoutURL := fs.String("checkout", defaults.CheckoutURL, "purchase link shown under the locked days")
	style := fs.String("style", "", "glamour style (dark, light, notty); detected from the terminal when empty")

	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}

	return Flags{
		Path:        *path,
		Unlocked:    *unlocked,
		Width:       *width,
		CheckoutURL: *checkoutURL,
		Style:       *style,
	}, nil
}

// returns default flags for the preview command. the checkout link follows
// CHECKOUT_URL like the server does.
func DefaultPreviewFlags() Flags {
	return Flags{
		Path:        "",
		Unlocked:    false,
		Width:       defaultPreviewWidth,
		CheckoutURL: valueOr(os.Getenv("CHECKOUT_URL"), DefaultCheckoutURL),
	}
}
