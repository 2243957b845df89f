package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/term"

	"codeberg.org/atlasagency/server/internal/config"
	"codeberg.org/atlasagency/server/internal/itinerary"
	"codeberg.org/atlasagency/server/internal/paywall"
	"codeberg.org/atlasagency/server/internal/preview"
)

// renders a generated itinerary in the terminal the way a visitor sees it
func main() {
	flags, err := config.ParsePreviewFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if err := run(flags, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error running preview: %v\n", err)
		os.Exit(1)
	}
}

func run(flags config.Flags, stdin io.Reader, stdout io.Writer) error {
	text, err := readInput(flags.Path, stdin)
	if err != nil {
		return err
	}

	it, err := itinerary.Split(text)
	if err != nil {
		return err
	}

	gate := paywall.Locked
	if flags.Unlocked {
		gate = paywall.Unlocked
	}

	out, err := preview.Render(paywall.Render(it, gate, flags.CheckoutURL), preview.Options{
		Width: width(flags.Width),
		Style: flags.Style,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(stdout, out)
	return err
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return string(data), nil
}

// explicit width, then terminal width, then the default
func width(requested int) int {
	if requested > 0 {
		return requested
	}

	if term.IsTerminal(os.Stdout.Fd()) {
		if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
			return w
		}
	}

	return config.DefaultPreviewFlags().Width
}
