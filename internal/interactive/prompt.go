// Package interactive presents update offers on the terminal and collects
// the operator's decision.
package interactive

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/lodestone-launcher/lodestone/internal/update"
)

// Prompter asks the operator what to do with an available update.
type Prompter struct {
	in      io.Reader
	out     io.Writer
	scanner *bufio.Scanner
}

// NewPrompter creates a prompter on stdin/stdout.
func NewPrompter() *Prompter {
	return NewPrompterWithIO(os.Stdin, os.Stdout)
}

// NewPrompterWithIO creates a prompter with custom input/output (for testing).
func NewPrompterWithIO(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:      in,
		out:     out,
		scanner: bufio.NewScanner(in),
	}
}

// IsTerminal checks if stdin is a terminal (TTY).
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// PromptOffer shows the offer and reads one of install / skip / decline.
// EOF and unrecognized input decline, so a broken pipe can never trigger an
// install or poison the skip list.
func (p *Prompter) PromptOffer(currentVersion string, offer update.Offer) update.OfferResponse {
	_, _ = fmt.Fprintf(p.out, "\nUpdate available: %s (%s)\n", offer.VersionName, offer.VersionTag)
	_, _ = fmt.Fprintf(p.out, "You are running version %s.\n", currentVersion)
	if !offer.ReleaseTimestamp.IsZero() {
		_, _ = fmt.Fprintf(p.out, "Released: %s\n", offer.ReleaseTimestamp.Format("2006-01-02"))
	}
	if notes := strings.TrimSpace(offer.ReleaseNotes); notes != "" {
		_, _ = fmt.Fprintf(p.out, "\nRelease notes:\n%s\n", notes)
	}

	_, _ = fmt.Fprint(p.out, "\nInstall now, skip this version, or decide later? [i/s/d] ")

	if !p.scanner.Scan() {
		return update.ResponseDecline
	}

	switch strings.ToLower(strings.TrimSpace(p.scanner.Text())) {
	case "i", "install":
		return update.ResponseInstall
	case "s", "skip":
		return update.ResponseSkip
	case "d", "decline", "later", "":
		return update.ResponseDecline
	default:
		_, _ = fmt.Fprintln(p.out, "Unrecognized response, not installing.")
		return update.ResponseDecline
	}
}

// ReportingPrompter writes the offer to its writer and always declines. Used
// when stdin is not a terminal so automatic checks never block on input.
type ReportingPrompter struct {
	out io.Writer
}

// NewReportingPrompter creates a non-interactive prompter.
func NewReportingPrompter(out io.Writer) *ReportingPrompter {
	return &ReportingPrompter{out: out}
}

// PromptOffer reports the offer and declines.
func (p *ReportingPrompter) PromptOffer(currentVersion string, offer update.Offer) update.OfferResponse {
	_, _ = fmt.Fprintf(p.out, "Update available: %s (%s), currently running %s.\n",
		offer.VersionName, offer.VersionTag, currentVersion)
	_, _ = fmt.Fprintf(p.out, "Run 'lodestone update install %s' to install it.\n", offer.VersionTag)
	return update.ResponseDecline
}
