// Package update orchestrates the external updater binary: launching it in
// check or install mode, interpreting its exit protocol, and scheduling
// automatic checks.
package update

import (
	"context"
	"time"
)

// ProcessResult captures one invocation of the updater binary.
type ProcessResult struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Offer describes an available update parsed from the updater's output.
type Offer struct {
	VersionName      string
	VersionTag       string
	ReleaseTimestamp time.Time // zero when the updater emitted a bad timestamp
	ReleaseNotes     string
}

// Runner launches the external updater binary.
// ExecRunner is the real implementation; tests substitute fakes.
type Runner interface {
	// RunCheck runs the updater in check-only mode and waits (bounded) for it
	// to finish. The result is returned even when the wait failed, so callers
	// can act on partial output.
	RunCheck(ctx context.Context, allowBeta bool) (ProcessResult, error)

	// RunInstall launches the updater detached to install the given version.
	// It does not wait for completion; once it returns nil the updater owns
	// the installation and the caller should exit.
	RunInstall(versionTag string, allowBeta bool) error
}

// OfferResponse is the operator's answer to an update offer.
type OfferResponse int

const (
	ResponseDecline OfferResponse = iota // do nothing this cycle
	ResponseInstall                      // hand off to the updater binary
	ResponseSkip                         // never offer this version again
)

// OfferPrompter presents an update offer and collects the response.
type OfferPrompter interface {
	PromptOffer(currentVersion string, offer Offer) OfferResponse
}
