package update

import (
	"strings"
	"time"
)

// Exit codes of the updater binary's check-only mode.
const (
	exitNoUpdate        = 0
	exitCheckError      = 1
	exitUpdateAvailable = 100
)

// OutcomeKind classifies the result of one update check.
type OutcomeKind int

const (
	NoUpdate OutcomeKind = iota
	CheckError
	UpdateAvailable
	UnknownOutcome
)

// String returns a short name for logging.
func (k OutcomeKind) String() string {
	switch k {
	case NoUpdate:
		return "no-update"
	case CheckError:
		return "check-error"
	case UpdateAvailable:
		return "update-available"
	default:
		return "unknown"
	}
}

// CheckOutcome is the typed interpretation of a ProcessResult.
type CheckOutcome struct {
	Kind     OutcomeKind
	ExitCode int
	Details  string // captured stderr, set for CheckError
	Offer    Offer  // set for UpdateAvailable
}

// ParseCheckOutcome interprets the exit code and output of a check-only run.
// It is a pure function so the decision logic can be tested without spawning
// processes.
func ParseCheckOutcome(res ProcessResult) CheckOutcome {
	switch res.ExitCode {
	case exitNoUpdate:
		return CheckOutcome{Kind: NoUpdate, ExitCode: res.ExitCode}
	case exitCheckError:
		return CheckOutcome{
			Kind:     CheckError,
			ExitCode: res.ExitCode,
			Details:  strings.TrimSpace(string(res.Stderr)),
		}
	case exitUpdateAvailable:
		return CheckOutcome{
			Kind:     UpdateAvailable,
			ExitCode: res.ExitCode,
			Offer:    parseOffer(string(res.Stdout)),
		}
	default:
		return CheckOutcome{Kind: UnknownOutcome, ExitCode: res.ExitCode}
	}
}

// parseOffer decodes the updater's update-available payload: three
// "Label: value" lines (version name, version tag, release timestamp) followed
// by free-text release notes. Missing lines produce empty fields and a bad
// timestamp produces a zero time; malformed output never fails the check.
func parseOffer(stdout string) Offer {
	first, rest := splitFirstLine(stdout)
	second, rest := splitFirstLine(rest)
	third, notes := splitFirstLine(rest)

	offer := Offer{
		VersionName:  labelValue(first),
		VersionTag:   labelValue(second),
		ReleaseNotes: strings.TrimRight(notes, "\n"),
	}
	if ts := labelValue(third); ts != "" {
		if parsed, err := parseISOTimestamp(ts); err == nil {
			offer.ReleaseTimestamp = parsed
		}
	}
	return offer
}

// splitFirstLine splits off the first line, returning it without the newline.
func splitFirstLine(s string) (line, rest string) {
	idx := strings.IndexByte(s, '\n')
	if idx < 0 {
		return s, ""
	}
	return s[:idx], s[idx+1:]
}

// labelValue extracts the value from a "Label: value" line. Lines without a
// separator yield the empty string.
func labelValue(line string) string {
	_, value, found := strings.Cut(line, ": ")
	if !found {
		return ""
	}
	return strings.TrimSpace(value)
}

// parseISOTimestamp accepts the timestamp shapes the updater is known to
// emit: full RFC 3339, and ISO 8601 without a zone offset.
func parseISOTimestamp(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	var err error
	for _, layout := range layouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
