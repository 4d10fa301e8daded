package update

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ErrRestartPending is returned after an install has been dispatched to the
// external updater. The caller must let the process exit so the updater can
// replace files; the controller itself never terminates the process.
var ErrRestartPending = errors.New("update install dispatched, restart pending")

// Preferences is the update-relevant view of the preferences store.
type Preferences interface {
	AllowBeta() bool
	AutoCheck() bool
	UpdateInterval() time.Duration
	LastCheck() (time.Time, bool)
	SetLastCheck(t time.Time) error
	IsSkipped(versionTag string) bool
	SkipVersion(versionTag string) error
}

// Controller runs the update check and decision flow: launch the checker,
// interpret its outcome, consult the skip list, present the offer, and act on
// the operator's response.
type Controller struct {
	prefs          Preferences
	runner         Runner
	prompter       OfferPrompter
	logger         *slog.Logger
	currentVersion string
	now            func() time.Time
}

// NewController wires the decision flow together. currentVersion is the
// running launcher version, used for display and logging only.
func NewController(prefs Preferences, runner Runner, prompter OfferPrompter, currentVersion string, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		prefs:          prefs,
		runner:         runner,
		prompter:       prompter,
		logger:         logger,
		currentVersion: currentVersion,
		now:            time.Now,
	}
}

// CheckForUpdates performs one full check cycle. Every cycle, regardless of
// outcome, records the check time so the scheduler does not retry in a tight
// loop. The only non-nil return is ErrRestartPending after an install was
// dispatched; all failures degrade to "no update this cycle".
func (c *Controller) CheckForUpdates(ctx context.Context) error {
	defer c.recordCheck()

	res, err := c.runner.RunCheck(ctx, c.prefs.AllowBeta())
	if err != nil {
		c.logger.Warn("update check did not complete cleanly", "error", err)
		if res.ExitCode < 0 && len(res.Stdout) == 0 {
			// The checker never produced a usable result.
			c.logger.Warn("treating failed check as error outcome")
			return nil
		}
	}

	outcome := ParseCheckOutcome(res)
	c.logger.Debug("update check finished", "outcome", outcome.Kind.String(), "exit_code", outcome.ExitCode)

	switch outcome.Kind {
	case NoUpdate:
		c.logger.Info("no update available")
	case CheckError:
		c.logger.Warn("updater reported a check error", "details", outcome.Details)
	case UpdateAvailable:
		return c.offerUpdate(outcome.Offer)
	default:
		c.logger.Warn("updater exited with unknown code", "exit_code", outcome.ExitCode)
	}
	return nil
}

// recordCheck persists the check timestamp. Runs on every cycle.
func (c *Controller) recordCheck() {
	if err := c.prefs.SetLastCheck(c.now()); err != nil {
		c.logger.Warn("failed to persist last check time", "error", err)
	}
}

// offerUpdate presents an available update unless the operator skipped this
// version earlier, then acts on the response. Install and Skip are mutually
// exclusive: installing a version never marks it skipped.
func (c *Controller) offerUpdate(offer Offer) error {
	if c.prefs.IsSkipped(offer.VersionTag) {
		c.logger.Info("update available but version is skipped", "version", offer.VersionTag)
		return nil
	}

	c.logger.Info("update available",
		"name", offer.VersionName, "version", offer.VersionTag, "released", offer.ReleaseTimestamp)
	c.logNotNewer(offer.VersionTag)

	switch c.prompter.PromptOffer(c.currentVersion, offer) {
	case ResponseInstall:
		return c.performUpdate(offer.VersionTag)
	case ResponseSkip:
		if err := c.prefs.SkipVersion(offer.VersionTag); err != nil {
			c.logger.Warn("failed to persist skipped version", "error", err)
		}
		c.logger.Info("version skipped", "version", offer.VersionTag)
	case ResponseDecline:
		c.logger.Debug("update declined")
	}
	return nil
}

// performUpdate dispatches the detached installer. On success the caller must
// exit the process (signalled via ErrRestartPending).
func (c *Controller) performUpdate(versionTag string) error {
	if err := c.runner.RunInstall(versionTag, c.prefs.AllowBeta()); err != nil {
		c.logger.Error("failed to dispatch updater", "error", err)
		return nil
	}
	return ErrRestartPending
}

// logNotNewer flags offers that are not actually newer than the running
// version. Informational only: the updater decides what to offer, the
// launcher just surfaces the mismatch.
func (c *Controller) logNotNewer(versionTag string) {
	current, err := ParseVersion(c.currentVersion)
	if err != nil {
		return
	}
	offered, err := ParseVersion(versionTag)
	if err != nil {
		return
	}
	if !offered.IsGreaterThan(current) {
		c.logger.Info("offered version is not newer than the running version",
			"offered", offered.String(), "current", current.String())
	}
}
