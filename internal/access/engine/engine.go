// Package engine decides whether a viewer may see a performer's profile.
//
// Evaluation is a pure function over already-resolved inputs. It runs an
// ordered pipeline of named stages; each stage either lets evaluation
// continue or returns a terminal decision. The order is the precedence
// contract: integrity, then block, then location, then subscription.
package engine

import (
	"eyecandy/internal/access/models"
	id "eyecandy/pkg/domain"
	dErrors "eyecandy/pkg/domain-errors"
)

// Stage names, reported in Decision.DecidedBy.
const (
	StageIntegrity    = "integrity"
	StageBlock        = "block"
	StageLocation     = "location"
	StageSubscription = "subscription"
	StageTeaser       = "teaser_session"
)

// Input is everything a single evaluation needs. Collaborator failures are
// passed as signals rather than errors so that the engine can turn them into
// decisions.
type Input struct {
	Viewer      models.Viewer
	PerformerID id.PerformerID

	// Location is nil when nothing could be resolved.
	Location       *models.GeoLocation
	LocationFailed bool

	// Rules is nil when the performer's configuration could not be loaded.
	Rules       *models.RuleSet
	RulesFailed bool

	Entitled          bool
	EntitlementFailed bool
}

// evaluation carries state between stages.
type evaluation struct {
	in           Input
	subscription models.SubscriptionType
}

type stage struct {
	name  string
	apply func(*evaluation) (models.Decision, bool)
}

var pipeline = []stage{
	{name: StageIntegrity, apply: checkIntegrity},
	{name: StageBlock, apply: checkBlock},
	{name: StageLocation, apply: resolveLocation},
	{name: StageSubscription, apply: resolveSubscription},
}

// Stages returns the pipeline stage names in evaluation order.
func Stages() []string {
	names := make([]string, len(pipeline))
	for i, st := range pipeline {
		names[i] = st.name
	}
	return names
}

// Evaluate maps the input to a decision. The only error is a missing
// performer ID; every other failure becomes a decision with reason error.
func Evaluate(in Input) (models.Decision, error) {
	if in.PerformerID.IsNil() {
		return models.Decision{}, dErrors.New(dErrors.CodeInvalidInput, "performer ID is required")
	}

	ev := &evaluation{in: in}
	for _, st := range pipeline {
		if d, done := st.apply(ev); done {
			d.DecidedBy = st.name
			return d, nil
		}
	}
	// Unreachable while resolveSubscription is terminal for every type.
	d := ErrorDecision()
	d.DecidedBy = StageSubscription
	return d, nil
}

func checkIntegrity(ev *evaluation) (models.Decision, bool) {
	if ev.in.RulesFailed || ev.in.Rules == nil {
		return ErrorDecision(), true
	}
	return models.Decision{}, false
}

func checkBlock(ev *evaluation) (models.Decision, bool) {
	v := ev.in.Viewer
	if v.IsAnonymous() {
		return models.Decision{}, false
	}
	if ev.in.Rules.IsBlocked(*v.ID) {
		return deny(models.ReasonUserBlocked, MessageFor(models.ReasonUserBlocked, nil)), true
	}
	return models.Decision{}, false
}

func resolveLocation(ev *evaluation) (models.Decision, bool) {
	if ev.in.LocationFailed {
		return ErrorDecision(), true
	}

	rule := MatchLocation(ev.in.Rules.LocationRules, ev.in.Location)
	if rule == nil {
		ev.subscription = ev.in.Rules.DefaultSubscription()
		return models.Decision{}, false
	}
	if !rule.IsAllowed {
		return deny(models.ReasonLocationBlocked, MessageFor(models.ReasonLocationBlocked, nil)), true
	}

	ev.subscription = rule.SubscriptionType
	if ev.subscription == "" {
		ev.subscription = ev.in.Rules.DefaultSubscription()
	}
	return models.Decision{}, false
}

func resolveSubscription(ev *evaluation) (models.Decision, bool) {
	switch ev.subscription {
	case models.SubscriptionFree:
		return full(), true

	case models.SubscriptionMonthly, models.SubscriptionPerVisit:
		if ev.in.Entitled {
			return full(), true
		}
		if ev.in.EntitlementFailed {
			return ErrorDecision(), true
		}
		return subscriptionRequired(ev.subscription), true

	case models.SubscriptionTeaser:
		// Entitlement lookup failures fall through to the teaser: it grants
		// less than a confirmed entitlement would.
		if ev.in.Entitled {
			return full(), true
		}
		policy := ev.in.Rules.TeaserPolicy
		if !policy.Active() {
			return subscriptionRequired(models.SubscriptionTeaser), true
		}
		return Teaser(policy.DurationSeconds, policy.ExpiryMessage), true

	default:
		return ErrorDecision(), true
	}
}

func full() models.Decision {
	return models.Decision{
		Allowed:     true,
		Reason:      models.ReasonNone,
		AccessLevel: models.AccessFull,
	}
}

// Teaser builds a teaser-access decision with the given time remaining.
func Teaser(remainingSeconds int, expiryMessage string) models.Decision {
	remaining := remainingSeconds
	return models.Decision{
		Allowed:                true,
		Reason:                 models.ReasonNone,
		AccessLevel:            models.AccessTeaser,
		TeaserRemainingSeconds: &remaining,
		Message:                TeaserMessage(expiryMessage),
	}
}

func deny(reason models.Reason, message string) models.Decision {
	return models.Decision{
		Allowed:     false,
		Reason:      reason,
		AccessLevel: models.AccessNone,
		Message:     message,
	}
}

func subscriptionRequired(t models.SubscriptionType) models.Decision {
	d := deny(models.ReasonSubscriptionRequired, MessageFor(models.ReasonSubscriptionRequired, &t))
	d.SubscriptionRequired = &t
	return d
}

// ErrorDecision is the denial returned when a collaborator failed.
func ErrorDecision() models.Decision {
	return deny(models.ReasonError, MessageFor(models.ReasonError, nil))
}
