package engine

import "eyecandy/internal/access/models"

// Viewer-facing copy. Messages are chosen from the reason enum only; they
// never include collaborator error detail or performer-private block data.
const (
	MessageLocationBlocked = "This profile is not available in your location."
	MessageRestricted      = "Access to this profile is restricted."
	MessageSubscribe       = "Subscribe to view this profile."
	MessagePurchaseVisit   = "Purchase a visit to view this profile."
	MessagePreviewEnded    = "Your preview has ended. Subscribe to keep watching."
	MessageTryAgain        = "Something went wrong. Please try again later."
)

// MessageFor returns the message shown for a denial reason.
func MessageFor(reason models.Reason, subscription *models.SubscriptionType) string {
	switch reason {
	case models.ReasonLocationBlocked:
		return MessageLocationBlocked
	case models.ReasonUserBlocked:
		return MessageRestricted
	case models.ReasonSubscriptionRequired:
		if subscription != nil && *subscription == models.SubscriptionPerVisit {
			return MessagePurchaseVisit
		}
		return MessageSubscribe
	case models.ReasonTeaserExpired:
		return MessagePreviewEnded
	case models.ReasonError:
		return MessageTryAgain
	default:
		return ""
	}
}

// TeaserMessage returns the performer's expiry message, or the default copy.
func TeaserMessage(expiryMessage string) string {
	if expiryMessage == "" {
		return MessagePreviewEnded
	}
	return expiryMessage
}
