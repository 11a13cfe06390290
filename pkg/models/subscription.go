package models

import "time"

// Subscription is the billing/trial state for a device. The admin API
// addresses devices by unique id, so subscriptions are keyed by it.
type Subscription struct {
	ID             int
	UniqueID       string
	Category       string
	TrialDuration  int
	TrialEnd       time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	SubscriptionID *string
	SetupFee       *float64
}

// DecodeSubscription builds a Subscription from an untyped key-value structure.
func DecodeSubscription(raw map[string]interface{}) (*Subscription, error) {
	f := newFields("subscription", raw)

	s := &Subscription{
		ID:             f.integer("id"),
		UniqueID:       f.str("uniqueId"),
		Category:       f.str("category"),
		TrialDuration:  f.integer("trialDuration"),
		TrialEnd:       f.timestamp("trialEnd"),
		CreatedAt:      f.timestamp("createdAt"),
		UpdatedAt:      f.timestamp("updatedAt"),
		SubscriptionID: f.optStr("subscriptionId"),
		SetupFee:       f.optFloat("setupFee"),
	}

	if f.err != nil {
		return nil, f.err
	}

	return s, nil
}

// UnmarshalSubscription decodes a subscription from its JSON representation.
func UnmarshalSubscription(data []byte) (*Subscription, error) {
	raw, err := decodeMap(data)
	if err != nil {
		return nil, &DecodeError{Record: "subscription", Reason: err.Error()}
	}

	return DecodeSubscription(raw)
}

// Encode converts the subscription back to its untyped key-value form.
func (s *Subscription) Encode() map[string]interface{} {
	return map[string]interface{}{
		"id":             s.ID,
		"uniqueId":       s.UniqueID,
		"category":       s.Category,
		"trialDuration":  s.TrialDuration,
		"trialEnd":       encodeTime(s.TrialEnd),
		"createdAt":      encodeTime(s.CreatedAt),
		"updatedAt":      encodeTime(s.UpdatedAt),
		"subscriptionId": encodeOptStr(s.SubscriptionID),
		"setupFee":       encodeOptFloat(s.SetupFee),
	}
}
