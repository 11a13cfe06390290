package client

const redactedValue = "**REDACTED**"

// redactedKeys are the location and identity fields stripped from
// diagnostics dumps.
var redactedKeys = map[string]struct{}{
	"altitude":  {},
	"latitude":  {},
	"longitude": {},
	"phone":     {},
	"uniqueId":  {},
}

// Diagnostics returns a snapshot of every cached record with location and
// identity fields redacted, safe to attach to a bug report.
func (a *Account) Diagnostics() map[string]interface{} {
	bikes := make([]interface{}, 0)

	for _, id := range a.cache.deviceIDs() {
		device, ok := a.cache.device(id)
		if !ok {
			continue
		}

		entry := map[string]interface{}{
			"device": redact(device.Encode()),
		}

		if position, ok := a.cache.position(id); ok {
			entry["position"] = redact(position.Encode())
		}

		if trip, ok := a.cache.trip(id); ok {
			entry["trip"] = redact(trip.Encode())
		}

		if subscription, ok := a.cache.subscription(device.UniqueID); ok {
			entry["subscription"] = redact(subscription.Encode())
		}

		bikes = append(bikes, entry)
	}

	return map[string]interface{}{"bikes": bikes}
}

// redact replaces sensitive values in place of a copied map, descending into
// nested objects.
func redact(raw map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(raw))

	for key, value := range raw {
		if _, sensitive := redactedKeys[key]; sensitive {
			out[key] = redactedValue
			continue
		}

		if nested, ok := value.(map[string]interface{}); ok {
			out[key] = redact(nested)
			continue
		}

		out[key] = value
	}

	return out
}
