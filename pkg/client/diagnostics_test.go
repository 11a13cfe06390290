package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsRedactsSensitiveFields(t *testing.T) {
	account, _, _ := newTestAccount(t)

	phone := "+49123456789"

	device := makeDevice(1, "AAA", 10)
	device.Phone = &phone

	account.cache.setDevice(device)
	account.cache.setPosition(makePosition(10, 1))
	account.cache.setSubscription(makeSubscription(100, "AAA"))

	dump := account.Diagnostics()

	bikes, ok := dump["bikes"].([]interface{})
	require.True(t, ok)
	require.Len(t, bikes, 1)

	entry, ok := bikes[0].(map[string]interface{})
	require.True(t, ok)

	deviceDump, ok := entry["device"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "**REDACTED**", deviceDump["uniqueId"])
	assert.Equal(t, "**REDACTED**", deviceDump["phone"])
	assert.Equal(t, "bike-AAA", deviceDump["name"])

	positionDump, ok := entry["position"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "**REDACTED**", positionDump["latitude"])
	assert.Equal(t, "**REDACTED**", positionDump["longitude"])
	assert.Equal(t, "**REDACTED**", positionDump["altitude"])

	subscriptionDump, ok := entry["subscription"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "**REDACTED**", subscriptionDump["uniqueId"])

	_, hasTrip := entry["trip"]
	assert.False(t, hasTrip, "no cached trip means no trip section")
}

func TestDiagnosticsEmptyAccount(t *testing.T) {
	account, _, _ := newTestAccount(t)

	dump := account.Diagnostics()
	bikes, ok := dump["bikes"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, bikes)
}
