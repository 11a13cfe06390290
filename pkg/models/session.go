package models

import "time"

// Session is the authenticated identity context established with the device
// API. It is used inside the transport layer and never exposed to cache
// consumers.
type Session struct {
	ID               int
	Name             string
	Email            string
	Token            string
	Administrator    bool
	Readonly         bool
	DeviceReadonly   bool
	Disabled         bool
	DeviceLimit      int
	UserLimit        int
	LimitCommands    bool
	Latitude         float64
	Longitude        float64
	Zoom             int
	TwelveHourFormat bool
	CoordinateFormat *string
	ExpirationTime   *time.Time
	Attributes       SessionAttributes
}

// SessionAttributes holds the app-level preferences attached to a session.
type SessionAttributes struct {
	AppEnvironment string
	AppPackage     string
	AppVersion     string
	FcmTokens      []string
	Locale         string
	SendAnalytics  bool
}

// DecodeSession builds a Session from an untyped key-value structure.
func DecodeSession(raw map[string]interface{}) (*Session, error) {
	f := newFields("session", raw)

	s := &Session{
		ID:               f.integer("id"),
		Name:             f.str("name"),
		Email:            f.str("email"),
		Token:            f.str("token"),
		Administrator:    f.boolean("administrator"),
		Readonly:         f.boolean("readonly"),
		DeviceReadonly:   f.boolean("deviceReadonly"),
		Disabled:         f.boolean("disabled"),
		DeviceLimit:      f.integer("deviceLimit"),
		UserLimit:        f.integer("userLimit"),
		LimitCommands:    f.boolean("limitCommands"),
		Latitude:         f.float("latitude"),
		Longitude:        f.float("longitude"),
		Zoom:             f.integer("zoom"),
		TwelveHourFormat: f.boolean("twelveHourFormat"),
		CoordinateFormat: f.optStr("coordinateFormat"),
		ExpirationTime:   f.optTimestamp("expirationTime"),
	}

	attrRaw := f.object("attributes")
	if f.err != nil {
		return nil, f.err
	}

	attrs, err := decodeSessionAttributes(attrRaw)
	if err != nil {
		return nil, err
	}

	s.Attributes = *attrs

	return s, nil
}

func decodeSessionAttributes(raw map[string]interface{}) (*SessionAttributes, error) {
	f := newFields("session attributes", raw)

	a := &SessionAttributes{
		AppEnvironment: f.str("appEnvironment"),
		AppPackage:     f.str("appPackage"),
		AppVersion:     f.str("appVersion"),
		FcmTokens:      f.strings("fcmTokens"),
		Locale:         f.str("locale"),
		SendAnalytics:  f.boolean("sendAnalytics"),
	}

	if f.err != nil {
		return nil, f.err
	}

	return a, nil
}

// UnmarshalSession decodes a session from its JSON representation.
func UnmarshalSession(data []byte) (*Session, error) {
	raw, err := decodeMap(data)
	if err != nil {
		return nil, &DecodeError{Record: "session", Reason: err.Error()}
	}

	return DecodeSession(raw)
}

// Encode converts the session back to its untyped key-value form.
func (s *Session) Encode() map[string]interface{} {
	return map[string]interface{}{
		"id":               s.ID,
		"name":             s.Name,
		"email":            s.Email,
		"token":            s.Token,
		"administrator":    s.Administrator,
		"readonly":         s.Readonly,
		"deviceReadonly":   s.DeviceReadonly,
		"disabled":         s.Disabled,
		"deviceLimit":      s.DeviceLimit,
		"userLimit":        s.UserLimit,
		"limitCommands":    s.LimitCommands,
		"latitude":         s.Latitude,
		"longitude":        s.Longitude,
		"zoom":             s.Zoom,
		"twelveHourFormat": s.TwelveHourFormat,
		"coordinateFormat": encodeOptStr(s.CoordinateFormat),
		"expirationTime":   encodeOptTime(s.ExpirationTime),
		"attributes":       s.Attributes.encode(),
	}
}

func (a *SessionAttributes) encode() map[string]interface{} {
	return map[string]interface{}{
		"appEnvironment": a.AppEnvironment,
		"appPackage":     a.AppPackage,
		"appVersion":     a.AppVersion,
		"fcmTokens":      a.FcmTokens,
		"locale":         a.Locale,
		"sendAnalytics":  a.SendAnalytics,
	}
}

// Credentials is the token material returned by the identity service.
type Credentials struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	IssuedAt    time.Time `json:"-"`
}

// Expired reports whether the token should be considered stale at the given
// instant, with a safety margin so requests in flight do not hit a 401.
func (c *Credentials) Expired(now time.Time, margin time.Duration) bool {
	if c.ExpiresIn <= 0 {
		return false
	}

	expiry := c.IssuedAt.Add(time.Duration(c.ExpiresIn) * time.Second)

	return !now.Before(expiry.Add(-margin))
}
