package models

import "time"

// Position is a single GPS fix for a device. Absence of a position for a
// device is a valid "no data yet" state, not an error.
type Position struct {
	ID         int
	DeviceID   int
	Protocol   string
	Latitude   float64
	Longitude  float64
	Altitude   float64
	Speed      float64
	Course     float64
	Accuracy   float64
	Valid      bool
	Outdated   bool
	Address    *string
	DeviceTime time.Time
	FixTime    time.Time
	ServerTime time.Time
	Attributes PositionAttributes
}

// PositionAttributes carries the device-reported extras of a fix.
type PositionAttributes struct {
	BatteryLevel  int
	Charge        bool
	Distance      float64
	Hours         int
	Ignition      bool
	Motion        bool
	Status        int
	TotalDistance float64
	Alarm         *string
	Armed         *bool
	Index         *int
}

// DecodePosition builds a Position from an untyped key-value structure.
func DecodePosition(raw map[string]interface{}) (*Position, error) {
	f := newFields("position", raw)

	p := &Position{
		ID:         f.integer("id"),
		DeviceID:   f.integer("deviceId"),
		Protocol:   f.str("protocol"),
		Latitude:   f.float("latitude"),
		Longitude:  f.float("longitude"),
		Altitude:   f.float("altitude"),
		Speed:      f.float("speed"),
		Course:     f.float("course"),
		Accuracy:   f.float("accuracy"),
		Valid:      f.boolean("valid"),
		Outdated:   f.booleanOr("outdated", false),
		Address:    f.optStr("address"),
		DeviceTime: f.timestamp("deviceTime"),
		FixTime:    f.timestamp("fixTime"),
		ServerTime: f.timestamp("serverTime"),
	}

	attrRaw := f.object("attributes")
	if f.err != nil {
		return nil, f.err
	}

	attrs, err := decodePositionAttributes(attrRaw)
	if err != nil {
		return nil, err
	}

	p.Attributes = *attrs

	return p, nil
}

func decodePositionAttributes(raw map[string]interface{}) (*PositionAttributes, error) {
	f := newFields("position attributes", raw)

	a := &PositionAttributes{
		BatteryLevel:  f.integer("batteryLevel"),
		Charge:        f.boolean("charge"),
		Distance:      f.float("distance"),
		Hours:         f.integer("hours"),
		Ignition:      f.boolean("ignition"),
		Motion:        f.boolean("motion"),
		Status:        f.integer("status"),
		TotalDistance: f.float("totalDistance"),
		Alarm:         f.optStr("alarm"),
		Armed:         f.optBool("armed"),
		Index:         f.optInt("index"),
	}

	if f.err != nil {
		return nil, f.err
	}

	return a, nil
}

// UnmarshalPosition decodes a position from its JSON representation.
func UnmarshalPosition(data []byte) (*Position, error) {
	raw, err := decodeMap(data)
	if err != nil {
		return nil, &DecodeError{Record: "position", Reason: err.Error()}
	}

	return DecodePosition(raw)
}

// Encode converts the position back to its untyped key-value form.
func (p *Position) Encode() map[string]interface{} {
	return map[string]interface{}{
		"id":         p.ID,
		"deviceId":   p.DeviceID,
		"protocol":   p.Protocol,
		"latitude":   p.Latitude,
		"longitude":  p.Longitude,
		"altitude":   p.Altitude,
		"speed":      p.Speed,
		"course":     p.Course,
		"accuracy":   p.Accuracy,
		"valid":      p.Valid,
		"outdated":   p.Outdated,
		"address":    encodeOptStr(p.Address),
		"deviceTime": encodeTime(p.DeviceTime),
		"fixTime":    encodeTime(p.FixTime),
		"serverTime": encodeTime(p.ServerTime),
		"attributes": p.Attributes.encode(),
	}
}

func (a *PositionAttributes) encode() map[string]interface{} {
	return map[string]interface{}{
		"batteryLevel":  a.BatteryLevel,
		"charge":        a.Charge,
		"distance":      a.Distance,
		"hours":         a.Hours,
		"ignition":      a.Ignition,
		"motion":        a.Motion,
		"status":        a.Status,
		"totalDistance": a.TotalDistance,
		"alarm":         encodeOptStr(a.Alarm),
		"armed":         encodeOptBool(a.Armed),
		"index":         encodeOptInt(a.Index),
	}
}
