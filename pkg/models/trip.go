package models

import "time"

// Trip summarizes the most recently completed trip of a device. At most one
// trip is cached per device.
type Trip struct {
	DeviceID        int
	DeviceName      string
	StartLat        float64
	StartLon        float64
	EndLat          float64
	EndLon          float64
	StartTime       time.Time
	EndTime         time.Time
	StartOdometer   float64
	EndOdometer     float64
	StartPositionID int
	EndPositionID   int
	AverageSpeed    float64
	MaxSpeed        float64
	Distance        float64
	Duration        int
	SpentFuel       float64
	StartAddress    *string
	EndAddress      *string
	DriverName      *string
	DriverUniqueID  *string
}

// DecodeTrip builds a Trip from an untyped key-value structure.
func DecodeTrip(raw map[string]interface{}) (*Trip, error) {
	f := newFields("trip", raw)

	t := &Trip{
		DeviceID:        f.integer("deviceId"),
		DeviceName:      f.str("deviceName"),
		StartLat:        f.float("startLat"),
		StartLon:        f.float("startLon"),
		EndLat:          f.float("endLat"),
		EndLon:          f.float("endLon"),
		StartTime:       f.timestamp("startTime"),
		EndTime:         f.timestamp("endTime"),
		StartOdometer:   f.float("startOdometer"),
		EndOdometer:     f.float("endOdometer"),
		StartPositionID: f.integer("startPositionId"),
		EndPositionID:   f.integer("endPositionId"),
		AverageSpeed:    f.float("averageSpeed"),
		MaxSpeed:        f.float("maxSpeed"),
		Distance:        f.float("distance"),
		Duration:        f.integer("duration"),
		SpentFuel:       f.float("spentFuel"),
		StartAddress:    f.optStr("startAddress"),
		EndAddress:      f.optStr("endAddress"),
		DriverName:      f.optStr("driverName"),
		DriverUniqueID:  f.optStr("driverUniqueId"),
	}

	if f.err != nil {
		return nil, f.err
	}

	return t, nil
}

// UnmarshalTrip decodes a trip from its JSON representation.
func UnmarshalTrip(data []byte) (*Trip, error) {
	raw, err := decodeMap(data)
	if err != nil {
		return nil, &DecodeError{Record: "trip", Reason: err.Error()}
	}

	return DecodeTrip(raw)
}

// Encode converts the trip back to its untyped key-value form.
func (t *Trip) Encode() map[string]interface{} {
	return map[string]interface{}{
		"deviceId":        t.DeviceID,
		"deviceName":      t.DeviceName,
		"startLat":        t.StartLat,
		"startLon":        t.StartLon,
		"endLat":          t.EndLat,
		"endLon":          t.EndLon,
		"startTime":       encodeTime(t.StartTime),
		"endTime":         encodeTime(t.EndTime),
		"startOdometer":   t.StartOdometer,
		"endOdometer":     t.EndOdometer,
		"startPositionId": t.StartPositionID,
		"endPositionId":   t.EndPositionID,
		"averageSpeed":    t.AverageSpeed,
		"maxSpeed":        t.MaxSpeed,
		"distance":        t.Distance,
		"duration":        t.Duration,
		"spentFuel":       t.SpentFuel,
		"startAddress":    encodeOptStr(t.StartAddress),
		"endAddress":      encodeOptStr(t.EndAddress),
		"driverName":      encodeOptStr(t.DriverName),
		"driverUniqueId":  encodeOptStr(t.DriverUniqueID),
	}
}
