package models

import "time"

// Device is a tracker as reported by the device API. Instances are immutable
// snapshots; the client replaces cached entries wholesale on every update.
type Device struct {
	ID          int
	UniqueID    string
	Name        string
	Status      string
	Disabled    bool
	GroupID     int
	PositionID  int
	LastUpdate  time.Time
	Model       *string
	Category    *string
	Contact     *string
	Phone       *string
	GeofenceIDs []int
	Attributes  DeviceAttributes
}

// DeviceAttributes is the nested attribute bag of a device.
type DeviceAttributes struct {
	Alarm          bool
	AutoGuard      bool
	GeofenceRadius int
	Guarded        bool
	GuardType      string
	LastAlarm      int
	TrialEnd       time.Time
	Passport       *Passport
	Stolen         *bool
}

// Passport is the bike passport stored alongside the device attributes.
type Passport struct {
	BikePictures    []string
	BikeType        string
	Colour          string
	Engine          string
	FrameNumber     string
	Insurance       bool
	Manufacturer    string
	Model           string
	Price           int
	ReceiptPictures []string
}

// DecodeDevice builds a Device from an untyped key-value structure.
func DecodeDevice(raw map[string]interface{}) (*Device, error) {
	f := newFields("device", raw)

	d := &Device{
		ID:          f.integer("id"),
		UniqueID:    f.str("uniqueId"),
		Name:        f.str("name"),
		Status:      f.str("status"),
		Disabled:    f.booleanOr("disabled", false),
		GroupID:     f.integer("groupId"),
		PositionID:  f.integer("positionId"),
		LastUpdate:  f.timestamp("lastUpdate"),
		Model:       f.optStr("model"),
		Category:    f.optStr("category"),
		Contact:     f.optStr("contact"),
		Phone:       f.optStr("phone"),
		GeofenceIDs: f.integers("geofenceIds"),
	}

	attrRaw := f.object("attributes")
	if f.err != nil {
		return nil, f.err
	}

	attrs, err := decodeDeviceAttributes(attrRaw)
	if err != nil {
		return nil, err
	}

	d.Attributes = *attrs

	return d, nil
}

func decodeDeviceAttributes(raw map[string]interface{}) (*DeviceAttributes, error) {
	f := newFields("device attributes", raw)

	a := &DeviceAttributes{
		Alarm:          f.boolean("alarm"),
		AutoGuard:      f.boolean("autoGuard"),
		GeofenceRadius: f.integer("geofenceRadius"),
		Guarded:        f.boolean("guarded"),
		GuardType:      f.str("guardType"),
		LastAlarm:      f.integer("lastAlarm"),
		TrialEnd:       f.timestamp("trialEnd"),
		Stolen:         f.optBool("stolen"),
	}

	passportRaw := f.optObject("passport")
	if f.err != nil {
		return nil, f.err
	}

	if passportRaw != nil {
		passport, err := decodePassport(passportRaw)
		if err != nil {
			return nil, err
		}

		a.Passport = passport
	}

	return a, nil
}

func decodePassport(raw map[string]interface{}) (*Passport, error) {
	f := newFields("passport", raw)

	p := &Passport{
		BikePictures:    f.strings("bikePictures"),
		BikeType:        f.str("bikeType"),
		Colour:          f.str("colour"),
		Engine:          f.str("engine"),
		FrameNumber:     f.str("frameNumber"),
		Insurance:       f.booleanOr("insurance", false),
		Manufacturer:    f.str("manufacturer"),
		Model:           f.str("model"),
		Price:           f.integer("price"),
		ReceiptPictures: f.strings("receiptPictures"),
	}

	if f.err != nil {
		return nil, f.err
	}

	return p, nil
}

// UnmarshalDevice decodes a device from its JSON representation.
func UnmarshalDevice(data []byte) (*Device, error) {
	raw, err := decodeMap(data)
	if err != nil {
		return nil, &DecodeError{Record: "device", Reason: err.Error()}
	}

	return DecodeDevice(raw)
}

// Encode converts the device back to its untyped key-value form.
func (d *Device) Encode() map[string]interface{} {
	var geofences interface{}
	if d.GeofenceIDs != nil {
		geofences = d.GeofenceIDs
	}

	return map[string]interface{}{
		"id":          d.ID,
		"uniqueId":    d.UniqueID,
		"name":        d.Name,
		"status":      d.Status,
		"disabled":    d.Disabled,
		"groupId":     d.GroupID,
		"positionId":  d.PositionID,
		"lastUpdate":  encodeTime(d.LastUpdate),
		"model":       encodeOptStr(d.Model),
		"category":    encodeOptStr(d.Category),
		"contact":     encodeOptStr(d.Contact),
		"phone":       encodeOptStr(d.Phone),
		"geofenceIds": geofences,
		"attributes":  d.Attributes.encode(),
	}
}

func (a *DeviceAttributes) encode() map[string]interface{} {
	var passport interface{}
	if a.Passport != nil {
		passport = a.Passport.encode()
	}

	return map[string]interface{}{
		"alarm":          a.Alarm,
		"autoGuard":      a.AutoGuard,
		"geofenceRadius": a.GeofenceRadius,
		"guarded":        a.Guarded,
		"guardType":      a.GuardType,
		"lastAlarm":      a.LastAlarm,
		"trialEnd":       encodeTime(a.TrialEnd),
		"passport":       passport,
		"stolen":         encodeOptBool(a.Stolen),
	}
}

func (p *Passport) encode() map[string]interface{} {
	return map[string]interface{}{
		"bikePictures":    p.BikePictures,
		"bikeType":        p.BikeType,
		"colour":          p.Colour,
		"engine":          p.Engine,
		"frameNumber":     p.FrameNumber,
		"insurance":       p.Insurance,
		"manufacturer":    p.Manufacturer,
		"model":           p.Model,
		"price":           p.Price,
		"receiptPictures": p.ReceiptPictures,
	}
}

// Clone returns a deep copy, used for the clone-mutate-write update pattern.
func (d *Device) Clone() *Device {
	clone := *d

	clone.Model = cloneStr(d.Model)
	clone.Category = cloneStr(d.Category)
	clone.Contact = cloneStr(d.Contact)
	clone.Phone = cloneStr(d.Phone)

	if d.GeofenceIDs != nil {
		clone.GeofenceIDs = append([]int(nil), d.GeofenceIDs...)
	}

	clone.Attributes.Stolen = cloneBool(d.Attributes.Stolen)

	if d.Attributes.Passport != nil {
		passport := *d.Attributes.Passport
		passport.BikePictures = append([]string(nil), d.Attributes.Passport.BikePictures...)
		passport.ReceiptPictures = append([]string(nil), d.Attributes.Passport.ReceiptPictures...)
		clone.Attributes.Passport = &passport
	}

	return &clone
}

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}

	v := *s

	return &v
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}

	v := *b

	return &v
}
