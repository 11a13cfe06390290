package client

import (
	"sort"
	"sync"

	"github.com/vlebourl/custom-biketrax/pkg/models"
)

// cache is the authoritative in-memory view of the account. Four independent
// mappings share the device identifier space; every entry is an immutable
// snapshot replaced wholesale, so readers never observe a half-written record.
// Only the account and its stream supervisor write.
type cache struct {
	mu            sync.RWMutex
	devices       map[int]*models.Device
	positions     map[int]*models.Position
	trips         map[int]*models.Trip
	subscriptions map[string]*models.Subscription
}

func newCache() *cache {
	return &cache{
		devices:       make(map[int]*models.Device),
		positions:     make(map[int]*models.Position),
		trips:         make(map[int]*models.Trip),
		subscriptions: make(map[string]*models.Subscription),
	}
}

func (c *cache) device(id int) (*models.Device, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	d, ok := c.devices[id]

	return d, ok
}

func (c *cache) position(deviceID int) (*models.Position, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.positions[deviceID]

	return p, ok
}

func (c *cache) trip(deviceID int) (*models.Trip, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.trips[deviceID]

	return t, ok
}

func (c *cache) subscription(uniqueID string) (*models.Subscription, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.subscriptions[uniqueID]

	return s, ok
}

func (c *cache) deviceIDs() []int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]int, 0, len(c.devices))
	for id := range c.devices {
		ids = append(ids, id)
	}

	sort.Ints(ids)

	return ids
}

func (c *cache) setDevice(d *models.Device) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.devices[d.ID] = d
}

func (c *cache) setPosition(p *models.Position) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.positions[p.DeviceID] = p
}

func (c *cache) setTrip(t *models.Trip) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.trips[t.DeviceID] = t
}

func (c *cache) setSubscription(s *models.Subscription) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.subscriptions[s.UniqueID] = s
}

// replaceDevices swaps in the authoritative device set and drops every record
// belonging to a device no longer present upstream. Returns the removed ids.
func (c *cache) replaceDevices(next map[int]*models.Device) []int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var removed []int

	for id, old := range c.devices {
		if _, ok := next[id]; ok {
			continue
		}

		removed = append(removed, id)

		delete(c.positions, id)
		delete(c.trips, id)
		delete(c.subscriptions, old.UniqueID)
	}

	c.devices = next

	sort.Ints(removed)

	return removed
}
