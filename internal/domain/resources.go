package domain

// ResourceBundle holds the soft-currency counters of a player or a cost/reward.
type ResourceBundle struct {
	Leaves  int64 `json:"leaves"`
	Dew     int64 `json:"dew"`
	Berries int64 `json:"berries"`
}

// Get returns the component named by key, zero for unknown keys
func (b ResourceBundle) Get(key string) int64 {
	switch key {
	case ResourceLeaves:
		return b.Leaves
	case ResourceDew:
		return b.Dew
	case ResourceBerries:
		return b.Berries
	default:
		return 0
	}
}

// With returns a copy of b with the named component replaced
func (b ResourceBundle) With(key string, value int64) ResourceBundle {
	switch key {
	case ResourceLeaves:
		b.Leaves = value
	case ResourceDew:
		b.Dew = value
	case ResourceBerries:
		b.Berries = value
	}
	return b
}

// Add returns the component-wise sum
func (b ResourceBundle) Add(o ResourceBundle) ResourceBundle {
	return ResourceBundle{
		Leaves:  b.Leaves + o.Leaves,
		Dew:     b.Dew + o.Dew,
		Berries: b.Berries + o.Berries,
	}
}

// Sub returns the component-wise difference
func (b ResourceBundle) Sub(o ResourceBundle) ResourceBundle {
	return ResourceBundle{
		Leaves:  b.Leaves - o.Leaves,
		Dew:     b.Dew - o.Dew,
		Berries: b.Berries - o.Berries,
	}
}

// Scale multiplies every component by n
func (b ResourceBundle) Scale(n int64) ResourceBundle {
	return ResourceBundle{
		Leaves:  b.Leaves * n,
		Dew:     b.Dew * n,
		Berries: b.Berries * n,
	}
}

// IsZero reports whether every component is zero
func (b ResourceBundle) IsZero() bool {
	return b.Leaves == 0 && b.Dew == 0 && b.Berries == 0
}

// Shortfall returns the first component (in ResourceOrder) where b cannot cover cost.
func (b ResourceBundle) Shortfall(cost ResourceBundle) (string, bool) {
	for _, key := range ResourceOrder {
		if b.Get(key) < cost.Get(key) {
			return key, true
		}
	}
	return "", false
}
