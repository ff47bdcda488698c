package model

// Access is a user's access tier. Tiers form a total order
// (basic < power < admin) and are only ever compared by rank, so a tier
// added between existing ones does not disturb any call site.
type Access string

const (
	AccessBasic Access = "basic"
	AccessPower Access = "power"
	AccessAdmin Access = "admin"
)

var accessRank = map[Access]int{
	AccessBasic: 1,
	AccessPower: 2,
	AccessAdmin: 3,
}

// AtLeast reports whether a ranks at or above required. An unknown tier
// ranks below every known one.
func (a Access) AtLeast(required Access) bool {
	return accessRank[a] >= accessRank[required]
}

// Valid reports whether a is a known tier.
func (a Access) Valid() bool {
	_, ok := accessRank[a]
	return ok
}
