package catalog

import "sort"

// PoolType classifies a facility as an indoor or outdoor pool.
type PoolType string

const (
	TypeIndoor  PoolType = "indoor"
	TypeOutdoor PoolType = "outdoor"
)

// Pool describes one tracked swimming facility.
type Pool struct {
	ID   string   `json:"pool_id"`
	Name string   `json:"pool_name"`
	Type PoolType `json:"type"`
}

// pools maps upstream facility codes to their display data. The feed reports
// more facilities than we track; only ids present here are ingested.
var pools = map[string]Pool{
	"SSD-1":  {ID: "SSD-1", Name: "Hallenbad Oerlikon", Type: TypeIndoor},
	"SSD-2":  {ID: "SSD-2", Name: "Hallenbad Bungertwies", Type: TypeIndoor},
	"SSD-3":  {ID: "SSD-3", Name: "Hallenbad Leimbach", Type: TypeIndoor},
	"SSD-4":  {ID: "SSD-4", Name: "Hallenbad City", Type: TypeIndoor},
	"SSD-5":  {ID: "SSD-5", Name: "Freibad Letzigraben", Type: TypeOutdoor},
	"SSD-7":  {ID: "SSD-7", Name: "Freibad Allenmoos", Type: TypeOutdoor},
	"SSD-8":  {ID: "SSD-8", Name: "Freibad Seebach", Type: TypeOutdoor},
	"SSD-11": {ID: "SSD-11", Name: "Flussbad Unterer Letten", Type: TypeOutdoor},
	"SSD-12": {ID: "SSD-12", Name: "Flussbad Oberer Letten", Type: TypeOutdoor},
	"SSD-16": {ID: "SSD-16", Name: "Strandbad Mythenquai", Type: TypeOutdoor},
	"SSD-17": {ID: "SSD-17", Name: "Strandbad Tiefenbrunnen", Type: TypeOutdoor},
}

// Lookup returns the pool for the given facility code, if tracked.
func Lookup(id string) (Pool, bool) {
	p, ok := pools[id]
	return p, ok
}

// All returns every tracked pool, sorted by display name.
func All() []Pool {
	out := make([]Pool, 0, len(pools))
	for _, p := range pools {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
