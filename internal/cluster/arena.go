// Package cluster groups addresses by common-input ownership. Change-score
// candidates are attached to clusters as a labeled side-set and never merged;
// auto-merging heuristic guesses would silently corrupt membership.
package cluster

// Arena is a union-find over interned addresses: integer ids into parent and
// rank slices, path compression on find, union by rank. An Arena is a value
// scoped to one run, never shared process state.
type Arena struct {
	ids    map[string]int
	addrs  []string
	parent []int
	rank   []int
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{ids: make(map[string]int)}
}

// Touch interns an address, creating its singleton set if new.
func (a *Arena) Touch(addr string) {
	a.intern(addr)
}

// Union merges the sets containing x and y, interning both as needed.
func (a *Arena) Union(x, y string) {
	rx := a.find(a.intern(x))
	ry := a.find(a.intern(y))
	if rx == ry {
		return
	}
	if a.rank[rx] < a.rank[ry] {
		rx, ry = ry, rx
	}
	a.parent[ry] = rx
	if a.rank[rx] == a.rank[ry] {
		a.rank[rx]++
	}
}

// Find returns the representative address of addr's set. The second return
// is false when addr was never interned.
func (a *Arena) Find(addr string) (string, bool) {
	id, ok := a.ids[addr]
	if !ok {
		return "", false
	}
	return a.addrs[a.find(id)], true
}

// Groups returns every set keyed by its representative address, members in
// interning order.
func (a *Arena) Groups() map[string][]string {
	groups := make(map[string][]string)
	for id, addr := range a.addrs {
		root := a.addrs[a.find(id)]
		groups[root] = append(groups[root], addr)
	}
	return groups
}

// Len reports how many addresses the arena has interned.
func (a *Arena) Len() int {
	return len(a.addrs)
}

func (a *Arena) intern(addr string) int {
	if id, ok := a.ids[addr]; ok {
		return id
	}
	id := len(a.addrs)
	a.ids[addr] = id
	a.addrs = append(a.addrs, addr)
	a.parent = append(a.parent, id)
	a.rank = append(a.rank, 0)
	return id
}

func (a *Arena) find(id int) int {
	for a.parent[id] != id {
		a.parent[id] = a.parent[a.parent[id]]
		id = a.parent[id]
	}
	return id
}
