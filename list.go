package smartemailing

import (
	"strconv"

	"github.com/lemonade-framework/smartemailing-go/internal/format"
)

// List is a SmartEmailing contact list.
type List = format.List

// ListMeta holds the less frequently used list attributes.
type ListMeta = format.ListMeta

// ListCollection is an ordered, read-only set of contact lists keyed by id.
type ListCollection struct {
	lists []List
	byID  map[int]int
}

// NewListCollection builds a collection from records in order. Records whose
// id is not positive are skipped; a repeated id replaces the earlier record in
// its original position.
func NewListCollection(records []List) *ListCollection {
	c := &ListCollection{
		lists: make([]List, 0, len(records)),
		byID:  make(map[int]int, len(records)),
	}

	for _, rec := range records {
		if rec.ID <= 0 {
			continue
		}
		if pos, seen := c.byID[rec.ID]; seen {
			c.lists[pos] = rec
			continue
		}
		c.byID[rec.ID] = len(c.lists)
		c.lists = append(c.lists, rec)
	}

	return c
}

// Find returns the list with the given id.
func (c *ListCollection) Find(id int) (List, bool) {
	pos, ok := c.byID[id]
	if !ok {
		return List{}, false
	}
	return c.lists[pos], true
}

// FindString returns the list whose decimal id equals id exactly, so "07"
// does not match list 7.
func (c *ListCollection) FindString(id string) (List, bool) {
	n, err := strconv.Atoi(id)
	if err != nil || strconv.Itoa(n) != id {
		return List{}, false
	}
	return c.Find(n)
}

// First returns the earliest list.
func (c *ListCollection) First() (List, bool) {
	if len(c.lists) == 0 {
		return List{}, false
	}
	return c.lists[0], true
}

// All returns the lists in order. The returned slice is a copy.
func (c *ListCollection) All() []List {
	out := make([]List, len(c.lists))
	copy(out, c.lists)
	return out
}

// IDs returns the list ids in order.
func (c *ListCollection) IDs() []int {
	ids := make([]int, len(c.lists))
	for i, rec := range c.lists {
		ids[i] = rec.ID
	}
	return ids
}

// Len returns the number of lists.
func (c *ListCollection) Len() int {
	return len(c.lists)
}
