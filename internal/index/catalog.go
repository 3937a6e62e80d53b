package index

import "concierge/internal/domain"

// Catalog maps domain names to their built indexes. Domains whose corpus
// was empty at startup have no entry and are therefore not queryable.
type Catalog struct {
	indexes map[domain.Domain]*Index
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{indexes: make(map[domain.Domain]*Index)}
}

// Add registers a built index under its domain.
func (c *Catalog) Add(ix *Index) {
	c.indexes[ix.Domain()] = ix
}

// Get returns the index for a domain, or false when the domain was never
// built.
func (c *Catalog) Get(d domain.Domain) (*Index, bool) {
	ix, ok := c.indexes[d]
	return ix, ok
}

// Len returns the number of queryable domains.
func (c *Catalog) Len() int { return len(c.indexes) }
