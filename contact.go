package smartemailing

import (
	"strings"

	"github.com/lemonade-framework/smartemailing-go/internal/api"
	"github.com/lemonade-framework/smartemailing-go/internal/format"
)

// Contact is a SmartEmailing contact.
type Contact = format.Contact

// ContactMeta holds bookkeeping attributes of a contact.
type ContactMeta = format.ContactMeta

// ContactEngagement is the engagement score block of a contact.
type ContactEngagement = format.ContactEngagement

// ContactMetrics groups per-channel delivery metrics.
type ContactMetrics = format.ContactMetrics

// EmailMetrics are the email delivery metrics of a contact.
type EmailMetrics = format.EmailMetrics

// ContactListEntry is a contact's membership in one list.
type ContactListEntry = format.ContactListEntry

// ContactFields holds the editable contact attributes. Empty values are not
// sent.
type ContactFields = api.ContactFields

// DefaultLanguage is assumed for contacts imported without a language.
const DefaultLanguage = format.DefaultLanguage

// ContactUpdate is the payload of a successful UpdateContact.
type ContactUpdate struct {
	ContactID int           `json:"contactId"`
	Email     string        `json:"email"`
	Fields    ContactFields `json:"fields"`
}

// TagResult is the payload of a successful AddTagsToContact.
type TagResult struct {
	ContactID string   `json:"contactId"`
	Tags      []string `json:"tags"`
}

// ContactCollection is an ordered, read-only set of contacts keyed by id.
type ContactCollection struct {
	contacts []Contact
	byID     map[string]int
	byEmail  map[string]int
}

// NewContactCollection builds a collection from records in order. Records
// without an id are skipped; a repeated id replaces the earlier record in its
// original position.
func NewContactCollection(records []Contact) *ContactCollection {
	c := &ContactCollection{
		contacts: make([]Contact, 0, len(records)),
		byID:     make(map[string]int, len(records)),
		byEmail:  make(map[string]int, len(records)),
	}

	for _, rec := range records {
		if rec.ID == "" {
			continue
		}
		if pos, seen := c.byID[rec.ID]; seen {
			c.contacts[pos] = rec
			continue
		}
		c.byID[rec.ID] = len(c.contacts)
		c.contacts = append(c.contacts, rec)
	}

	for i, rec := range c.contacts {
		if rec.Email == "" {
			continue
		}
		key := strings.ToLower(rec.Email)
		if _, seen := c.byEmail[key]; !seen {
			c.byEmail[key] = i
		}
	}

	return c
}

// Get returns the contact with the given id.
func (c *ContactCollection) Get(id string) (Contact, bool) {
	pos, ok := c.byID[id]
	if !ok {
		return Contact{}, false
	}
	return c.contacts[pos], true
}

// FindByEmail returns the first contact whose email matches, ignoring case.
func (c *ContactCollection) FindByEmail(email string) (Contact, bool) {
	pos, ok := c.byEmail[strings.ToLower(email)]
	if !ok {
		return Contact{}, false
	}
	return c.contacts[pos], true
}

// First returns the earliest contact.
func (c *ContactCollection) First() (Contact, bool) {
	if len(c.contacts) == 0 {
		return Contact{}, false
	}
	return c.contacts[0], true
}

// All returns the contacts in order. The returned slice is a copy.
func (c *ContactCollection) All() []Contact {
	out := make([]Contact, len(c.contacts))
	copy(out, c.contacts)
	return out
}

// IDs returns the contact ids in order.
func (c *ContactCollection) IDs() []string {
	ids := make([]string, len(c.contacts))
	for i, rec := range c.contacts {
		ids[i] = rec.ID
	}
	return ids
}

// Len returns the number of contacts.
func (c *ContactCollection) Len() int {
	return len(c.contacts)
}
