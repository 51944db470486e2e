// Package format turns classified API results into typed records.
//
// Every function here is pure: input is the decoded JSON (objects as
// map[string]any, arrays as []any, numbers as json.Number) and nothing is
// fetched or mutated.
package format

import (
	"strconv"
	"strings"
)

// DefaultLanguage is assumed for contacts without a language.
const DefaultLanguage = "cs_CZ"

const statusOK = "ok"

// Ping reports whether the ping result carries status "ok".
func Ping(raw map[string]any) bool {
	return isOK(raw)
}

// CheckLogin reports whether the credential check carries status "ok".
func CheckLogin(raw map[string]any) bool {
	return isOK(raw)
}

// DeleteContact reports whether the forget request carries status "ok".
func DeleteContact(raw map[string]any) bool {
	return isOK(raw)
}

func isOK(raw map[string]any) bool {
	v, ok := raw["status"]
	return ok && toString(v) == statusOK
}

// AccountID returns the account id of a credential check, or "0" when the
// service did not report one.
func AccountID(raw map[string]any) string {
	return stringOr(raw, "0", "account_id")
}

// Contacts converts raw contact items. Items without an id are dropped and
// ids are unique in the result: a repeated id replaces the earlier record in
// its original position.
func Contacts(items []any) []Contact {
	out := make([]Contact, 0, len(items))
	index := make(map[string]int, len(items))

	for _, item := range items {
		obj, ok := object(item)
		if !ok {
			continue
		}
		c := contact(obj)
		if c.ID == "" {
			continue
		}
		if pos, seen := index[c.ID]; seen {
			out[pos] = c
			continue
		}
		index[c.ID] = len(out)
		out = append(out, c)
	}
	return out
}

// ContactDetail converts the data of a single-contact result. Data may be the
// contact object or an array holding it; anything else yields an empty slice.
func ContactDetail(data any) []Contact {
	switch t := data.(type) {
	case map[string]any:
		return Contacts([]any{t})
	case []any:
		return Contacts(t)
	default:
		return []Contact{}
	}
}

func contact(item map[string]any) Contact {
	c := Contact{
		ID:           stringOr(item, "", "id"),
		GUID:         stringOr(item, "", "guid"),
		Email:        stringOr(item, "", "emailaddress"),
		Name:         stringOr(item, "", "name"),
		Surname:      stringOr(item, "", "surname"),
		Created:      stringOr(item, "", "created", "created_at"),
		Language:     stringOr(item, DefaultLanguage, "language"),
		Meta:         contactMeta(item),
		Fields:       fields(item),
		ContactLists: []ContactListEntry{},
	}

	if v, ok := first(item, "is_confirmed", "confirmed"); ok {
		c.Confirmed = toBool(v)
	}

	if lists, ok := item["contactlists"].([]any); ok {
		c.ListCount = len(lists)
		c.ContactLists = contactListEntries(lists)
	}

	if eng, ok := object(item["engagement"]); ok {
		c.Engagement = &ContactEngagement{
			Level:              optString(eng, "level"),
			Score:              optInt(eng, "score"),
			CalculatedAt:       optString(eng, "calculated_at"),
			DaysSinceLastEmail: optInt(eng, "number_of_days_since_last_email"),
		}
	}

	if metrics, ok := object(item["metrics"]); ok {
		if email, ok := object(metrics["email"]); ok {
			c.Metrics = &ContactMetrics{Email: EmailMetrics{
				LastSentAt:       optString(email, "last_email_sent_at"),
				LastOpenedAt:     optString(email, "last_opened_at"),
				LastClickedAt:    optString(email, "last_clicked_at"),
				Hardbounced:      optBool(email, "is_hardbounced"),
				SoftbouncesInRow: optInt(email, "softbounces_in_row"),
			}}
		}
	}

	return c
}

func contactMeta(item map[string]any) ContactMeta {
	meta := ContactMeta{
		UID:       optString(item, "uid"),
		Version:   optInt(item, "version"),
		CreatedAt: optString(item, "created_at"),
		UpdatedAt: optString(item, "updated_at"),
		Origin:    optString(item, "origin"),
	}
	if meta.UpdatedAt == nil {
		meta.UpdatedAt = optString(item, "last_updated_at")
	}
	return meta
}

func fields(item map[string]any) map[string]any {
	if v, ok := first(item, "fields", "customfields"); ok {
		if out := freeForm(v); out != nil {
			return out
		}
	}
	return map[string]any{}
}

func contactListEntries(lists []any) []ContactListEntry {
	out := make([]ContactListEntry, 0, len(lists))
	for _, item := range lists {
		obj, ok := object(item)
		if !ok {
			continue
		}
		var listID int
		if v, ok := first(obj, "contactlist_id", "id"); ok {
			listID = toInt(v)
		}
		out = append(out, ContactListEntry{
			ListID:  listID,
			Status:  stringOr(obj, "", "status"),
			Added:   optString(obj, "added"),
			Updated: optString(obj, "updated"),
		})
	}
	return out
}

// Lists converts raw contact list items. Items whose id is not positive are
// dropped; ids are unique in the result with the same replacement rule as
// Contacts.
func Lists(items []any) []List {
	out := make([]List, 0, len(items))
	index := make(map[int]int, len(items))

	for _, item := range items {
		obj, ok := object(item)
		if !ok {
			continue
		}
		l := list(obj)
		if l.ID <= 0 {
			continue
		}
		if pos, seen := index[l.ID]; seen {
			out[pos] = l
			continue
		}
		index[l.ID] = len(out)
		out = append(out, l)
	}
	return out
}

func list(item map[string]any) List {
	l := List{
		ID:             toInt(item["id"]),
		Name:           stringOr(item, "", "name"),
		Created:        stringOr(item, "", "created"),
		ActiveContacts: toInt(item["activeContacts"]),
		SenderName:     stringOr(item, "", "sendername"),
		SenderEmail:    stringOr(item, "", "senderemail"),
		ReplyTo:        stringOr(item, "", "replyto"),
		Meta: ListMeta{
			GUID:          optString(item, "guid"),
			Version:       optInt(item, "version"),
			PublicName:    optString(item, "publicname"),
			Notes:         optString(item, "notes"),
			AlertIn:       optInt(item, "alertIn"),
			AlertOut:      optInt(item, "alertOut"),
			Category:      optString(item, "category"),
			Signature:     optString(item, "signature"),
			SegmentID:     optString(item, "segment_id"),
			Hidden:        optBool(item, "hidden"),
			TotalContacts: toInt(item["totalContacts"]),
			Protected:     optBool(item, "protected"),
		},
	}

	if data, ok := object(item["data"]); ok {
		l.Meta.Data = data
	}

	if v, ok := first(item, "notification_emailadresses", "notificationEmails"); ok {
		l.Meta.NotificationEmails = stringList(v)
	}
	if l.Meta.NotificationEmails == nil {
		l.Meta.NotificationEmails = []string{}
	}

	return l
}

// stringList accepts a JSON array or a comma separated string.
func stringList(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := toString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(t, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// ListID is the set of key types accepted by CheckListID.
type ListID interface {
	int | int64 | string
}

// CheckListID reports whether a list with the given id is among items.
// Integer keys compare numerically; string keys compare against the decimal
// form of each list id.
func CheckListID[T ListID](id T, items []any) bool {
	var matches func(List) bool
	switch key := any(id).(type) {
	case int:
		matches = func(l List) bool { return l.ID == key }
	case int64:
		matches = func(l List) bool { return int64(l.ID) == key }
	case string:
		matches = func(l List) bool { return strconv.Itoa(l.ID) == key }
	}

	for _, l := range Lists(items) {
		if matches(l) {
			return true
		}
	}
	return false
}

// ImportedContact is one complete entry of an import's contacts_map.
type ImportedContact struct {
	ContactID string
	Email     string
}

// ImportEntries returns the complete entries of an import's contacts_map in
// reply order. Entries missing either value are skipped.
func ImportEntries(contactsMap []any) []ImportedContact {
	out := make([]ImportedContact, 0, len(contactsMap))
	for _, item := range contactsMap {
		obj, ok := object(item)
		if !ok {
			continue
		}
		id := stringOr(obj, "", "contact_id")
		email := stringOr(obj, "", "emailaddress")
		if id == "" || email == "" {
			continue
		}
		out = append(out, ImportedContact{ContactID: id, Email: email})
	}
	return out
}

// ImportMap maps contact ids to email addresses from an import's
// contacts_map. Entries missing either value are skipped.
func ImportMap(contactsMap []any) map[string]string {
	entries := ImportEntries(contactsMap)
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		out[e.ContactID] = e.Email
	}
	return out
}
