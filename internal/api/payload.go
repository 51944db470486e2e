package api

import "github.com/lemonade-framework/smartemailing-go/internal/apierrors"

// DefaultLanguage is the contact language used when none is given on import.
const DefaultLanguage = "cs_CZ"

// StatusConfirmed is the list membership status assigned on import.
const StatusConfirmed = "confirmed"

// ContactFields holds the editable contact attributes.
type ContactFields struct {
	Name     string
	Surname  string
	Language string
}

// ContactlistAssignment places an imported contact in a list.
type ContactlistAssignment struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
}

// ImportContact is one contact of an import request.
type ImportContact struct {
	EmailAddress string                  `json:"emailaddress"`
	Name         string                  `json:"name,omitempty"`
	Surname      string                  `json:"surname,omitempty"`
	Language     string                  `json:"language,omitempty"`
	Contactlists []ContactlistAssignment `json:"contactlists,omitempty"`
}

// ImportPayload is the POST /import request body.
type ImportPayload struct {
	Data []ImportContact `json:"data"`
}

// Tag is one entry of a tag upsert.
type Tag struct {
	Name string `json:"name"`
}

// TagPayload is the POST /contacts request body used to upsert tags.
type TagPayload struct {
	EmailAddress string `json:"emailaddress"`
	Tags         []Tag  `json:"tags"`
}

// AddToListPayload is the POST /contactlists request body.
type AddToListPayload struct {
	ContactID     int    `json:"contact_id"`
	ContactlistID int    `json:"contactlist_id"`
	Status        string `json:"status"`
}

// NewImportPayload builds an import of a single contact confirmed in listID.
func NewImportPayload(email string, listID int, fields ContactFields) (ImportPayload, error) {
	if email == "" {
		return ImportPayload{}, &apierrors.ValidationError{Errors: []error{apierrors.ErrEmptyEmail}}
	}

	language := fields.Language
	if language == "" {
		language = DefaultLanguage
	}

	return ImportPayload{
		Data: []ImportContact{{
			EmailAddress: email,
			Name:         fields.Name,
			Surname:      fields.Surname,
			Language:     language,
			Contactlists: []ContactlistAssignment{{
				ID:     listID,
				Status: StatusConfirmed,
			}},
		}},
	}, nil
}

// NewUpdatePayload builds an import that only rewrites the given fields of an
// existing contact. Empty fields are left out.
func NewUpdatePayload(email string, fields ContactFields) (ImportPayload, error) {
	if email == "" {
		return ImportPayload{}, &apierrors.ValidationError{Errors: []error{apierrors.ErrEmptyEmail}}
	}

	return ImportPayload{
		Data: []ImportContact{{
			EmailAddress: email,
			Name:         fields.Name,
			Surname:      fields.Surname,
			Language:     fields.Language,
		}},
	}, nil
}

// NewTagPayload builds a tag upsert. Duplicate tags are dropped keeping the
// first occurrence.
func NewTagPayload(email string, tags []string) (TagPayload, error) {
	var errs []error
	if email == "" {
		errs = append(errs, apierrors.ErrEmptyEmail)
	}
	if len(tags) == 0 {
		errs = append(errs, apierrors.ErrEmptyTags)
	}
	if len(errs) > 0 {
		return TagPayload{}, &apierrors.ValidationError{Errors: errs}
	}

	return TagPayload{
		EmailAddress: email,
		Tags:         toTags(UniqueTags(tags)),
	}, nil
}

// UniqueTags removes duplicates keeping the first occurrence of each tag.
func UniqueTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func toTags(names []string) []Tag {
	tags := make([]Tag, len(names))
	for i, name := range names {
		tags[i] = Tag{Name: name}
	}
	return tags
}

// NewAddToListPayload builds a confirmed list membership request.
func NewAddToListPayload(contactID, listID int) AddToListPayload {
	return AddToListPayload{
		ContactID:     contactID,
		ContactlistID: listID,
		Status:        StatusConfirmed,
	}
}
