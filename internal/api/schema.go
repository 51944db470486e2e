package api

import (
	"net/http"
	"net/url"
	"strings"
)

// Service location.
const (
	DefaultBaseURL = "https://app.smartemailing.cz"
	Version        = "api/v3"
)

// Logical actions. An action is the path fragment below the version prefix.
const (
	ActionPing             = "ping"
	ActionCheckCredentials = "check-credentials"
	ActionContactlists     = "contactlists"
	ActionContactForget    = "contacts/forget"
	ActionContacts         = "contacts"
	ActionImport           = "import"
)

// Contact list membership filters.
const (
	ListAll          = "contacts"
	ListConfirmed    = "confirmed"
	ListUnsubscribed = "unsubscribed"
)

// Endpoint binds one HTTP verb to one path template. A template may contain a
// single {id} placeholder.
type Endpoint struct {
	Name   string
	Method string
	Path   string
}

// The fixed endpoint table.
var (
	EndpointPing                = Endpoint{"ping", http.MethodGet, ActionPing}
	EndpointCheckCredentials    = Endpoint{"check-credentials", http.MethodGet, ActionCheckCredentials}
	EndpointContactlists        = Endpoint{"contactlists.list", http.MethodGet, ActionContactlists}
	EndpointAddToContactlist    = Endpoint{"contactlists.add", http.MethodPost, ActionContactlists}
	EndpointContactlistContacts = Endpoint{"contactlists.contacts", http.MethodGet, ActionContactlists + "/{id}/contacts"}
	EndpointContacts            = Endpoint{"contacts.list", http.MethodGet, ActionContacts}
	EndpointUpsertContact       = Endpoint{"contacts.upsert", http.MethodPost, ActionContacts}
	EndpointContactDetail       = Endpoint{"contacts.get", http.MethodGet, ActionContacts + "/{id}"}
	EndpointContactUpdate       = Endpoint{"contacts.update", http.MethodPut, ActionContacts + "/{id}"}
	EndpointContactForget       = Endpoint{"contacts.forget", http.MethodDelete, ActionContactForget + "/{id}"}
	EndpointImport              = Endpoint{"import", http.MethodPost, ActionImport}
)

// Endpoints lists every endpoint in registry order.
func Endpoints() []Endpoint {
	return []Endpoint{
		EndpointPing,
		EndpointCheckCredentials,
		EndpointContactlists,
		EndpointAddToContactlist,
		EndpointContactlistContacts,
		EndpointContacts,
		EndpointUpsertContact,
		EndpointContactDetail,
		EndpointContactUpdate,
		EndpointContactForget,
		EndpointImport,
	}
}

// Action expands the path template. The id is path-escaped; templates without
// a placeholder ignore it.
func (e Endpoint) Action(id string) string {
	if !strings.Contains(e.Path, "{id}") {
		return e.Path
	}
	return strings.Replace(e.Path, "{id}", url.PathEscape(id), 1)
}

// ResolvePath returns the request path "api/v3/<action>".
func ResolvePath(action string) string {
	return Version + "/" + action
}

var schema = map[string]string{
	"APP_BASE_URI":             DefaultBaseURL,
	"APP_VERSION":              Version,
	"ACTION_PING":              ActionPing,
	"ACTION_CHECK_CREDENTIALS": ActionCheckCredentials,
	"ACTION_CONTACTLISTS":      ActionContactlists,
	"ACTION_CONTACT_FORGET":    ActionContactForget,
	"ACTION_CONTACTS":          ActionContacts,
	"ACTION_IMPORT":            ActionImport,
	"METHOD_GET":               http.MethodGet,
	"METHOD_POST":              http.MethodPost,
	"METHOD_PUT":               http.MethodPut,
	"METHOD_DELETE":            http.MethodDelete,
	"LIST_ALL":                 ListAll,
	"LIST_CONFIRMED":           ListConfirmed,
	"LIST_UNSUBSCRIBED":        ListUnsubscribed,
}

// Schema returns the named constants whose name contains prefix. An empty
// prefix returns all of them. The returned map is a copy.
func Schema(prefix string) map[string]string {
	out := make(map[string]string, len(schema))
	for name, value := range schema {
		if prefix == "" || strings.Contains(name, prefix) {
			out[name] = value
		}
	}
	return out
}
