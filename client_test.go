package smartemailing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const contactJSON = `{
	"id": 12,
	"guid": "c-12",
	"emailaddress": "jan@example.com",
	"name": "Jan",
	"surname": "Novak",
	"language": "cs_CZ",
	"is_confirmed": true,
	"contactlists": [{"contactlist_id": 7, "status": "confirmed"}]
}`

func TestNew_RequiresCredentials(t *testing.T) {
	tests := []struct {
		name  string
		user  string
		token string
	}{
		{"empty user", "", "token"},
		{"empty token", "user", ""},
		{"both empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.user, tt.token)
			if !errors.Is(err, ErrMissingCredentials) {
				t.Errorf("New() error = %v, want ErrMissingCredentials", err)
			}
		})
	}
}

func TestNew_MakesNoRequest(t *testing.T) {
	t.Parallel()
	fs := newFakeService(t, nil)
	fs.client()

	if got := len(fs.recorded()); got != 0 {
		t.Errorf("requests after New() = %d, want 0", got)
	}
}

func TestPing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		reply       reply
		wantSuccess bool
		wantMessage string
	}{
		{"ok", reply{body: `{"status":"ok","message":"Hi there! API version 3 here."}`}, true, ""},
		{"status not ok", reply{body: `{"status":"error"}`}, false, msgPingFailed},
		{"empty body", reply{status: http.StatusNoContent}, true, ""},
		{"unauthorized", reply{status: http.StatusUnauthorized, body: `{"message":"Invalid credentials"}`}, false, "Invalid credentials"},
		{"server error", reply{status: http.StatusInternalServerError, body: `oops`}, false, "Unknown error"},
		{"redirect", reply{status: http.StatusNotModified}, false, "Unknown success status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fs := newFakeService(t, map[string]reply{"GET /api/v3/ping": tt.reply})

			resp := fs.client().Ping(context.Background())

			if resp.IsSuccess() != tt.wantSuccess {
				t.Errorf("IsSuccess() = %v, want %v (message %q)", resp.IsSuccess(), tt.wantSuccess, resp.Message())
			}
			if resp.Message() != tt.wantMessage {
				t.Errorf("Message() = %q, want %q", resp.Message(), tt.wantMessage)
			}
		})
	}
}

func TestPing_ServiceErrorIsTyped(t *testing.T) {
	t.Parallel()
	fs := newFakeService(t, map[string]reply{
		"GET /api/v3/ping": {status: http.StatusUnauthorized, body: `{"message":"Invalid credentials"}`},
	})

	resp := fs.client().Ping(context.Background())

	var svcErr *ServiceError
	if !errors.As(resp.Err(), &svcErr) {
		t.Fatalf("Err() = %v, want *ServiceError", resp.Err())
	}
	if svcErr.Message != "Invalid credentials" {
		t.Errorf("ServiceError.Message = %q", svcErr.Message)
	}
}

func TestPing_TransportError(t *testing.T) {
	t.Parallel()
	fs := newFakeService(t, nil)
	client := fs.client()
	fs.server.Close()

	resp := client.Ping(context.Background())

	if resp.IsSuccess() {
		t.Fatal("IsSuccess() = true, want false")
	}
	if !errors.Is(resp.Err(), ErrTransport) {
		t.Errorf("Err() = %v, want ErrTransport", resp.Err())
	}
	if resp.Message() == "" {
		t.Error("Message() is empty")
	}
}

func TestRequestsUseBasicAuth(t *testing.T) {
	t.Parallel()
	fs := newFakeService(t, map[string]reply{"GET /api/v3/ping": {body: `{"status":"ok"}`}})

	fs.client().Ping(context.Background())

	reqs := fs.recorded()
	if len(reqs) != 1 {
		t.Fatalf("requests = %d, want 1", len(reqs))
	}
	if reqs[0].user != "api-user" || reqs[0].token != "api-token" {
		t.Errorf("basic auth = %q/%q, want api-user/api-token", reqs[0].user, reqs[0].token)
	}
}

func TestCheckLogin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		reply       reply
		wantSuccess bool
		wantMessage string
	}{
		{"ok", reply{body: `{"status":"ok","account_id":1234}`}, true, ""},
		{"not ok", reply{body: `{"status":"error"}`}, false, msgLoginFailed},
		{"invalid credentials", reply{status: http.StatusUnauthorized, body: `{"status":"error","message":"Invalid credentials"}`}, false, "Invalid credentials"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fs := newFakeService(t, map[string]reply{"GET /api/v3/check-credentials": tt.reply})

			resp := fs.client().CheckLogin(context.Background())

			if resp.IsSuccess() != tt.wantSuccess {
				t.Errorf("IsSuccess() = %v, want %v", resp.IsSuccess(), tt.wantSuccess)
			}
			if resp.Message() != tt.wantMessage {
				t.Errorf("Message() = %q, want %q", resp.Message(), tt.wantMessage)
			}
		})
	}
}

func TestAccountID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"numeric", `{"status":"ok","account_id":1234}`, "1234"},
		{"missing", `{"status":"ok"}`, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fs := newFakeService(t, map[string]reply{"GET /api/v3/check-credentials": {body: tt.body}})

			resp := fs.client().AccountID(context.Background())

			got, ok := DataAs[string](resp)
			if !ok || got != tt.want {
				t.Errorf("AccountID() data = %v, want %q", resp.Data(), tt.want)
			}
		})
	}
}

const listsJSON = `{"status":"ok","data":[
	{"id": 7, "name": "Newsletter", "activeContacts": 120},
	{"id": "12", "name": "Customers"},
	{"id": 0, "name": "Broken"}
]}`

func TestCheckListID(t *testing.T) {
	t.Parallel()
	fs := newFakeService(t, map[string]reply{"GET /api/v3/contactlists": {body: listsJSON}})
	client := fs.client()
	ctx := context.Background()

	if resp := client.CheckListID(ctx, 7); !resp.IsSuccess() {
		t.Errorf("CheckListID(7) failed: %s", resp.Message())
	}
	if resp := client.CheckListIDString(ctx, "12"); !resp.IsSuccess() {
		t.Errorf(`CheckListIDString("12") failed: %s`, resp.Message())
	}

	resp := client.CheckListID(ctx, 99)
	if resp.IsSuccess() {
		t.Fatal("CheckListID(99) succeeded")
	}
	if want := `list with ID "99" does not exist`; resp.Message() != want {
		t.Errorf("Message() = %q, want %q", resp.Message(), want)
	}
	if !errors.Is(resp.Err(), ErrListNotFound) {
		t.Errorf("Err() = %v, want ErrListNotFound", resp.Err())
	}

	if resp := client.CheckListIDString(ctx, "0"); resp.IsSuccess() {
		t.Error(`CheckListIDString("0") succeeded for a dropped list`)
	}
}

func TestLists(t *testing.T) {
	t.Parallel()
	fs := newFakeService(t, map[string]reply{"GET /api/v3/contactlists": {body: listsJSON}})

	lists, err := fs.client().Lists(context.Background())
	if err != nil {
		t.Fatalf("Lists() error = %v", err)
	}

	if diff := cmp.Diff([]int{7, 12}, lists.IDs()); diff != "" {
		t.Errorf("IDs() mismatch (-want +got):\n%s", diff)
	}
	l, ok := lists.Find(7)
	if !ok || l.Name != "Newsletter" || l.ActiveContacts != 120 {
		t.Errorf("Find(7) = %+v, %v", l, ok)
	}
}

func TestLists_ServiceError(t *testing.T) {
	t.Parallel()
	fs := newFakeService(t, map[string]reply{
		"GET /api/v3/contactlists": {status: http.StatusUnauthorized, body: `{"message":"Invalid credentials"}`},
	})

	lists, err := fs.client().Lists(context.Background())

	if lists != nil {
		t.Errorf("Lists() = %v, want nil", lists)
	}
	if !errors.Is(err, ErrService) {
		t.Errorf("Lists() error = %v, want ErrService", err)
	}
	if ErrorMessage(err) != "Invalid credentials" {
		t.Errorf("ErrorMessage() = %q", ErrorMessage(err))
	}
}

func TestLists_SuccessBodyWithMessage(t *testing.T) {
	t.Parallel()
	fs := newFakeService(t, map[string]reply{
		"GET /api/v3/contactlists": {body: `{"message":"Listing","data":[{"id":3,"name":"Leads"}]}`},
	})

	lists, err := fs.client().Lists(context.Background())
	if err != nil {
		t.Fatalf("Lists() error = %v", err)
	}
	if diff := cmp.Diff([]int{3}, lists.IDs()); diff != "" {
		t.Errorf("IDs() mismatch (-want +got):\n%s", diff)
	}
}

func TestContacts(t *testing.T) {
	t.Parallel()
	fs := newFakeService(t, map[string]reply{
		"GET /api/v3/contacts": {body: `{"status":"ok","data":[` + contactJSON + `,
			{"id": 13, "emailaddress": "EVA@example.com"},
			{"emailaddress": "noid@example.com"}
		]}`},
	})

	contacts, err := fs.client().Contacts(context.Background())
	if err != nil {
		t.Fatalf("Contacts() error = %v", err)
	}

	if diff := cmp.Diff([]string{"12", "13"}, contacts.IDs()); diff != "" {
		t.Errorf("IDs() mismatch (-want +got):\n%s", diff)
	}
	c, ok := contacts.FindByEmail("eva@EXAMPLE.com")
	if !ok || c.ID != "13" {
		t.Errorf("FindByEmail() = %+v, %v", c, ok)
	}
}

func TestContactsByList(t *testing.T) {
	t.Parallel()
	fs := newFakeService(t, map[string]reply{
		"GET /api/v3/contactlists/7/contacts": {body: `{"status":"ok","data":[` + contactJSON + `]}`},
	})

	contacts, err := fs.client().ContactsByList(context.Background(), 7)
	if err != nil {
		t.Fatalf("ContactsByList() error = %v", err)
	}
	first, ok := contacts.First()
	if !ok || first.Email != "jan@example.com" || first.ListCount != 1 {
		t.Errorf("First() = %+v, %v", first, ok)
	}
}

func TestContactDetail(t *testing.T) {
	t.Parallel()
	fs := newFakeService(t, map[string]reply{
		"GET /api/v3/contacts/12": {body: `{"status":"ok","data":` + contactJSON + `}`},
	})
	client := fs.client()

	contacts, err := client.ContactDetail(context.Background(), 12)
	if err != nil {
		t.Fatalf("ContactDetail() error = %v", err)
	}
	c, ok := contacts.Get("12")
	if !ok || c.FullName() != "Jan Novak" || !c.Confirmed {
		t.Errorf("Get(12) = %+v, %v", c, ok)
	}

	_, err = client.ContactDetail(context.Background(), 99)
	if !errors.Is(err, ErrService) {
		t.Errorf("ContactDetail(99) error = %v, want ErrService", err)
	}
}

func TestImportContact(t *testing.T) {
	t.Parallel()
	fs := newFakeService(t, map[string]reply{
		"POST /api/v3/import":     {status: http.StatusCreated, body: `{"status":"created","contacts_map":[{"emailaddress":"jan@example.com","contact_id":12}]}`},
		"GET /api/v3/contacts/12": {body: `{"status":"ok","data":` + contactJSON + `}`},
	})

	resp := fs.client().ImportContact(context.Background(), "jan@example.com", 7, ContactFields{Name: "Jan"})
	if !resp.IsSuccess() {
		t.Fatalf("ImportContact() failed: %s", resp.Message())
	}

	contact, ok := DataAs[Contact](resp)
	if !ok || contact.ID != "12" || contact.Email != "jan@example.com" {
		t.Errorf("Data() = %+v", resp.Data())
	}

	reqs := fs.recorded()
	if len(reqs) != 2 {
		t.Fatalf("requests = %d, want 2", len(reqs))
	}
	want := `{"data":[{"emailaddress":"jan@example.com","name":"Jan","language":"cs_CZ","contactlists":[{"id":7,"status":"confirmed"}]}]}`
	if reqs[0].body != want {
		t.Errorf("import body = %s, want %s", reqs[0].body, want)
	}
	if reqs[1].method != http.MethodGet || reqs[1].path != "/api/v3/contacts/12" {
		t.Errorf("second request = %s %s", reqs[1].method, reqs[1].path)
	}
}

func TestImportContact_PicksMatchingEmail(t *testing.T) {
	t.Parallel()
	fs := newFakeService(t, map[string]reply{
		"POST /api/v3/import": {body: `{"status":"created","contacts_map":[
			{"emailaddress":"other@example.com","contact_id":5},
			{"emailaddress":"JAN@example.com","contact_id":12}
		]}`},
		"GET /api/v3/contacts/12": {body: `{"status":"ok","data":` + contactJSON + `}`},
	})

	resp := fs.client().ImportContact(context.Background(), "jan@example.com", 7, ContactFields{})
	if !resp.IsSuccess() {
		t.Fatalf("ImportContact() failed: %s", resp.Message())
	}
}

func TestImportContact_PrefersExactEmailMatch(t *testing.T) {
	t.Parallel()
	fs := newFakeService(t, map[string]reply{
		"POST /api/v3/import": {body: `{"status":"created","contacts_map":[
			{"emailaddress":"JAN@example.com","contact_id":5},
			{"emailaddress":"jan@example.com","contact_id":12}
		]}`},
		"GET /api/v3/contacts/5":  {body: `{"status":"ok","data":{"id":5,"emailaddress":"JAN@example.com"}}`},
		"GET /api/v3/contacts/12": {body: `{"status":"ok","data":` + contactJSON + `}`},
	})
	client := fs.client()

	for i := 0; i < 20; i++ {
		resp := client.ImportContact(context.Background(), "jan@example.com", 7, ContactFields{})
		contact, ok := DataAs[Contact](resp)
		if !ok || contact.ID != "12" {
			t.Fatalf("run %d: ImportContact() = %+v (%s), want contact 12", i, resp.Data(), resp.Message())
		}
	}
}

func TestImportContact_CaseInsensitiveMatchTakesFirst(t *testing.T) {
	t.Parallel()
	fs := newFakeService(t, map[string]reply{
		"POST /api/v3/import": {body: `{"status":"created","contacts_map":[
			{"emailaddress":"other@example.com","contact_id":3},
			{"emailaddress":"JAN@example.com","contact_id":12},
			{"emailaddress":"Jan@Example.com","contact_id":5}
		]}`},
		"GET /api/v3/contacts/12": {body: `{"status":"ok","data":` + contactJSON + `}`},
	})
	client := fs.client()

	for i := 0; i < 20; i++ {
		resp := client.ImportContact(context.Background(), "jan@example.com", 7, ContactFields{})
		contact, ok := DataAs[Contact](resp)
		if !ok || contact.ID != "12" {
			t.Fatalf("run %d: ImportContact() = %+v (%s), want contact 12", i, resp.Data(), resp.Message())
		}
	}
}

func TestImportContact_NoContactID(t *testing.T) {
	t.Parallel()
	fs := newFakeService(t, map[string]reply{
		"POST /api/v3/import": {body: `{"status":"created","contacts_map":[]}`},
	})

	resp := fs.client().ImportContact(context.Background(), "jan@example.com", 7, ContactFields{})

	if resp.IsSuccess() {
		t.Fatal("ImportContact() succeeded")
	}
	if resp.Message() != "no contact_id returned" {
		t.Errorf("Message() = %q", resp.Message())
	}
	if !errors.Is(resp.Err(), ErrNoContactID) {
		t.Errorf("Err() = %v, want ErrNoContactID", resp.Err())
	}
	if got := len(fs.recorded()); got != 1 {
		t.Errorf("requests = %d, want 1", got)
	}
}

func TestImportContact_DetailMissing(t *testing.T) {
	t.Parallel()
	fs := newFakeService(t, map[string]reply{
		"POST /api/v3/import":     {body: `{"status":"created","contacts_map":[{"emailaddress":"jan@example.com","contact_id":12}]}`},
		"GET /api/v3/contacts/12": {body: `{"status":"ok","data":[]}`},
	})

	resp := fs.client().ImportContact(context.Background(), "jan@example.com", 7, ContactFields{})

	if !errors.Is(resp.Err(), ErrContactNotFound) {
		t.Errorf("Err() = %v, want ErrContactNotFound", resp.Err())
	}
}

func TestImportContact_EmptyEmail(t *testing.T) {
	t.Parallel()
	fs := newFakeService(t, nil)

	resp := fs.client().ImportContact(context.Background(), "", 7, ContactFields{})

	if !errors.Is(resp.Err(), ErrEmptyEmail) {
		t.Errorf("Err() = %v, want ErrEmptyEmail", resp.Err())
	}
	if got := len(fs.recorded()); got != 0 {
		t.Errorf("requests = %d, want 0", got)
	}
}

func TestUpdateContact(t *testing.T) {
	t.Parallel()
	fs := newFakeService(t, map[string]reply{
		"GET /api/v3/contacts/12": {body: `{"status":"ok","data":` + contactJSON + `}`},
		"POST /api/v3/import":     {body: `{"status":"created","contacts_map":[{"emailaddress":"jan@example.com","contact_id":12}]}`},
	})

	fields := ContactFields{Name: "Honza"}
	resp := fs.client().UpdateContact(context.Background(), 12, fields)
	if !resp.IsSuccess() {
		t.Fatalf("UpdateContact() failed: %s", resp.Message())
	}

	want := ContactUpdate{ContactID: 12, Email: "jan@example.com", Fields: fields}
	if diff := cmp.Diff(want, resp.Data()); diff != "" {
		t.Errorf("Data() mismatch (-want +got):\n%s", diff)
	}

	reqs := fs.recorded()
	if len(reqs) != 2 {
		t.Fatalf("requests = %d, want 2", len(reqs))
	}
	if body := `{"data":[{"emailaddress":"jan@example.com","name":"Honza"}]}`; reqs[1].body != body {
		t.Errorf("import body = %s, want %s", reqs[1].body, body)
	}
}

func TestUpdateContact_WithoutEmail(t *testing.T) {
	t.Parallel()
	fs := newFakeService(t, map[string]reply{
		"GET /api/v3/contacts/12": {body: `{"status":"ok","data":{"id":12}}`},
	})

	resp := fs.client().UpdateContact(context.Background(), 12, ContactFields{Name: "Honza"})

	if !errors.Is(resp.Err(), ErrContactWithoutEmail) {
		t.Errorf("Err() = %v, want ErrContactWithoutEmail", resp.Err())
	}
	if got := len(fs.recorded()); got != 1 {
		t.Errorf("requests = %d, want 1", got)
	}
}

func TestUpdateContact_ServiceMessage(t *testing.T) {
	t.Parallel()
	fs := newFakeService(t, map[string]reply{
		"GET /api/v3/contacts/12": {body: `{"status":"ok","data":` + contactJSON + `}`},
		"POST /api/v3/import":     {status: http.StatusUnprocessableEntity, body: `{"status":"error","message":"Invalid language"}`},
	})

	resp := fs.client().UpdateContact(context.Background(), 12, ContactFields{Language: "xx"})

	if resp.Message() != "Invalid language" {
		t.Errorf("Message() = %q, want Invalid language", resp.Message())
	}
}

func TestRemoveFromList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		reply       reply
		wantSuccess bool
		wantMessage string
	}{
		{"ok", reply{body: `{"status":"ok"}`}, true, ""},
		{"not ok", reply{body: `{"status":"error"}`}, false, msgRemoveFailed},
		{"not found", reply{status: http.StatusNotFound, body: `{"message":"Contact not found"}`}, false, "Contact not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fs := newFakeService(t, map[string]reply{"DELETE /api/v3/contacts/forget/12": tt.reply})

			resp := fs.client().RemoveFromList(context.Background(), 12)

			if resp.IsSuccess() != tt.wantSuccess {
				t.Errorf("IsSuccess() = %v, want %v", resp.IsSuccess(), tt.wantSuccess)
			}
			if resp.Message() != tt.wantMessage {
				t.Errorf("Message() = %q, want %q", resp.Message(), tt.wantMessage)
			}
		})
	}
}

func TestAddToList(t *testing.T) {
	t.Parallel()
	fs := newFakeService(t, map[string]reply{"POST /api/v3/contactlists": {body: `{"status":"ok","data":[]}`}})

	resp := fs.client().AddToList(context.Background(), 12, 7)
	if !resp.IsSuccess() {
		t.Fatalf("AddToList() failed: %s", resp.Message())
	}

	var body map[string]any
	if err := json.Unmarshal([]byte(fs.recorded()[0].body), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	want := map[string]any{"contact_id": float64(12), "contactlist_id": float64(7), "status": "confirmed"}
	if diff := cmp.Diff(want, body); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestAddTagsToContact(t *testing.T) {
	t.Parallel()
	fs := newFakeService(t, map[string]reply{"POST /api/v3/contacts": {body: `{"status":"ok","data":[{"id":12}]}`}})

	resp := fs.client().AddTagsToContact(context.Background(), "jan@example.com", []string{"vip", "newsletter", "vip"})
	if !resp.IsSuccess() {
		t.Fatalf("AddTagsToContact() failed: %s", resp.Message())
	}

	want := TagResult{ContactID: "12", Tags: []string{"vip", "newsletter"}}
	if diff := cmp.Diff(want, resp.Data()); diff != "" {
		t.Errorf("Data() mismatch (-want +got):\n%s", diff)
	}
	if body := `{"emailaddress":"jan@example.com","tags":[{"name":"vip"},{"name":"newsletter"}]}`; fs.recorded()[0].body != body {
		t.Errorf("body = %s, want %s", fs.recorded()[0].body, body)
	}
}

func TestAddTagsToContact_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		email   string
		tags    []string
		wantErr error
	}{
		{"empty email", "", []string{"vip"}, ErrEmptyEmail},
		{"empty tags", "x@y.com", []string{}, ErrEmptyTags},
		{"nil tags", "x@y.com", nil, ErrEmptyTags},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fs := newFakeService(t, nil)

			resp := fs.client().AddTagsToContact(context.Background(), tt.email, tt.tags)

			if !errors.Is(resp.Err(), tt.wantErr) {
				t.Errorf("Err() = %v, want %v", resp.Err(), tt.wantErr)
			}
			if !errors.Is(resp.Err(), ErrValidation) {
				t.Errorf("Err() = %v, want ErrValidation", resp.Err())
			}
			if got := len(fs.recorded()); got != 0 {
				t.Errorf("requests = %d, want 0", got)
			}
		})
	}
}

func TestAddTagsToContact_NoContactID(t *testing.T) {
	t.Parallel()
	fs := newFakeService(t, map[string]reply{"POST /api/v3/contacts": {body: `{"status":"ok","data":[]}`}})

	resp := fs.client().AddTagsToContact(context.Background(), "jan@example.com", []string{"vip"})

	if resp.Message() != "no contact_id returned" {
		t.Errorf("Message() = %q", resp.Message())
	}
}

func TestOperations_RecoverPanics(t *testing.T) {
	t.Parallel()
	client, err := New("api-user", "api-token", WithHTTPClient(&http.Client{Transport: panickingTransport{}}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	responses := map[string]*Response{
		"ping":        client.Ping(ctx),
		"check login": client.CheckLogin(ctx),
		"import":      client.ImportContact(ctx, "jan@example.com", 7, ContactFields{}),
		"tags":        client.AddTagsToContact(ctx, "jan@example.com", []string{"vip"}),
		"remove":      client.RemoveFromList(ctx, 12),
	}
	for name, resp := range responses {
		if !errors.Is(resp.Err(), ErrPanic) {
			t.Errorf("%s: Err() = %v, want ErrPanic", name, resp.Err())
		}
		if !strings.Contains(resp.Message(), "transport exploded") {
			t.Errorf("%s: Message() = %q", name, resp.Message())
		}
	}

	if _, err := client.Lists(ctx); !errors.Is(err, ErrPanic) {
		t.Errorf("Lists() error = %v, want ErrPanic", err)
	}
}

func TestLogging(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.DebugLevel)
	fs := newFakeService(t, map[string]reply{
		"GET /api/v3/ping":              {body: `{"status":"ok"}`},
		"GET /api/v3/check-credentials": {status: http.StatusUnauthorized, body: `{"message":"Invalid credentials"}`},
	})
	client := fs.client(WithLogger(zap.New(core)))

	client.Ping(context.Background())
	client.CheckLogin(context.Background())

	if n := logs.FilterMessage("operation succeeded").FilterField(zap.String("op", "ping")).Len(); n != 1 {
		t.Errorf("ping success entries = %d, want 1", n)
	}
	failed := logs.FilterMessage("operation failed").All()
	if len(failed) != 1 || failed[0].Level != zapcore.WarnLevel {
		t.Fatalf("failure entries = %v, want one warn entry", failed)
	}

	for _, entry := range logs.All() {
		for k, v := range entry.ContextMap() {
			if strings.Contains(fmtValue(v), "api-token") {
				t.Errorf("log field %q leaks the token: %v", k, v)
			}
		}
	}
}

func fmtValue(v any) string {
	data, _ := json.Marshal(v)
	return string(data)
}

func TestSchema(t *testing.T) {
	actions := Schema("ACTION")
	if actions["ACTION_IMPORT"] != "import" {
		t.Errorf(`Schema("ACTION")["ACTION_IMPORT"] = %q, want import`, actions["ACTION_IMPORT"])
	}
	for name := range actions {
		if !strings.Contains(name, "ACTION") {
			t.Errorf("Schema(ACTION) returned %s", name)
		}
	}
	if len(Schema("")) <= len(actions) {
		t.Error(`Schema("") should return every constant`)
	}
}
