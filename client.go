package smartemailing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/lemonade-framework/smartemailing-go/internal/api"
	"github.com/lemonade-framework/smartemailing-go/internal/format"
)

// Messages of failed responses that carry no service message.
const (
	msgLoginFailed  = "login check failed"
	msgPingFailed   = "ping test failed"
	msgRemoveFailed = "contact could not be removed"
)

// Client is the SmartEmailing client. It holds no mutable state and is safe
// for concurrent use.
type Client struct {
	apiClient *api.Client
	logger    *zap.Logger
}

// buildAPIClient creates and configures an API client from the given config.
func buildAPIClient(credentials api.Credentials, cfg *clientConfig) (*api.Client, error) {
	apiOpts := []api.Option{
		api.WithBaseURL(cfg.baseURL),
		api.WithVerifyPeer(cfg.verifyPeer),
	}
	if cfg.timeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(cfg.timeout))
	}
	if cfg.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(cfg.httpClient))
	}

	return api.New(credentials, apiOpts...)
}

// New creates a new SmartEmailing client for the given API user and token.
// No request is made; use CheckLogin to verify the credentials.
func New(user, token string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		baseURL: defaultBaseURL,
		timeout: defaultTimeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	apiClient, err := buildAPIClient(api.NewCredentials(user, token), cfg)
	if err != nil {
		return nil, err
	}

	logger.Debug("client created",
		zap.String("base_url", apiClient.BaseURL()),
		zap.Object("credentials", apiClient.Credentials()),
	)

	return &Client{
		apiClient: apiClient,
		logger:    logger,
	}, nil
}

// Schema returns the endpoint constants whose name contains prefix. An empty
// prefix returns all of them.
func Schema(prefix string) map[string]string {
	return api.Schema(prefix)
}

// CheckLogin verifies the credentials.
func (c *Client) CheckLogin(ctx context.Context) (resp *Response) {
	const op = "check login"
	defer c.recoverResponse(op, &resp)

	raw, err := c.call(ctx, c.apiClient.CheckCredentials)
	if err != nil {
		return c.fail(op, err)
	}
	if !format.CheckLogin(raw) {
		return c.fail(op, errors.New(msgLoginFailed))
	}
	return c.succeed(op, true)
}

// Ping checks that the service is reachable.
func (c *Client) Ping(ctx context.Context) (resp *Response) {
	const op = "ping"
	defer c.recoverResponse(op, &resp)

	raw, err := c.call(ctx, c.apiClient.Ping)
	if err != nil {
		return c.fail(op, err)
	}
	if !format.Ping(raw) {
		return c.fail(op, errors.New(msgPingFailed))
	}
	return c.succeed(op, true)
}

// AccountID returns the account id of the credentials as a string. It is "0"
// when the service does not report one.
func (c *Client) AccountID(ctx context.Context) (resp *Response) {
	const op = "account id"
	defer c.recoverResponse(op, &resp)

	raw, err := c.call(ctx, c.apiClient.CheckCredentials)
	if err != nil {
		return c.fail(op, err)
	}
	return c.succeed(op, format.AccountID(raw))
}

// CheckListID succeeds when a list with the given id exists.
func (c *Client) CheckListID(ctx context.Context, listID int) *Response {
	return checkListID(ctx, c, listID)
}

// CheckListIDString succeeds when a list whose decimal id equals listID
// exists.
func (c *Client) CheckListIDString(ctx context.Context, listID string) *Response {
	return checkListID(ctx, c, listID)
}

func checkListID[T format.ListID](ctx context.Context, c *Client, listID T) (resp *Response) {
	const op = "check list id"
	defer c.recoverResponse(op, &resp)

	raw, err := c.call(ctx, c.apiClient.Contactlists)
	if err != nil {
		return c.fail(op, err)
	}
	if !format.CheckListID(listID, raw.Data()) {
		return c.fail(op, &listNotFoundError{id: fmt.Sprint(listID)})
	}
	return c.succeed(op, true)
}

// Lists returns all contact lists of the account.
func (c *Client) Lists(ctx context.Context) (lists *ListCollection, err error) {
	const op = "lists"
	defer c.recoverError(op, &err)

	raw, err := c.call(ctx, c.apiClient.Contactlists)
	if err != nil {
		c.logFailure(op, err)
		return nil, err
	}

	lists = NewListCollection(format.Lists(raw.Data()))
	c.logSuccess(op, zap.Int("count", lists.Len()))
	return lists, nil
}

// Contacts returns the contacts of the account.
func (c *Client) Contacts(ctx context.Context) (contacts *ContactCollection, err error) {
	const op = "contacts"
	defer c.recoverError(op, &err)

	raw, err := c.call(ctx, c.apiClient.Contacts)
	if err != nil {
		c.logFailure(op, err)
		return nil, err
	}

	contacts = NewContactCollection(format.Contacts(raw.Data()))
	c.logSuccess(op, zap.Int("count", contacts.Len()))
	return contacts, nil
}

// ContactsByList returns the contacts of one list.
func (c *Client) ContactsByList(ctx context.Context, listID int) (contacts *ContactCollection, err error) {
	const op = "contacts by list"
	defer c.recoverError(op, &err)

	raw, err := c.call(ctx, func(ctx context.Context) (api.Reply, error) {
		return c.apiClient.ContactlistContacts(ctx, listID)
	})
	if err != nil {
		c.logFailure(op, err, zap.Int("list_id", listID))
		return nil, err
	}

	contacts = NewContactCollection(format.Contacts(raw.Data()))
	c.logSuccess(op, zap.Int("list_id", listID), zap.Int("count", contacts.Len()))
	return contacts, nil
}

// ContactDetail returns a collection holding the contact with the given id,
// or an empty collection when the service returned no contact.
func (c *Client) ContactDetail(ctx context.Context, contactID int) (contacts *ContactCollection, err error) {
	const op = "contact detail"
	defer c.recoverError(op, &err)

	raw, err := c.call(ctx, func(ctx context.Context) (api.Reply, error) {
		return c.apiClient.ContactDetail(ctx, contactID)
	})
	if err != nil {
		c.logFailure(op, err, zap.Int("contact_id", contactID))
		return nil, err
	}

	contacts = NewContactCollection(format.ContactDetail(raw["data"]))
	c.logSuccess(op, zap.Int("contact_id", contactID), zap.Int("count", contacts.Len()))
	return contacts, nil
}

// ImportContact creates or updates the contact with the given email, confirms
// it in listID and returns the stored Contact.
func (c *Client) ImportContact(ctx context.Context, email string, listID int, fields ContactFields) (resp *Response) {
	const op = "import contact"
	defer c.recoverResponse(op, &resp)

	payload, err := api.NewImportPayload(email, listID, fields)
	if err != nil {
		return c.fail(op, err)
	}

	raw, err := c.call(ctx, func(ctx context.Context) (api.Reply, error) {
		return c.apiClient.Import(ctx, payload)
	})
	if err != nil {
		return c.fail(op, err)
	}

	contactID, err := importedContactID(raw, email)
	if err != nil {
		return c.fail(op, &ShapeError{Op: op, Err: err})
	}

	contact, err := c.loadContact(ctx, contactID)
	if err != nil {
		return c.fail(op, err)
	}
	return c.succeed(op, contact)
}

// UpdateContact rewrites the non-empty fields of an existing contact and
// returns a ContactUpdate.
func (c *Client) UpdateContact(ctx context.Context, contactID int, fields ContactFields) (resp *Response) {
	const op = "update contact"
	defer c.recoverResponse(op, &resp)

	contact, err := c.loadContact(ctx, contactID)
	if err != nil {
		return c.fail(op, err)
	}
	if contact.Email == "" {
		return c.fail(op, &ShapeError{Op: op, Err: ErrContactWithoutEmail})
	}

	payload, err := api.NewUpdatePayload(contact.Email, fields)
	if err != nil {
		return c.fail(op, err)
	}

	raw, err := c.call(ctx, func(ctx context.Context) (api.Reply, error) {
		return c.apiClient.Import(ctx, payload)
	})
	if err != nil {
		return c.fail(op, err)
	}
	if _, err := importedContactID(raw, contact.Email); err != nil {
		return c.fail(op, &ShapeError{Op: op, Err: err})
	}

	return c.succeed(op, ContactUpdate{
		ContactID: contactID,
		Email:     contact.Email,
		Fields:    fields,
	})
}

// RemoveFromList forgets the contact. The service has no way to leave a
// single list, so the contact is removed from the whole account.
func (c *Client) RemoveFromList(ctx context.Context, contactID int) (resp *Response) {
	const op = "remove from list"
	defer c.recoverResponse(op, &resp)

	raw, err := c.call(ctx, func(ctx context.Context) (api.Reply, error) {
		return c.apiClient.ForgetContact(ctx, contactID)
	})
	if err != nil {
		return c.fail(op, err)
	}
	if !format.DeleteContact(raw) {
		return c.fail(op, errors.New(msgRemoveFailed))
	}
	return c.succeed(op, true)
}

// AddToList confirms an existing contact in a list. The payload is the
// service's reply.
func (c *Client) AddToList(ctx context.Context, contactID, listID int) (resp *Response) {
	const op = "add to list"
	defer c.recoverResponse(op, &resp)

	raw, err := c.call(ctx, func(ctx context.Context) (api.Reply, error) {
		return c.apiClient.AddToContactlist(ctx, contactID, listID)
	})
	if err != nil {
		return c.fail(op, err)
	}
	return c.succeed(op, map[string]any(raw))
}

// AddTagsToContact adds tags to the contact with the given email, creating
// the contact when it does not exist. Duplicate tags are sent once.
func (c *Client) AddTagsToContact(ctx context.Context, email string, tags []string) (resp *Response) {
	const op = "add tags"
	defer c.recoverResponse(op, &resp)

	payload, err := api.NewTagPayload(email, tags)
	if err != nil {
		return c.fail(op, err)
	}

	raw, err := c.call(ctx, func(ctx context.Context) (api.Reply, error) {
		return c.apiClient.UpsertTags(ctx, payload)
	})
	if err != nil {
		return c.fail(op, err)
	}

	contactID := taggedContactID(raw)
	if contactID == "" {
		return c.fail(op, &ShapeError{Op: op, Err: ErrNoContactID})
	}

	names := make([]string, len(payload.Tags))
	for i, tag := range payload.Tags {
		names[i] = tag.Name
	}
	return c.succeed(op, TagResult{ContactID: contactID, Tags: names})
}

// loadContact fetches the detail of one contact.
func (c *Client) loadContact(ctx context.Context, contactID int) (Contact, error) {
	raw, err := c.call(ctx, func(ctx context.Context) (api.Reply, error) {
		return c.apiClient.ContactDetail(ctx, contactID)
	})
	if err != nil {
		return Contact{}, err
	}

	contacts := format.ContactDetail(raw["data"])
	if len(contacts) == 0 {
		return Contact{}, &ShapeError{
			Op:  "load contact",
			Err: fmt.Errorf("%w: %d", ErrContactNotFound, contactID),
		}
	}
	return contacts[0], nil
}

// call runs one request and turns a classified failure into a *ServiceError.
func (c *Client) call(ctx context.Context, request func(context.Context) (api.Reply, error)) (api.Result, error) {
	reply, err := request(ctx)
	if err != nil {
		return nil, err
	}
	if reply.IsError() {
		return nil, &ServiceError{Message: reply.Message()}
	}
	return reply.Result, nil
}

// importedContactID picks the id of email from an import reply. An exact
// address match wins over a case-insensitive one; without either the first
// reported contact is used. Ties go to the earlier entry.
func importedContactID(raw api.Result, email string) (int, error) {
	entries := raw.Items("contacts_map")

	var folded string
	for _, e := range format.ImportEntries(entries) {
		if e.Email == email {
			return parseContactID(e.ContactID)
		}
		if folded == "" && strings.EqualFold(e.Email, email) {
			folded = e.ContactID
		}
	}
	if folded != "" {
		return parseContactID(folded)
	}

	if len(entries) > 0 {
		if entry, ok := entries[0].(map[string]any); ok {
			if v := entry["contact_id"]; v != nil {
				return parseContactID(fmt.Sprint(v))
			}
		}
	}
	return 0, ErrNoContactID
}

func parseContactID(id string) (int, error) {
	n, err := strconv.Atoi(id)
	if err != nil || n <= 0 {
		return 0, ErrNoContactID
	}
	return n, nil
}

// taggedContactID returns data[0].id of a tag upsert reply, or "".
func taggedContactID(raw api.Result) string {
	data := raw.Data()
	if len(data) == 0 {
		return ""
	}
	entry, ok := data[0].(map[string]any)
	if !ok || entry["id"] == nil {
		return ""
	}
	return fmt.Sprint(entry["id"])
}

type listNotFoundError struct {
	id string
}

func (e *listNotFoundError) Error() string {
	return fmt.Sprintf("list with ID %q does not exist", e.id)
}

func (e *listNotFoundError) Is(target error) bool {
	return target == ErrListNotFound
}

func (c *Client) succeed(op string, data any) *Response {
	c.logSuccess(op)
	return OK(data)
}

func (c *Client) fail(op string, err error) *Response {
	c.logFailure(op, err)
	return failWith(err)
}

func (c *Client) logSuccess(op string, fields ...zap.Field) {
	c.logger.Debug("operation succeeded", append([]zap.Field{zap.String("op", op)}, fields...)...)
}

func (c *Client) logFailure(op string, err error, fields ...zap.Field) {
	c.logger.Warn("operation failed", append([]zap.Field{zap.String("op", op), zap.Error(err)}, fields...)...)
}

// recoverResponse converts a panic of the calling operation into a failed
// Response.
func (c *Client) recoverResponse(op string, resp **Response) {
	if r := recover(); r != nil {
		c.logger.Error("operation panicked", zap.String("op", op), zap.Any("panic", r))
		*resp = failWith(&PanicError{Op: op, Value: r})
	}
}

// recoverError converts a panic of the calling operation into an error.
func (c *Client) recoverError(op string, err *error) {
	if r := recover(); r != nil {
		c.logger.Error("operation panicked", zap.String("op", op), zap.Any("panic", r))
		*err = &PanicError{Op: op, Value: r}
	}
}
