package api

import (
	"context"
	"strconv"
)

// Ping checks that the service is reachable.
func (c *Client) Ping(ctx context.Context) (Reply, error) {
	return c.Call(ctx, EndpointPing, "", nil)
}

// CheckCredentials validates the credentials and reports the account id.
func (c *Client) CheckCredentials(ctx context.Context) (Reply, error) {
	return c.Call(ctx, EndpointCheckCredentials, "", nil)
}

// Contactlists lists all contact lists.
func (c *Client) Contactlists(ctx context.Context) (Reply, error) {
	return c.Call(ctx, EndpointContactlists, "", nil)
}

// ContactlistContacts lists the contacts of one list.
func (c *Client) ContactlistContacts(ctx context.Context, listID int) (Reply, error) {
	return c.Call(ctx, EndpointContactlistContacts, strconv.Itoa(listID), nil)
}

// AddToContactlist adds a contact to a list as confirmed.
func (c *Client) AddToContactlist(ctx context.Context, contactID, listID int) (Reply, error) {
	return c.Call(ctx, EndpointAddToContactlist, "", NewAddToListPayload(contactID, listID))
}

// Contacts lists contacts.
func (c *Client) Contacts(ctx context.Context) (Reply, error) {
	return c.Call(ctx, EndpointContacts, "", nil)
}

// ContactDetail fetches one contact.
func (c *Client) ContactDetail(ctx context.Context, contactID int) (Reply, error) {
	return c.Call(ctx, EndpointContactDetail, strconv.Itoa(contactID), nil)
}

// ForgetContact deletes a contact and all its data.
func (c *Client) ForgetContact(ctx context.Context, contactID int) (Reply, error) {
	return c.Call(ctx, EndpointContactForget, strconv.Itoa(contactID), nil)
}

// Import creates or updates contacts.
func (c *Client) Import(ctx context.Context, payload ImportPayload) (Reply, error) {
	return c.Call(ctx, EndpointImport, "", payload)
}

// UpsertTags creates or updates a contact with the given tags.
func (c *Client) UpsertTags(ctx context.Context, payload TagPayload) (Reply, error) {
	return c.Call(ctx, EndpointUpsertContact, "", payload)
}
