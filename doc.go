// Package smartemailing provides a Go client for the SmartEmailing v3 REST API.
//
// The client authenticates with an API user and token, calls a fixed set of
// endpoints and turns the service's loosely typed JSON into stable records:
// contacts, contact lists and diagnostics.
//
// Basic usage:
//
//	client, err := smartemailing.New("api-user", "api-token")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Verify the credentials
//	if resp := client.CheckLogin(ctx); resp.HasError() {
//	    log.Fatal(resp.Message())
//	}
//
//	// Import a contact into list 7
//	resp := client.ImportContact(ctx, "jan@example.com", 7, smartemailing.ContactFields{
//	    Name: "Jan",
//	})
//	if contact, ok := smartemailing.DataAs[smartemailing.Contact](resp); ok {
//	    fmt.Println("imported", contact.ID)
//	}
//
// Operations that act on the account return a *Response carrying either a
// payload or a failure message. Queries return collections and an error.
// Neither kind panics: a panic inside an operation is recovered and reported
// as a *PanicError.
package smartemailing
