package smartemailing

import (
	"context"
	"fmt"

	"github.com/lemonade-framework/smartemailing-go/internal/crypto"
)

// DebugReport describes the client configuration and the outcome of a live
// ping and credential check. It never contains the token.
type DebugReport struct {
	ClientType string         `json:"clientType"`
	APIType    string         `json:"apiType"`
	BaseURL    string         `json:"baseUrl"`
	Auth       DebugAuth      `json:"auth"`
	Ping       map[string]any `json:"ping"`
	AccountID  map[string]any `json:"accountId"`
}

// DebugAuth reports which credentials are configured.
type DebugAuth struct {
	HasUser          bool   `json:"hasUser"`
	HasToken         bool   `json:"hasToken"`
	User             string `json:"user"`
	TokenFingerprint string `json:"tokenFingerprint"`
}

// Debug collects a DebugReport. It makes two requests.
func (c *Client) Debug(ctx context.Context) DebugReport {
	credentials := c.apiClient.Credentials()

	return DebugReport{
		ClientType: fmt.Sprintf("%T", c),
		APIType:    fmt.Sprintf("%T", c.apiClient),
		BaseURL:    c.apiClient.BaseURL(),
		Auth: DebugAuth{
			HasUser:          credentials.HasUser(),
			HasToken:         credentials.HasToken(),
			User:             credentials.User(),
			TokenFingerprint: crypto.Fingerprint(credentials.Token()),
		},
		Ping:      c.Ping(ctx).ToMap(),
		AccountID: c.AccountID(ctx).ToMap(),
	}
}
