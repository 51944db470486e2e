package api

import (
	"encoding/json"
	"fmt"
)

// Messages of the synthetic error results.
const (
	MessageError          = "Error"
	MessageUnknownError   = "Unknown error"
	MessageUnknownSuccess = "Unknown success status"
)

// StatusOK is the status value the service reports on success. It is also the
// synthetic status of an empty success body.
const StatusOK = "ok"

// Result is the normalized body of one dispatched request. It is either the
// decoded JSON object of a success response, {status: "ok"} for an empty
// success body, or {message, data: []} for a classified failure.
type Result map[string]any

// Reply is the outcome of one dispatched request: the normalized body and
// whether the status code classified it as a failure. Its Result is never nil
// when Dispatch returns without error.
type Reply struct {
	Result
	failed bool
}

// IsError reports whether the status code classified the request as failed.
// The body is not consulted, so a success body carrying a message is still a
// success.
func (r Reply) IsError() bool {
	return r.failed
}

func okReply(body Result) Reply {
	return Reply{Result: body}
}

func statusOKReply() Reply {
	return okReply(Result{"status": StatusOK})
}

func errorReply(message string) Reply {
	return Reply{Result: Result{"message": message, "data": []any{}}, failed: true}
}

// Status returns the "status" field as a string.
func (r Result) Status() string {
	v, ok := r["status"]
	if !ok {
		return ""
	}
	return stringify(v)
}

// Message returns the "message" field as a string.
func (r Result) Message() string {
	v, ok := r["message"]
	if !ok {
		return ""
	}
	return stringify(v)
}

// Items returns the array stored under key, or nil.
func (r Result) Items(key string) []any {
	items, _ := r[key].([]any)
	return items
}

// Data returns the "data" array, or nil when data is absent or an object.
func (r Result) Data() []any {
	return r.Items("data")
}

// Object returns the object stored under key, or nil.
func (r Result) Object(key string) map[string]any {
	obj, _ := r[key].(map[string]any)
	return obj
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "1"
		}
		return ""
	default:
		return fmt.Sprint(t)
	}
}
