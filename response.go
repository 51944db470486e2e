package smartemailing

import (
	"encoding/json"
	"errors"

	"go.uber.org/zap/zapcore"
)

// Response is the result of an operation: a success with an optional payload
// or a failure with a message.
type Response struct {
	success bool
	data    any
	message string
	err     error
}

// OK returns a successful Response carrying data.
func OK(data any) *Response {
	return &Response{success: true, data: data}
}

// Fail returns a failed Response with the given message.
func Fail(message string) *Response {
	return &Response{message: message, err: errors.New(message)}
}

// failWith returns a failed Response whose message is derived from err.
func failWith(err error) *Response {
	return &Response{message: ErrorMessage(err), err: err}
}

// IsSuccess reports whether the operation succeeded.
func (r *Response) IsSuccess() bool {
	return r.success
}

// HasError reports whether the operation failed.
func (r *Response) HasError() bool {
	return !r.success
}

// Data returns the payload, or nil.
func (r *Response) Data() any {
	return r.data
}

// Message returns the failure message, or "" on success.
func (r *Response) Message() string {
	return r.message
}

// Err returns the failure as an error, or nil on success.
func (r *Response) Err() error {
	return r.err
}

// ToMap returns the response as {success, data, message}. The message is nil
// on success.
func (r *Response) ToMap() map[string]any {
	var message any
	if !r.success {
		message = r.message
	}
	return map[string]any{
		"success": r.success,
		"data":    r.data,
		"message": message,
	}
}

// MarshalJSON encodes the response as its ToMap form.
func (r *Response) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToMap())
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (r *Response) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddBool("success", r.success)
	if !r.success {
		enc.AddString("message", r.message)
	}
	return nil
}

// DataAs returns the payload of r as a T.
func DataAs[T any](r *Response) (T, bool) {
	v, ok := r.data.(T)
	return v, ok
}
