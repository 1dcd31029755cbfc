package apiclient

import (
	"context"

	"github.com/GriffinCanCode/apiclient/schema"
)

// The typed variants bind the unwrapped payload to T and validate it
// against T's declared tags before it reaches application code. Write
// operations additionally validate the outbound body, rejecting malformed
// requests before they leave the process.

// Get fetches path and binds the payload to T.
func Get[T any](ctx context.Context, c *Client, path string, opts ...CallOption) (T, error) {
	return bind[T](c.Get(ctx, path, opts...))
}

// Post validates body, sends it to path, and binds the reply to T.
func Post[T any](ctx context.Context, c *Client, path string, body any, opts ...CallOption) (T, error) {
	if err := schema.Validate(body); err != nil {
		var zero T
		return zero, err
	}
	return bind[T](c.Post(ctx, path, body, opts...))
}

// Put validates body, sends it to path, and binds the reply to T.
func Put[T any](ctx context.Context, c *Client, path string, body any, opts ...CallOption) (T, error) {
	if err := schema.Validate(body); err != nil {
		var zero T
		return zero, err
	}
	return bind[T](c.Put(ctx, path, body, opts...))
}

// Patch validates body, sends it to path, and binds the reply to T.
func Patch[T any](ctx context.Context, c *Client, path string, body any, opts ...CallOption) (T, error) {
	if err := schema.Validate(body); err != nil {
		var zero T
		return zero, err
	}
	return bind[T](c.Patch(ctx, path, body, opts...))
}

// Delete removes the resource at path and binds the reply to T.
func Delete[T any](ctx context.Context, c *Client, path string, opts ...CallOption) (T, error) {
	return bind[T](c.Delete(ctx, path, opts...))
}

func bind[T any](payload any, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return schema.Bind[T](payload)
}
