package transport

// Hooks observe the request lifecycle. Each member is independently
// optional.
//
// The hooks never suppress a failure and never fail a success: whatever
// error triggered them is re-signaled to the caller untouched. Their own
// panics are not caught and propagate as-is.
//
// For a given call they fire in strict order, OnRequestPrepare before the
// request is sent, OnResponseObserved after a response or error arrives.
// There is no cross-call ordering between concurrent requests.
type Hooks struct {
	// OnRequestPrepare sees the outbound descriptor before the request is
	// sent. A non-nil return substitutes the descriptor; nil keeps the
	// original. Called with nil when the request could not be constructed.
	OnRequestPrepare func(req *Request) *Request

	// OnResponseObserved sees the inbound descriptor after the exchange,
	// or nil when the exchange failed. Its return value is discarded.
	OnResponseObserved func(resp *Response)

	// OnError sees every failure before it is re-signaled to the caller.
	OnError func(err error)
}

// JoinHooks fans the lifecycle out to several hook sets in order. Prepare
// substitutions chain: each hook sees the previous hook's replacement.
func JoinHooks(hooks ...Hooks) Hooks {
	return Hooks{
		OnRequestPrepare: func(req *Request) *Request {
			var sub *Request
			for _, h := range hooks {
				if h.OnRequestPrepare == nil {
					continue
				}
				in := req
				if sub != nil {
					in = sub
				}
				if out := h.OnRequestPrepare(in); out != nil {
					sub = out
				}
			}
			return sub
		},
		OnResponseObserved: func(resp *Response) {
			for _, h := range hooks {
				if h.OnResponseObserved != nil {
					h.OnResponseObserved(resp)
				}
			}
		},
		OnError: func(err error) {
			for _, h := range hooks {
				if h.OnError != nil {
					h.OnError(err)
				}
			}
		},
	}
}
