package handler

// Middleware wraps a handler (e.g. logging, guild check, recovery). The
// wrapped type remains a Handler.
type Middleware func(Handler) Handler

// Apply applies middlewares in order; the last in the list is the outermost.
func Apply(h Handler, mws ...Middleware) Handler {
	for _, mw := range mws {
		h = mw(h)
	}
	return h
}
