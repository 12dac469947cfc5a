package handlers

// httpError carries a status code out of a GORM transaction closure so the
// handler can map domain failures (conflict, missing price rule) without
// string comparisons.
type httpError struct {
	code    int
	message string
}

func (e *httpError) Error() string { return e.message }

func newHTTPError(code int, message string) *httpError {
	return &httpError{code: code, message: message}
}
