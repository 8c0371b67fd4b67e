// Package responsewriter wraps http.ResponseWriter so middleware can read
// the status code and body size after the handler has run.
package responsewriter

import "net/http"

// ResponseWriter records the status code and the number of body bytes
// written through it.
type ResponseWriter struct {
	http.ResponseWriter
	status     int
	bytes      int
	headerSent bool
}

// Wrap returns a recording wrapper around w. The status defaults to 200,
// matching net/http's behavior when WriteHeader is never called.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the first status code; duplicates are dropped rather
// than forwarded, so the underlying writer never logs a superfluous call.
func (w *ResponseWriter) WriteHeader(statusCode int) {
	if w.headerSent {
		return
	}
	w.status = statusCode
	w.headerSent = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write forwards the body and accumulates its size.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.headerSent {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// StatusCode returns the recorded status code.
func (w *ResponseWriter) StatusCode() int { return w.status }

// BytesWritten returns the number of body bytes written so far.
func (w *ResponseWriter) BytesWritten() int { return w.bytes }

// Unwrap exposes the underlying writer for http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
