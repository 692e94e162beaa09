package httpx

import (
	"log"
	"net/http"
	"time"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode    int
	bytesWritten  int64
	headerWritten bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.headerWritten {
		rw.statusCode = code
		rw.headerWritten = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += int64(n)
	return n, err
}

// HeaderWritten reports whether a status line has been sent to the client.
func (rw *responseWriter) HeaderWritten() bool {
	return rw.headerWritten
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// TrackResponse wraps w so later stages can tell whether the response has started.
// Wrapping an already tracked writer returns it unchanged.
func TrackResponse(w http.ResponseWriter) http.ResponseWriter {
	if _, ok := w.(*responseWriter); ok {
		return w
	}
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

// ResponseStarted reports whether headers were already sent through w.
// Writers that do not track this are treated as not started.
func ResponseStarted(w http.ResponseWriter) bool {
	for {
		switch v := w.(type) {
		case interface{ HeaderWritten() bool }:
			return v.HeaderWritten()
		case interface{ Unwrap() http.ResponseWriter }:
			w = v.Unwrap()
		default:
			return false
		}
	}
}

func AccessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := TrackResponse(w).(*responseWriter)

		defer func() {
			log.Printf("access method=%s path=%s status=%d bytes=%d duration_ms=%d request_id=%s",
				r.Method,
				r.URL.Path,
				rw.statusCode,
				rw.bytesWritten,
				time.Since(start).Milliseconds(),
				RequestIDFrom(r),
			)
		}()

		next.ServeHTTP(rw, r)
	})
}
