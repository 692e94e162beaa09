package httpx

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
)

func RecoveryMiddleware(errs *ErrorTranslator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				stack := string(debug.Stack())
				log.Printf("panic recovered: request_id=%s error=%v stack=%s", RequestIDFrom(r), rec, stack)

				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				f := Unclassified(err)
				f.Stack = stack
				errs.Handle(w, r, f)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
