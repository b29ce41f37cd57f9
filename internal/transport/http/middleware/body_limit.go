package middleware

import "net/http"

// BodyLimit caps request bodies so an oversized payload fails at decode
// time instead of buffering without bound. Mutation payloads here are
// small status and field patches, so the cap can be aggressive.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBytes > 0 && r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
