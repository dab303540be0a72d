package mw

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// localizedEntry is a cached GET response for one URI and Accept-Language.
type localizedEntry struct {
	status      int
	contentType string
	body        []byte
}

// recordingWriter copies the response body while passing it through.
type recordingWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// cacheKey varies on Accept-Language because locale responses depend on it.
func cacheKey(c *gin.Context) string {
	return c.Request.RequestURI + "|" + c.GetHeader("Accept-Language")
}

// Cache serves repeated GETs of localized resources from memory. Only 2xx
// responses are kept, and every response advertises Vary: Accept-Language.
func Cache(store *cache.Cache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		c.Header("Vary", "Accept-Language")

		key := cacheKey(c)
		if v, found := store.Get(key); found {
			entry := v.(localizedEntry)
			c.Header("X-Cache", "HIT")
			c.Data(entry.status, entry.contentType, entry.body)
			c.Abort()
			return
		}

		rec := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		if status := rec.Status(); status >= 200 && status < 300 {
			store.Set(key, localizedEntry{
				status:      status,
				contentType: rec.Header().Get("Content-Type"),
				body:        bytes.Clone(rec.buf.Bytes()),
			}, ttl)
		}
	}
}
