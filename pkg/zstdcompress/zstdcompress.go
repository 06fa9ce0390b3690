package zstdcompress

import (
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Encoders are stateful and expensive to build, so they are pooled and
// reset onto each response writer.
var encoderPool = sync.Pool{
	New: func() interface{} {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			panic(err)
		}
		return enc
	},
}

type responseWriter struct {
	http.ResponseWriter
	enc         *zstd.Encoder
	wroteHeader bool
}

func (w *responseWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.Header().Del("Content-Length")
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(p []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.enc.Write(p)
}

// Middleware compresses responses with zstd when the client accepts it.
// WebSocket upgrades pass through untouched.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "zstd") ||
			strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
			next.ServeHTTP(w, r)
			return
		}

		enc := encoderPool.Get().(*zstd.Encoder)
		enc.Reset(w)
		defer func() {
			enc.Close()
			enc.Reset(io.Discard)
			encoderPool.Put(enc)
		}()

		w.Header().Set("Content-Encoding", "zstd")
		w.Header().Add("Vary", "Accept-Encoding")
		next.ServeHTTP(&responseWriter{ResponseWriter: w, enc: enc}, r)
	})
}

// Decompress wraps a request body that arrived zstd-encoded.
func Decompress(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}
