package webclient

import (
	"net/http"
	"time"
)

// UserAgent identifies this service on outbound article fetches.
const UserAgent = "Mozilla/5.0 (compatible; RealOrRender/1.0; +https://github.com/realorrender)"

// NewDefault returns an HTTP client with sane timeouts.
func NewDefault(timeout time.Duration) *http.Client {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
