package ipfilter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowed_CIDR(t *testing.T) {
	allowlist := []string{"192.168.1.0/24"}

	assert.True(t, Allowed("192.168.1.5", allowlist))
	assert.False(t, Allowed("192.168.2.5", allowlist))
}

func TestAllowed_Exact(t *testing.T) {
	allowlist := []string{"200.1.2.3"}

	assert.True(t, Allowed("200.1.2.3", allowlist))
	assert.False(t, Allowed("200.1.2.4", allowlist))
}

func TestAllowed_EmptyAllowlistMatchesEverything(t *testing.T) {
	assert.True(t, Allowed("10.0.0.1", nil))
	assert.True(t, Allowed("10.0.0.1", []string{}))
}

func TestAllowed_MalformedEntriesAreSkipped(t *testing.T) {
	allowlist := []string{"", "not-an-ip", "300.300.300.300/99", "192.168.1.0/24"}

	assert.True(t, Allowed("192.168.1.10", allowlist))
	assert.False(t, Allowed("172.16.0.1", allowlist))
}

func TestAllowed_UnparseableClientIP(t *testing.T) {
	assert.False(t, Allowed("garbage", []string{"192.168.1.0/24"}))
	assert.True(t, Allowed("garbage", nil), "empty allowlist never blocks")
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{"forwarded single", "203.0.113.9", "10.0.0.1:4321", "203.0.113.9"},
		{"forwarded list takes first", "203.0.113.9, 70.41.3.18", "10.0.0.1:4321", "203.0.113.9"},
		{"falls back to remote addr", "", "10.0.0.1:4321", "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			r.RemoteAddr = tt.remoteAddr

			assert.Equal(t, tt.want, ClientIP(r))
		})
	}
}
