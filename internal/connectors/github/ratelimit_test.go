package github

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func quotaResponse(limit, remaining int, reset time.Time) *http.Response {
	h := http.Header{}
	h.Set(HeaderRateLimit, strconv.Itoa(limit))
	h.Set(HeaderRateRemaining, strconv.Itoa(remaining))
	h.Set(HeaderRateReset, strconv.FormatInt(reset.Unix(), 10))
	return &http.Response{Header: h}
}

func TestRateLimiter_Defaults(t *testing.T) {
	r := NewRateLimiter(rate.Inf)

	assert.Equal(t, DefaultQuota, r.Limit())
	assert.Equal(t, DefaultQuota, r.Remaining())
}

func TestRateLimiter_UpdateFromResponse(t *testing.T) {
	r := NewRateLimiter(rate.Inf)

	r.UpdateFromResponse(quotaResponse(60, 42, time.Now().Add(time.Hour)))
	assert.Equal(t, 60, r.Limit())
	assert.Equal(t, 42, r.Remaining())

	r.UpdateFromResponse(&http.Response{Header: http.Header{HeaderRateRemaining: {"not-a-number"}}})
	assert.Equal(t, 42, r.Remaining())

	r.UpdateFromResponse(nil)
	assert.Equal(t, 60, r.Limit())
}

func TestRateLimiter_Reserve(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{5000, MinBuffer},
		{60, 6},
		{5, 0},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.limit), func(t *testing.T) {
			r := NewRateLimiter(rate.Inf)
			r.UpdateFromResponse(quotaResponse(tt.limit, tt.limit, time.Now()))
			assert.Equal(t, tt.want, r.reserve())
		})
	}
}

func TestRateLimiter_WaitWithinQuota(t *testing.T) {
	r := NewRateLimiter(rate.Inf)
	r.UpdateFromResponse(quotaResponse(60, 50, time.Now().Add(time.Hour)))

	require.NoError(t, r.Wait(context.Background()))
}

func TestRateLimiter_WaitHoldsUntilReset(t *testing.T) {
	r := NewRateLimiter(rate.Inf)
	r.UpdateFromResponse(quotaResponse(60, 1, time.Now().Add(time.Hour)))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	require.ErrorIs(t, r.Wait(ctx), context.DeadlineExceeded)
}

func TestRateLimiter_WaitAfterReset(t *testing.T) {
	r := NewRateLimiter(rate.Inf)
	r.UpdateFromResponse(quotaResponse(60, 0, time.Now().Add(-time.Second)))

	require.NoError(t, r.Wait(context.Background()))
}
