package web

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_UnlimitedDoesNotBlock(t *testing.T) {
	r := NewRateLimiter(0, 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 100; i++ {
		assert.NoError(t, r.Wait(ctx))
	}
}

func TestRateLimiter_WaitRespectsBackoff(t *testing.T) {
	r := NewRateLimiter(0, 1)
	resp := &http.Response{Header: http.Header{"Retry-After": []string{"60"}}}
	r.RecordTooManyRequests(resp)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := r.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiter_BackoffIsCapped(t *testing.T) {
	r := NewRateLimiter(0, 1)
	r.RecordTooManyRequests(&http.Response{Header: http.Header{"Retry-After": []string{"86400"}}})

	assert.WithinDuration(t, time.Now().Add(maxBackoff), r.RetryAt(), time.Second)
}

func TestRateLimiter_DefaultBackoff(t *testing.T) {
	r := NewRateLimiter(1, 0)
	r.RecordTooManyRequests(nil)

	assert.WithinDuration(t, time.Now().Add(defaultBackoff), r.RetryAt(), time.Second)
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	d, ok := parseRetryAfter("120", now)
	assert.True(t, ok)
	assert.Equal(t, 2*time.Minute, d)

	d, ok = parseRetryAfter(now.Add(time.Minute).Format(http.TimeFormat), now)
	assert.True(t, ok)
	assert.Equal(t, time.Minute, d)

	d, ok = parseRetryAfter(now.Add(-time.Minute).Format(http.TimeFormat), now)
	assert.True(t, ok)
	assert.Equal(t, time.Duration(0), d)

	_, ok = parseRetryAfter("", now)
	assert.False(t, ok)

	_, ok = parseRetryAfter("-5", now)
	assert.False(t, ok)

	_, ok = parseRetryAfter("soon", now)
	assert.False(t, ok)
}
