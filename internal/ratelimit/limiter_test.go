package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestGetLimiterSingleton(t *testing.T) {
	if GetLimiter() != GetLimiter() {
		t.Error("GetLimiter() returned distinct instances")
	}
}

func TestWait_TestModeDoesNotBlock(t *testing.T) {
	// Under the test binary the limiters run unthrottled; a burst of
	// waits must return immediately.
	l := GetLimiter()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for i := 0; i < 100; i++ {
		if err := l.Wait(ctx, EndpointQuote); err != nil {
			t.Fatalf("Wait() returned unexpected error on iteration %d: %v", i, err)
		}
	}
}

func TestWait_UnknownEndpointAllowed(t *testing.T) {
	l := GetLimiter()
	if err := l.Wait(context.Background(), Endpoint("nonexistent")); err != nil {
		t.Errorf("Wait() for an unknown endpoint = %v, want nil", err)
	}
	if !l.Allow(Endpoint("nonexistent")) {
		t.Error("Allow() for an unknown endpoint = false, want true")
	}
}
