package factory

import (
	"time"

	"batepapo/internal/dependencies/mocks"
	"batepapo/internal/storage/memory"
	"batepapo/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, testutil.NopLogger(), 0, 0)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
