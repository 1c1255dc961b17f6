// Package mocks provides in-memory implementations of the store and
// verifier interfaces for tests.
//
// Each mock keeps its data in memory and exposes optional Fn fields. When a
// Fn field is set it replaces the default behavior, which makes injecting
// failures straightforward:
//
//	drinks := mocks.NewMockDrinkStore()
//	drinks.DeleteFn = func(ctx context.Context, id int) error {
//		return errors.New("connection reset")
//	}
package mocks
