// Package mocks provides test doubles for the database package.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTxManager is a mock implementation of database.TxManager.
//
// By default WithTx must be stubbed per test. Use ExpectPassthrough to make
// the mock execute the transactional function directly, which is what most
// use case tests want.
type MockTxManager struct {
	mock.Mock
}

// WithTx records the call and returns the configured error. When the
// configured error is nil the transactional function runs with the given
// context, mirroring the real manager's behavior closely enough for use
// case tests.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

// ExpectPassthrough configures WithTx to run the transactional function
// for any call.
func (m *MockTxManager) ExpectPassthrough() *mock.Call {
	return m.On("WithTx", mock.Anything, mock.AnythingOfType("func(context.Context) error"))
}

// NewMockTxManager creates a MockTxManager and registers expectation
// assertions with the test's cleanup.
func NewMockTxManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTxManager {
	m := &MockTxManager{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
