// Package mocks provides mock implementations of the auth ports.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	backend := mocks.NewMockBackend(ctrl)
//	backend.EXPECT().Login(gomock.Any(), gomock.Any()).Return(resp, nil)
package mocks

// Generate mock for Backend interface from internal/ports package.
// This creates MockBackend with methods for all Backend interface methods:
// Login, CreateUser, CreateOrganisation, UpdateUser, ConfirmPasswordReset
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=backend_mock.go github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/ports Backend

// Generate mock for KeyValueStore interface from internal/ports package.
// This creates MockKeyValueStore with methods for all KeyValueStore interface methods:
// Get, Set, SetMany, Delete, DeletePrefix
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=key_value_store_mock.go github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/ports KeyValueStore
