// Package mocks provides mock implementations for testing service repositories.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockEmailRepo(ctrl)
//	mockRepo.EXPECT().Capture(gomock.Any(), gomock.Any()).Return(rec, true, nil)
package mocks

// Generate mock for EmailRepo interface from internal/service package.
// This creates MockEmailRepo with methods for all EmailRepo interface methods:
// Capture, List, Count
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=email_repo_mock.go github.com/division-gg/division-api/internal/service EmailRepo

// Generate mock for VerificationRepo interface from internal/service package.
// This creates MockVerificationRepo with methods for all VerificationRepo interface methods:
// Start, GetByUserID, Transition
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=verification_repo_mock.go github.com/division-gg/division-api/internal/service VerificationRepo
