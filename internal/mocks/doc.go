// Package mocks provides centralized mock implementations for testing.
//
// This package contains mock implementations of interfaces used throughout
// the application, facilitating consistent testing across the codebase.
// Instead of defining inline mocks in individual test files, these
// standardized implementations can be reused.
//
// Each mock exposes a function field per interface method plus default
// values used when the function field is left nil:
//
//	mockJWT := &mocks.MockJWTService{
//		ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//			return nil, auth.ErrExpiredToken
//		},
//	}
package mocks
