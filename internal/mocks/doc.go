// Package mocks provides centralized mock implementations of the
// application's service interfaces for use in tests.
//
// Each mock exposes function fields that tests can set to control
// behavior, plus default value fields used when no function is provided:
//
//	jwtService := &mocks.MockJWTService{
//	    ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	        return &auth.Claims{UserID: "user-1"}, nil
//	    },
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Document any helper methods or special functionality
package mocks
