// Package mocks holds test doubles shared by several packages.
//
// MemoryModel is an in-memory store.Model used by the service, handler and
// router tests in place of PostgreSQL. TestifyMockModel is the
// expectation-based variant for asserting which store calls happen.
// MockJWTService and MockPasswordVerifier stand in for the auth package:
//
//	model := mocks.NewMemoryModel("pessoas", "pessoa_id")
//	verifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}
//	jwtSvc := &mocks.MockJWTService{Token: "signed"}
package mocks
