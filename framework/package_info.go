// Package framework contains the low-level implementation of test harness infrastructure
// that can be reused for different kinds of tests.
//
// The general model is:
//
// 1. The test harness sends HTTP requests to a service under test (here, an echo service)
// through a ServiceClient, and checks that the service is reachable before any test runs.
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. A failure in one test never stops the others.
//
// 3. Test output goes to a TestLogger, and each test has its own debug log that is only
// shown if the caller asks for it.
//
// The domain-specific code that knows what is being tested is responsible for building the
// requests and for the domain-specific test API on top of the test context.
package framework
