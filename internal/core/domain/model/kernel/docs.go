// Package kernel provides the shared value objects of the dispatch domain.
//
// UUID is the only primitive every aggregate and collaborator identifier is
// built on. Its zero value is invalid and is rejected by Validate, so an
// unset identifier can never be mistaken for a real job or driver.
package kernel
