// Package services provides domain services that coordinate several Job
// aggregates or a Job and the actors around it.
//
// The package includes:
//   - OfferFactory: derives Copied offers and Applications from an Original
package services
