// Package recordsservice implements the clinical records service inside ClinicalH.
//
// Layering:
// - domain: patients, notes, medications, access decisions, shift windows
// - application: service methods and the outbox relay worker using explicit ports
// - ports: stable boundaries for persistence, clock, ids and events
// - adapters: concrete HTTP, memory and postgres implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under the clinical-care context.
// - Do not import adapters into domain/application.
// - Every temporal decision flows through the Clock port.
package recordsservice
