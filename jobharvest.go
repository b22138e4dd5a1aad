// Package jobharvest extracts human-readable job-posting text from
// third-party web pages and certifies that the extracted text is complete
// and on-topic before downstream consumers trust it. It combines ordered
// fallback extraction strategies, a multi-check content quality gate,
// adaptive page-load handling, and an error-classification layer with a
// run-wide circuit breaker for fatal upstream quota/auth conditions.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, gemini/); run
// orchestration lives in harvest/.
package jobharvest
