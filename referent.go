// Package referent provides a small service that turns an article URL into
// AI-generated derivatives: a summary, a thesis list, a social post, a
// translation, or an illustration.
//
// It fetches the page, extracts the article text with ordered selector
// heuristics, splits long bodies into chunks, sends them to a completion
// service and reconciles the per-chunk outputs into one result.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, openai/, gin/).
package referent
