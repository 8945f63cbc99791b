// Package docdig harvests the textual content of documentation sites and
// converts it into LLM-ready files (Markdown, JSON, plain text, or cleaned
// HTML) laid out on disk to mirror the site's path structure.
//
// This package contains domain types, interfaces, and pure helpers following
// Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/, http/).
package docdig
