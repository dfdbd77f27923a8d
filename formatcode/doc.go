// Package formatcode parses and renders format-coded text: free text with
// embedded typed placeholders such as %st, %dg#age$(0)$ or %dt$(+1 %A)$.
//
// A Spec is built once from a raw template with Parse and rendered any
// number of times with Render. Specs are never modified after construction,
// and Render reads its Clock exactly once per call.
package formatcode
