// Package parsing recovers structured per-bureau records from the
// positionally laid-out text of a tri-bureau credit report.
//
// The document interleaves TransUnion, Experian, and Equifax values on
// shared lines or in coordinate-separated columns with no delimiters.
// The package segments the line stream into sections, decomposes
// composite lines through a single fan-out policy, clusters positioned
// words into bureau columns, slices out tradeline and collection
// sub-sections, and reconstructs the 24-month payment history grid per
// bureau. The Parser assembles all of it into one immutable CreditReport.
package parsing
