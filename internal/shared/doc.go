// Package shared holds utilities used across packages that belong to no
// single domain or layer. Currently that is the testutil subpackage with
// its slog capture handler for asserting on structured log output.
package shared
