// Package exporter writes a finished credit report to its downstream
// artifact forms: an indented JSON document and a multi-sheet Excel
// workbook with one sheet per bureau plus summary and inquiries sheets.
package exporter
