// Package tabular reads farm records from CSV or JSON and writes batch
// reports as CSV, JSON and YAML.
//
// Every input column is declared once in the column registry (columns.go);
// readers, the template writer and tests all share it.
package tabular
