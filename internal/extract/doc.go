// Package extract parses downloaded player wiki pages into player records.
//
// Nothing here performs network I/O: every entry point takes an io.Reader or
// an already parsed goquery.Document. Career history is located under the
// page's "History" heading and read with three strategies in order (a table,
// then a div/list container, then the free text up to the next section). The
// first strategy that yields entries wins. Entries are returned as raw text;
// date and status normalization happens downstream.
package extract
