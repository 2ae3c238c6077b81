// Package ingest reads input files into a header plus rows table.
//
// Supported containers:
//   - delimited text (separator sniffed among ; , TAB and |)
//   - XLSX workbooks (first sheet)
//   - fixed-line legacy records, where each line becomes the single
//     pseudo-column LINHA
//
// Text input that is not valid UTF-8 is decoded as Windows-1252. Headers are
// made distinct: blank headers become "Coluna N" and repeats get " (2)",
// " (3)" suffixes.
package ingest
