// Package convert turns ingested rows into the bytes of an output file.
//
// A conversion runs in five steps:
//  1. validate the output config against the column mappings (blocking)
//  2. resolve every output field of every row (mapped, static or calculated)
//  3. lay values out (fixed-width padding or delimited quoting)
//  4. serialize the records
//  5. encode the text in the configured charset
//
// Only step 1 can stop a run. Problems with individual cells or rows degrade
// to a safe value and are reported as warnings in Result.Diagnostics.
//
// Key functions:
//   - NewEngine: creates an engine from options
//   - Engine.Convert: runs a conversion
//   - ProposedFilename: suggests the output file name
//   - WriteResult: writes a result to disk
package convert
