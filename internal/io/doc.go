// Package ioutils provides file system and CSV utilities.
//
// This package contains functions for:
//   - Loading the review CSV into a model.Dataset
//   - Writing a Dataset back out with its original header
//   - Atomic file replacement
//   - Export file naming and collision-free paths
//
// # Datasets
//
//	ds, err := ioutils.LoadDataset("data/anonymized_only.csv", "open_nps_reason")
//	err = ioutils.WriteDataset("out.csv", ds)
//
// # Atomic Writes
//
// WriteFileAtomic writes to a temporary file next to the target and renames
// it into place, so a crash never leaves a truncated file behind:
//
//	err := ioutils.WriteFileAtomic("state_file.txt", []byte("42"))
//
// # Export Names
//
//	name := ioutils.ExportFileName(time.Now())
//	// "2024-03-01 10_15_00.123456-anon-bearbeitet.csv"
package ioutils
