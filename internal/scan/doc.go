// Package scan reports unresolved markers across CSV files without opening
// the review UI.
//
// # Manager
//
// The Manager loads each file with the configured text column and counts
// markers in it:
//
//	manager := scan.NewManager(settings, func(event scan.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	reports, err := manager.Scan(ctx, []string{"a.csv", "b.csv"})
//
// # Concurrency
//
// Files are scanned in parallel, at most settings.MaxConcurrentScans at a
// time. Reports are returned in input order.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent.
// Callbacks are never invoked concurrently.
package scan
