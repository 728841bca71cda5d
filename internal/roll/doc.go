// Package roll provides the pick-fetch-decode pipeline that turns the
// catalog into a displayable cover.
//
// # Manager
//
// The Manager runs one roll at a time:
//
//  1. Pick a record uniformly from the catalog
//  2. Fetch its release document from Discogs
//  3. Take the URI of the first listed image
//  4. Download and decode the JPEG
//
// # Basic Usage
//
//	manager := roll.NewManager(picker, discogsClient, fetcher, roll.Options{}, log,
//	    func(event roll.ProgressEvent) {
//	        fmt.Println(event.Message)
//	    })
//
//	result, err := manager.Roll(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Record.Caption())
//
// # Re-rolls
//
// A pick that cannot be shown is skipped and a new record is picked:
//   - the release has no image, or its first image has no string uri
//   - the release document is malformed
//   - the record has no release id
//   - a request still fails after its retry
//
// Every skip emits a LevelWarning event such as "No image! Re-rolling...".
// Roll gives up with ErrGaveUp when the first pick and Options.MaxRerolls
// re-rolls after it were all skipped. A 401 or 403 from the API ends the roll with ErrUnauthorized.
//
// # Retry Logic
//
// Transient request failures are retried once per request with a linear
// backoff starting at Options.RetryDelay.
package roll
