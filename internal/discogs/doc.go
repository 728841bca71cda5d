// Package discogs looks up release metadata on the Discogs API.
//
// Only one thing is needed from a release: the URI of its primary image,
// which by API convention is the first entry of the "images" array.
//
//	client := discogs.NewClient(httpClient, discogs.DefaultBaseURL, token)
//	uri, err := client.FetchPrimaryImageURI(ctx, rec.ReleaseID())
//	switch {
//	case errors.Is(err, discogs.ErrNoImage):
//	    // not every release has artwork uploaded: pick another record
//	case errors.Is(err, discogs.ErrMalformedResponse):
//	    // body was not a release document
//	case err != nil:
//	    // transport or HTTP status failure
//	}
package discogs
