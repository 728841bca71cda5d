// Package model defines the core data structures used throughout
// record-roll.
//
// # Record
//
// Record is one row of the user's catalog (a Discogs collection export):
//
//	rec, err := model.NewRecord(fields)
//	fmt.Println(rec.Caption())   // "Can - Tago Mago"
//	fmt.Println(rec.ReleaseID()) // "1234567"
//
// Rows shorter than MinFields are rejected with ErrShortRow.
//
// # Images
//
// DecodedImage is a packed RGB buffer that implements image.Image. Artwork
// bundles it with the encoded bytes and the URI they came from.
//
// # Cover Paths
//
// CoverConfig controls where saved covers go, using placeholders:
//
//	cfg := &model.CoverConfig{
//	    Dir:            "/pictures/{artist}",
//	    FileNameFormat: "{album}",
//	}
//	path := rec.CoverPath(cfg, ".jpg")
//
// Available placeholders: {artist}, {album}, {release}
package model
