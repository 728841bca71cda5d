// Package catalog reads the local record catalog and picks records from
// it at random.
//
// # Loading
//
// The catalog is a CSV export of the user's collection. It is read into
// memory once; rows that fail to parse or are too short are skipped and
// logged:
//
//	cat, err := catalog.Load("collection.csv", catalog.Options{HasHeader: true})
//	fmt.Println(cat.Len(), "records,", cat.Skipped, "skipped")
//
// # Picking
//
// Picker draws a uniform index over all usable records on every call. The
// random source is injected so tests can seed it:
//
//	picker := catalog.NewPicker(cat, catalog.NewRand(42))
//	rec, err := picker.Pick()
//
// # Watching
//
// Store wraps a catalog that can be reloaded in place, and Watch reloads
// it whenever the file changes on disk:
//
//	store, _ := catalog.NewStore(path, opts)
//	go catalog.Watch(ctx, store, log, nil)
//	picker := catalog.NewPicker(store, nil)
package catalog
