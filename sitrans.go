// Package sitrans translates locally mirrored websites between languages.
//
// Sitrans walks a directory tree of cached HTML documents, decides which
// pages are usable, extracts the human-readable fragments from each page,
// translates them through a pluggable backend (OpenAI, Google, ...) with
// bounded retry, and writes the rewritten pages back out atomically. Runs
// are resumable: pages whose output already exists are never reprocessed,
// and corrupt pages (empty files, feeds, anti-bot challenge pages) are
// skipped or removed without poisoning the rest of the run.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/sitrans"
//	    "github.com/ZaguanLabs/sitrans/mirror"
//	    "github.com/ZaguanLabs/sitrans/provider"
//	)
//
//	func main() {
//	    p := provider.NewGoogleProvider(provider.GoogleConfig{})
//	    gw, err := sitrans.NewGateway(context.Background(),
//	        sitrans.LanguagePair{Source: "en", Target: "hi"}, p)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    runner := mirror.NewRunner(mirror.Config{
//	        InputRoot:  "./site/www.example.com",
//	        OutputRoot: "./site-hi/www.example.com",
//	    }, gw)
//	    stats, err := runner.Run(context.Background())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("translated %d pages\n", stats.Translated)
//	}
package sitrans
