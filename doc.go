// Package folio assembles and renders a single-page personal portfolio.
//
// # Quick Start
//
// Point an Assembler at an asset directory, build a page, render it:
//
//	asm, err := folio.NewAssembler("assets", folio.DefaultContent())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	page, err := asm.BuildPage(ctx)
//	if err != nil {
//	    log.Fatal(err) // only the embedded document is required
//	}
//
//	r, err := folio.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	html, err := r.Render(ctx, page, folio.DefaultTheme())
//
// # Page Assembly
//
// BuildPage resolves the image slots of a Layout, loads the embedded
// document, replaces every PROFILE_SRC token in it with the profile image
// as a data URI and returns exactly eleven blocks:
//
//  1. banner (cover, embedded document, profile overlay)
//  2. divider
//  3. welcome heading (#about)
//  4. intro quote
//  5. link bubbles
//  6. two-column card grid (#projects)
//  7. divider
//  8. extras heading (#extras)
//  9. extras quote
//  10. three-column image grid of the extras folder
//  11. footer (#contact) with the closing divider
//
// Missing images never fail a build: their slot is omitted or replaced
// with placeholder text. A missing embedded document fails with
// ErrEmbeddedDocument.
//
// # Images
//
// Images are inlined as data URIs by default, so the rendered page is one
// self-contained file. WithLinkedImages references them under a URL prefix
// instead, for hosts that serve the asset directory.
//
// # Snapshots
//
// Snapshotter renders HTML to PDF or PNG in headless Chrome (go-rod).
// SnapshotPool bounds the number of browsers for servers:
//
//	pool := folio.NewSnapshotPool(folio.ResolvePoolSize(0))
//	defer pool.Close()
//
//	pdf, err := pool.Snapshot(ctx, html, folio.FormatPDF)
//
// Set ROD_BROWSER_BIN to use a specific Chrome binary and ROD_NO_SANDBOX=1
// in containers.
package folio
