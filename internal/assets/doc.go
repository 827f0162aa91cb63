// Package assets loads everything the portfolio renderer reads from disk or
// from the binary.
//
// # Theme Assets
//
// Styles and the page template are served through the AssetLoader interface:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in styles and the page template (go:embed)
//	    ├── FilesystemLoader  - overrides from a theme directory on disk
//	    └── AssetResolver     - custom-first, embedded fallback
//
// Theme directories mirror the embedded layout:
//
//	{themePath}/
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    └── {name}.html
//
// # Site Assets
//
// SiteDir is the portfolio's own asset directory (cover, profile, divider,
// card thumbnails, extras gallery, embedded document). Reads are relative to
// the directory and may not escape it.
//
// # Security
//
// Asset names are validated to prevent path traversal. Both FilesystemLoader
// and SiteDir resolve symlinks and verify the result stays under their base.
package assets
