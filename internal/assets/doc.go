// Package assets provides the stylesheets and HTML templates used to render
// resumes. Assets can be loaded from embedded files or a custom directory.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - go:embed filesystem (built-in styles and shells)
//	    ├── FilesystemLoader  - custom directory on disk
//	    └── AssetResolver     - custom first, embedded fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css      # e.g. resume.css
//	└── templates/
//	    └── {name}.html     # page.html (document shell), editor.html (preview)
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within its base path.
package assets
