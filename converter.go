package md2resume

import (
	"context"
	"fmt"
	"os"

	"github.com/alnah/go-md2resume/internal/assets"
	"github.com/alnah/go-md2resume/internal/fileutil"
	"github.com/alnah/go-md2resume/internal/frontmatter"
	"github.com/alnah/go-md2resume/internal/pipeline"
	"github.com/alnah/go-md2resume/internal/structure"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.Preprocessor  = (*pipeline.TextPreprocessor)(nil)
	_ pipeline.HTMLConverter = (*pipeline.ResumeConverter)(nil)
	_ assets.AssetLoader     = (*assets.AssetResolver)(nil)
)

// Converter orchestrates the resume rendering pipeline.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
//
// Convert is safe for concurrent use. PDF renders share one browser and
// run one at a time.
type Converter struct {
	cfg           converterConfig
	assetLoader   assets.AssetLoader
	preprocessor  pipeline.Preprocessor
	htmlConverter pipeline.HTMLConverter
	shell         *pipeline.Shell
	pdfConverter  pdfConverter
}

// NewConverter creates a Converter with the embedded "resume" style and
// page template. Use options to customize behavior.
// Returns error if asset loading or template parsing fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:          converterConfig{timeout: defaultTimeout},
		preprocessor: &pipeline.TextPreprocessor{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.assetLoader == nil {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	resumeConverter := pipeline.NewResumeConverter(c.cfg.highlightStyle)
	if c.htmlConverter == nil {
		c.htmlConverter = resumeConverter
	}

	if err := c.resolveStyle(resumeConverter); err != nil {
		return nil, err
	}

	if c.shell == nil {
		page, err := c.assetLoader.LoadTemplate(assets.PageTemplateName)
		if err != nil {
			return nil, fmt.Errorf("loading page template: %w", err)
		}
		c.shell, err = pipeline.NewShell(page)
		if err != nil {
			return nil, fmt.Errorf("initializing page shell: %w", err)
		}
	}

	// Create PDF converter if not injected (e.g., by tests)
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Convert renders input to a complete HTML page and, when input.PDF is
// set, prints that page to PDF.
// The context is used for cancellation and timeout.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	// Trust boundary for library users building Input by hand; CLI input
	// is already checked by config validation.
	if err := input.Page.Validate(); err != nil {
		return nil, err
	}

	text := c.preprocessor.Preprocess(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	attrs, body, err := frontmatter.Split(text)
	if err != nil {
		return nil, err
	}

	frag, err := c.htmlConverter.ToHTML(ctx, body, structure.Metadata(attrs))
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	page, err := c.shell.Render(frag)
	if err != nil {
		return nil, err
	}

	// Converter style first, per-call CSS last so it can override.
	cssContent := c.cfg.resolvedStyle
	if input.CSS != "" {
		cssContent += "\n" + input.CSS
	}
	page = pipeline.InjectCSS(page, cssContent)

	if input.SourceDir != "" {
		page, err = pipeline.RewriteRelativePaths(page, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("rewriting relative paths: %w", err)
		}
	}

	res := &Result{
		HTML: []byte(page),
		Name: frag.Name,
		Meta: Metadata(attrs),
	}

	if !input.PDF {
		return res, nil
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, page, &pdfOptions{Page: input.Page})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	res.PDF = pdfBytes
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to
// CSS content and appends the highlight classes for fenced code.
// Called during NewConverter() after options are applied.
func (c *Converter) resolveStyle(highlighter *pipeline.ResumeConverter) error {
	if c.cfg.noStyle {
		return nil
	}

	input := c.cfg.styleInput
	if input == "" {
		input = assets.DefaultStyleName
	}

	var css string
	switch {
	case fileutil.IsFilePath(input):
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		css = string(content)
	case fileutil.IsCSS(input):
		css = input
	default:
		content, err := c.assetLoader.LoadStyle(input)
		if err != nil {
			return fmt.Errorf("loading style %q: %w", input, err)
		}
		css = content
	}

	highlightCSS, err := highlighter.HighlightCSS()
	if err != nil {
		return err
	}
	c.cfg.resolvedStyle = css + "\n" + highlightCSS
	return nil
}
