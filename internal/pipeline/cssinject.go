package pipeline

import "strings"

// InjectCSS inserts css as a <style> block before </head>, after <body>
// when there is no head, or at the top as a last resort.
func InjectCSS(htmlContent, css string) string {
	if css == "" {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(css) + "</style>\n"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}
	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}
	return styleBlock + htmlContent
}

// InjectBeforeBodyEnd inserts snippet before </body>, or appends it.
func InjectBeforeBodyEnd(htmlContent, snippet string) string {
	if idx := strings.LastIndex(strings.ToLower(htmlContent), "</body>"); idx != -1 {
		return htmlContent[:idx] + snippet + htmlContent[idx:]
	}
	return htmlContent + snippet
}

// sanitizeCSS keeps css from closing the <style> element early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
