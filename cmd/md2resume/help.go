package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2resume <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render a Markdown resume to HTML or PDF")
	fmt.Fprintln(w, "  serve      Start the live preview server")
	fmt.Fprintln(w, "  doctor     Check the PDF export setup")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2resume help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2resume render <input.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a Markdown resume. Writes <input>.html next to the input by default.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file, or - for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (- = stdout)")
	fmt.Fprintln(w, "      --pdf                 Write a PDF instead of HTML")
	fmt.Fprintln(w, "      --html                Also write HTML when writing a PDF")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (default 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Style:")
	fmt.Fprintln(w, "      --style <s>           Style name (resume, minimal), CSS file, or raw CSS")
	fmt.Fprintln(w, "      --no-style            Disable CSS styling")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with styles/ and templates/ overrides")
	fmt.Fprintln(w, "      --highlight <s>       Code highlighting style")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page (PDF only):")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	printEnvHelp(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2resume serve [input.md] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Start the preview server. With a file, / shows its rendering and the")
	fmt.Fprintln(w, "browser reloads on save. /editor offers an in-browser editor.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --addr <host:port>    Listen address (default 127.0.0.1:8080)")
	fmt.Fprintln(w, "      --debounce <d>        Delay before re-rendering a saved file (default 150ms)")
	fmt.Fprintln(w, "      --log-format <s>      Log format: text, json")
	fmt.Fprintln(w, "      --style <s>           Style name, CSS file, or raw CSS")
	fmt.Fprintln(w, "      --no-style            Disable CSS styling")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with styles/ and templates/ overrides")
	fmt.Fprintln(w, "      --highlight <s>       Code highlighting style")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only log warnings and errors")
	fmt.Fprintln(w, "  -v, --verbose             Log debug records")
	fmt.Fprintln(w)
	printEnvHelp(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2resume doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that Chrome/Chromium can be found for PDF export.")
}

// printEnvHelp prints the recognized environment variables.
func printEnvHelp(w io.Writer) {
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2RESUME_CONFIG          Config file name or path")
	fmt.Fprintln(w, "  MD2RESUME_STYLE           Style name, CSS file, or raw CSS")
	fmt.Fprintln(w, "  MD2RESUME_ADDR            Preview listen address")
	fmt.Fprintln(w, "  MD2RESUME_TIMEOUT         PDF generation timeout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Precedence: flags > environment > config file > defaults.")
}

// runHelp prints help for a command and returns the exit code.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2resume version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2resume help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
