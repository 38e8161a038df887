// Package preview serves live renderings of a resume over HTTP.
//
// The server offers an in-browser editor that posts the document to
// /render on every change, and, when started with a file, a page showing
// the latest rendering of that file. A file watcher re-renders on save and
// notifies open pages through server-sent events so they reload.
package preview
