// Package artfetch archives web articles. It fetches a page from one of
// several known publishing platforms (WeChat, Notion, Zhihu, Medium) or any
// generic site, extracts the title, author, content and images into a
// normalized document, downloads the images, and renders the result as
// Markdown, standalone HTML, or an EPUB package.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, epub/, http/).
package artfetch
