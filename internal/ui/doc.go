// Package ui holds the shared color palette and terminal helpers used by
// the form views.
package ui
