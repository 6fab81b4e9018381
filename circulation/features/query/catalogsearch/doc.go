// Package catalogsearch implements the Catalog Search query use case.
package catalogsearch
