// Package assets provides the built-in keyword vocabulary and starter
// document embedded at compile time.
//
// # Directory Structure
//
//	vocabularies/
//	└── {name}.yaml      # keyword categories and highlight order
//	templates/
//	└── {name}.html      # document shells with a content container
//	                     # and a keyword index script
//
// Asset names are validated to prevent path traversal.
package assets
