// Package provider implements translation backends.
package provider

import "github.com/ZaguanLabs/sitrans"

// Provider is the interface for translation backends.
// This is an alias to the main package interface for convenience.
type Provider = sitrans.Provider

// TranslateRequest is an alias to the main package type.
type TranslateRequest = sitrans.TranslateRequest

// DocumentTranslator is an alias to the main package interface.
type DocumentTranslator = sitrans.DocumentTranslator

// PackageManager is an alias to the main package interface.
type PackageManager = sitrans.PackageManager
