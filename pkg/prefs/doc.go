// Package prefs describes the preferences a dashboard item persists through
// its host. The Catalog enumerates the recognized keys together with their
// labels and defaults, and the Normalizer turns the raw mapping delivered by
// the host into one where every recognized key holds a plain decoded string.
//
// The built-in catalog is declared as an OpenAPI components schema
// (schema/preferences.yaml) so hosts can publish the same document alongside
// their own API description.
package prefs
