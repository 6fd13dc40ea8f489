// Package model defines the typed form model the renderers consume. A
// FormModel for a dashboard item is built from a preference catalog: one
// Field per recognized key, followed by the Save / Apply Defaults / Cancel
// actions. Decorators can enrich the model before it reaches a renderer.
package model
