// Package plugin provides the public API for out-of-process ChromaTone
// classifier plugins. External plugins should import this package instead of
// internal packages.
package plugin

import (
	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion defines the current plugin API version.
	ProtocolVersion = "0.1.0"

	// ClassifierPluginName is the key under which the classifier is dispensed.
	ClassifierPluginName = "classifier"
)

// Handshake is the handshake configuration for go-plugin protocol.
// This ensures that plugins using go-plugin can only connect to compatible hosts.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "CHROMATONE_PLUGIN",
	MagicCookieValue: "chromatone_skin_tone_classifier",
}

// PluginMap returns the plugin set served and consumed over go-plugin.
func PluginMap(impl Classifier) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		ClassifierPluginName: &ClassifierRPC{Impl: impl},
	}
}

// Serve runs impl as a go-plugin classifier. Call it from a plugin's main.
func Serve(impl Classifier) {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins:         PluginMap(impl),
	})
}
