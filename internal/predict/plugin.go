package predict

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/hashicorp/go-hclog"
	goplugin "github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/chromatone/pkg/plugin"
)

// PluginClassifier runs a classifier plugin binary over go-plugin net/rpc.
// A new plugin process is started per prediction and killed afterwards.
type PluginClassifier struct {
	path   string
	logger hclog.Logger
}

// NewPluginClassifier creates a classifier for the plugin at path.
func NewPluginClassifier(path string, logger hclog.Logger) (*PluginClassifier, error) {
	if path == "" {
		return nil, fmt.Errorf("plugin path is required for the %s backend", BackendPlugin)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &PluginClassifier{path: path, logger: logger}, nil
}

// Predict starts the plugin, forwards img and normalises the response.
func (p *PluginClassifier) Predict(ctx context.Context, img Image) (*Result, error) {
	client := goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig:  plugin.Handshake,
		Plugins:          plugin.PluginMap(nil),
		Cmd:              exec.Command(p.path),
		AllowedProtocols: []goplugin.Protocol{goplugin.ProtocolNetRPC},
		Logger:           p.logger.Named("plugin"),
	})
	defer client.Kill()

	rpcClient, err := client.Client()
	if err != nil {
		return nil, &BackendError{Message: fmt.Sprintf("failed to start classifier plugin: %v", err), Err: err}
	}

	raw, err := rpcClient.Dispense(plugin.ClassifierPluginName)
	if err != nil {
		return nil, &BackendError{Message: fmt.Sprintf("failed to dispense classifier plugin: %v", err), Err: err}
	}
	classifier, ok := raw.(plugin.Classifier)
	if !ok {
		return nil, &BackendError{Message: fmt.Sprintf("plugin %s does not implement a classifier", p.path)}
	}

	if info := classifier.GetMetadata(); info.Name != "" {
		p.logger.Debug("classifier plugin loaded", "name", info.Name, "version", info.Version)
	}

	type outcome struct {
		resp *plugin.ClassifyResponse
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		resp, err := classifier.Classify(ctx, plugin.ClassifyRequest{
			Filename:    img.Name,
			ContentType: img.ContentType,
			Image:       img.Data,
		})
		done <- outcome{resp: resp, err: err}
	}()

	select {
	case <-ctx.Done():
		client.Kill()
		return nil, &BackendError{Message: "prediction cancelled", Err: ctx.Err()}
	case out := <-done:
		if out.err != nil {
			return nil, &BackendError{Message: out.err.Error(), Err: out.err}
		}
		return Normalize(FromPluginResponse(out.resp)), nil
	}
}

// FromPluginResponse converts a plugin response into a Result, keeping the
// plugin's label order.
func FromPluginResponse(resp *plugin.ClassifyResponse) *Result {
	if resp == nil {
		return &Result{Probabilities: Probabilities{}}
	}
	probs := make(Probabilities, 0, len(resp.Probs))
	for _, s := range resp.Probs {
		probs.Set(s.Label, s.Probability)
	}
	return &Result{Tone: resp.Tone, Probabilities: probs}
}
