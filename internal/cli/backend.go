package cli

import (
	"context"

	"github.com/jmylchreest/chromatone/internal/predict"
	"github.com/jmylchreest/chromatone/internal/security"
)

// newPredictor builds the classifier selected by the validated config.
func (a *app) newPredictor(ctx context.Context) (predict.Predictor, error) {
	logger := a.logger.Named(a.cfg.Backend)

	switch a.cfg.Backend {
	case predict.BackendGemini:
		return predict.NewGeminiClassifier(ctx, a.cfg.GeminiModel, logger)
	case predict.BackendPlugin:
		return predict.NewPluginClassifier(a.cfg.PluginPath, logger)
	default:
		if security.IsPlaintextRemote(a.cfg.APIURL) {
			a.logger.Warn("photo will be sent over unencrypted HTTP", "url", a.cfg.APIURL)
		}
		return predict.NewHTTPClient(a.cfg.APIURL,
			predict.WithTimeout(a.cfg.Timeout),
			predict.WithLogger(logger),
		), nil
	}
}
