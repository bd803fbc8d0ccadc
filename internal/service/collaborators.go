package service

import (
	"go.uber.org/zap"

	"github.com/healthkathon/jkb/internal/config"
)

// Collaborators bundles the backends handed to the screens.
type Collaborators struct {
	Core    CoreAPI
	Fraud   FraudDetectionAPI
	Chatbot ChatbotAPI
}

// New picks the HTTP client or the mocks according to cfg.Mock.
func New(cfg config.APIConfig, log *zap.Logger) (Collaborators, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Mock {
		delay := NetworkDelay{
			Min:     cfg.NetworkDelayMin,
			Max:     cfg.NetworkDelayMax,
			LongMin: cfg.LongDelayMin,
			LongMax: cfg.LongDelayMax,
		}
		log.Info("using mocked backend", zap.Duration("delay_max", delay.Max))
		return Collaborators{
			Core:    MockCore{Delay: delay},
			Fraud:   MockFraudDetection{Delay: delay},
			Chatbot: MockChatbot{Delay: delay},
		}, nil
	}

	c, err := NewClient(cfg.BaseURL, cfg.Timeout, log)
	if err != nil {
		return Collaborators{}, err
	}
	log.Info("using remote backend", zap.String("base_url", cfg.BaseURL))
	return Collaborators{Core: c, Fraud: c, Chatbot: c}, nil
}
