package container

import (
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/logging"
	"go.uber.org/zap"
)

// LoggerPackage provides the application logger.
func LoggerPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*logging.Logger, error) {
		opts := do.MustInvoke[*Options](i)

		return logging.New(logging.Options{
			Format:     opts.LogFormat,
			Level:      opts.LogLevel,
			File:       opts.LogFile,
			MaxSizeMB:  100,
			MaxBackups: 3,
		})
	})

	do.Provide(i, func(i *do.Injector) (*zap.Logger, error) {
		logger, err := do.Invoke[*logging.Logger](i)
		if err != nil {
			return nil, err
		}

		return logger.Logger, nil
	})
}
