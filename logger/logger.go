package logger

import (
	"os"

	"github.com/brandworks/crm-api/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the application logger from LOG_LEVEL. When LOG_FILE is set the
// JSON output is also written to a rotating file.
func New(cfg *config.Config) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	sinks := []zapcore.WriteSyncer{zapcore.Lock(os.Stdout)}
	if cfg.LogFile != "" {
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB, // MB
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAgeDays, // days
			Compress:   true,
		}))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(sinks...), lvl)
	zl := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("env", cfg.GoEnv))
	return zl, nil
}

// Init builds the logger and installs it as the zap global
func Init(cfg *config.Config) (*zap.Logger, error) {
	zl, err := New(cfg)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(zl)
	return zl, nil
}
