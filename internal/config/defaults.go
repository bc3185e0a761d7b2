package config

const (
	defaultDataDir             = "~/.local/share/retrace/data"
	defaultLogDir              = "~/.local/share/retrace/logs"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultLedgerBackend       = "sqlite"
	defaultRedisPrefix         = "retrace:ledger:"
	defaultFactorThreshold     = 3
	defaultDateToleranceDays   = 1
	defaultRatingEpsilon       = 0.01
	defaultSimilarityFloor     = 0.5
	defaultSimilarityTieMargin = 0.05
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Matching: Matching{
			FactorThreshold:     defaultFactorThreshold,
			DateToleranceDays:   defaultDateToleranceDays,
			RatingEpsilon:       defaultRatingEpsilon,
			SimilarityFloor:     defaultSimilarityFloor,
			SimilarityTieMargin: defaultSimilarityTieMargin,
		},
		Ledger: Ledger{
			Backend:     defaultLedgerBackend,
			RedisPrefix: defaultRedisPrefix,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
