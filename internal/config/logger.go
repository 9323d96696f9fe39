package config

import "go.uber.org/zap"

// NewLogger در محیط توسعه logger development و در production نسخه‌ی production
func NewLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
