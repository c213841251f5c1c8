package bootstrap

import (
	"testing"

	"go.uber.org/zap"
)

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "qscore",
		Timezone:      "America/Chicago",
	}
}

func TestValidateConfig_OK(t *testing.T) {
	if err := ValidateConfig(nil, validAppConfig(), zap.NewNop()); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidateConfig_BadMongoURI(t *testing.T) {
	cfg := validAppConfig()
	cfg.MongoURI = "http://not-mongo"
	if err := ValidateConfig(nil, cfg, zap.NewNop()); err == nil {
		t.Fatal("bad Mongo URI accepted")
	}
}

func TestValidateConfig_BadTimezone(t *testing.T) {
	cfg := validAppConfig()
	cfg.Timezone = "Not/AZone"
	if err := ValidateConfig(nil, cfg, zap.NewNop()); err == nil {
		t.Fatal("bad timezone accepted")
	}
}
