package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Auth: AuthConfig{
			JWTSecret:  "test-secret-key-for-unit-testing",
			TokenTTL:   7 * 24 * time.Hour,
			BcryptCost: MinBcryptCost,
		},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("期望校验通过，实际: %v", err)
	}
}

func TestValidate_MissingSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Error("缺少 jwt_secret 时应校验失败")
	}
}

func TestValidate_ShortSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = "short"
	if err := cfg.Validate(); err == nil {
		t.Error("过短的 jwt_secret 应校验失败")
	}
}

func TestValidate_LowBcryptCost(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.BcryptCost = 4
	if err := cfg.Validate(); err == nil {
		t.Error("bcrypt_cost 低于下限应校验失败")
	}
}

func TestValidate_BadPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("非法端口应校验失败")
	}
}

func TestLoad_FromFileWithDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("auth:\n  jwt_secret: file-secret-0123456789\nserver:\n  port: 9090\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("期望 port=9090，实际=%d", cfg.Server.Port)
	}
	if cfg.Auth.TokenTTL != 168*time.Hour {
		t.Errorf("期望默认 token_ttl=168h，实际=%v", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.BcryptCost != MinBcryptCost {
		t.Errorf("期望默认 bcrypt_cost=%d，实际=%d", MinBcryptCost, cfg.Auth.BcryptCost)
	}
	if cfg.Server.RequestTimeout != 10*time.Second {
		t.Errorf("期望默认 request_timeout=10s，实际=%v", cfg.Server.RequestTimeout)
	}
}

func TestLoad_MissingSecretFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8080\n"), 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}
	t.Setenv("CAMPUS_AUTH_JWT_SECRET", "")

	if _, err := Load(path); err == nil {
		t.Error("未配置签名密钥时 Load 应失败")
	}
}
