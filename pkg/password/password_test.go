package password

import (
	"strings"
	"testing"

	"campus-records/config"
)

func TestHashAndVerify(t *testing.T) {
	h := NewHasher(config.MinBcryptCost)

	digest, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash 失败: %v", err)
	}
	if digest == "secret123" || !strings.HasPrefix(digest, "$2") {
		t.Fatalf("摘要格式异常: %s", digest)
	}
	if !h.Verify("secret123", digest) {
		t.Error("正确口令应校验通过")
	}
	if h.Verify("wrong", digest) {
		t.Error("错误口令不应校验通过")
	}
}

func TestHash_Salted(t *testing.T) {
	h := NewHasher(config.MinBcryptCost)
	a, _ := h.Hash("same-password")
	b, _ := h.Hash("same-password")
	if a == b {
		t.Error("相同口令两次摘要应不同（加盐）")
	}
}

func TestNewHasher_CostFloor(t *testing.T) {
	if got := NewHasher(4).Cost(); got != config.MinBcryptCost {
		t.Errorf("期望成本因子被提升到 %d，实际=%d", config.MinBcryptCost, got)
	}
	if got := NewHasher(12).Cost(); got != 12 {
		t.Errorf("期望成本因子=12，实际=%d", got)
	}
}

func TestVerifyDummy(t *testing.T) {
	if NewHasher(config.MinBcryptCost).VerifyDummy("anything") {
		t.Error("VerifyDummy 必须恒为 false")
	}
}
