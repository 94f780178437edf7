package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-records/config"
	"campus-records/internal/model"
	"campus-records/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret-key-for-unit-testing"

// ── 测试辅助 ──

type stubAccounts struct {
	users map[string]*model.User
	err   error
	calls int
}

func (s *stubAccounts) GetByID(_ context.Context, id string) (*model.User, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newManager(ttl time.Duration) *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{JWTSecret: testSecret, TokenTTL: ttl, Issuer: "campus-records"})
}

// setupGuardedRouter 构造 /any（任意角色）与 /admin（仅管理员）两个受保护路由
func setupGuardedRouter(accounts AccountLookup) (*gin.Engine, *jwt.Manager) {
	mgr := newManager(7 * 24 * time.Hour)
	r := gin.New()
	g := r.Group("")
	g.Use(JWTAuth(mgr, accounts, zap.NewNop()))
	g.GET("/any", AnyRole(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"account_id": c.GetString(CtxAccountID), "role": c.GetString(CtxRole)})
	})
	g.PUT("/admin", AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, mgr
}

func doRequest(r *gin.Engine, method, path, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func bodyCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var resp struct {
		Code int `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v, body=%s", err, w.Body.String())
	}
	return resp.Code
}

func activeAccounts() *stubAccounts {
	return &stubAccounts{users: map[string]*model.User{
		"stu-1": {ID: "stu-1", Email: "s@vitap.ac.in", Role: model.RoleStudent, IsActive: true},
		"adm-1": {ID: "adm-1", Email: "a@vitap.ac.in", Role: model.RoleAdmin, IsActive: true},
		"off-1": {ID: "off-1", Email: "o@vitap.ac.in", Role: model.RoleAdmin, IsActive: false},
	}}
}

func bearer(t *testing.T, mgr *jwt.Manager, id, email, role string) string {
	t.Helper()
	token, _, err := mgr.Issue(id, email, role)
	if err != nil {
		t.Fatalf("签发 token 失败: %v", err)
	}
	return "Bearer " + token
}

// ── 状态机 ──

func TestJWTAuth_NoToken(t *testing.T) {
	accounts := activeAccounts()
	r, _ := setupGuardedRouter(accounts)

	w := doRequest(r, http.MethodPut, "/admin", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("无 token 期望 401，实际 %d", w.Code)
	}
	if accounts.calls != 0 {
		t.Error("无 token 时不应查询账号")
	}
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	r, _ := setupGuardedRouter(activeAccounts())

	for _, h := range []string{"Token abc", "Bearer", "Bearer    "} {
		if w := doRequest(r, http.MethodGet, "/any", h); w.Code != http.StatusUnauthorized {
			t.Errorf("认证头 %q 期望 401，实际 %d", h, w.Code)
		}
	}
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	r, _ := setupGuardedRouter(activeAccounts())

	w := doRequest(r, http.MethodGet, "/any", "Bearer not.a.token")
	if w.Code != http.StatusUnauthorized || bodyCode(t, w) != 10002 {
		t.Errorf("无效 token 期望 401/10002，实际 %d/%s", w.Code, w.Body.String())
	}

	other := jwt.NewManager(&config.AuthConfig{JWTSecret: "another-secret-0123456789", TokenTTL: time.Hour, Issuer: "campus-records"})
	w = doRequest(r, http.MethodGet, "/any", bearer(t, other, "stu-1", "s@vitap.ac.in", model.RoleStudent))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("错误签名期望 401，实际 %d", w.Code)
	}
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	r, _ := setupGuardedRouter(activeAccounts())
	expired := newManager(-time.Hour)

	w := doRequest(r, http.MethodPut, "/admin", bearer(t, expired, "adm-1", "a@vitap.ac.in", model.RoleAdmin))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("过期 token 期望 401，实际 %d", w.Code)
	}
	if bodyCode(t, w) != 10006 {
		t.Errorf("过期 token 期望业务码 10006，实际 %s", w.Body.String())
	}
}

func TestJWTAuth_InactiveOrMissingAccount(t *testing.T) {
	accounts := activeAccounts()
	r, mgr := setupGuardedRouter(accounts)

	w := doRequest(r, http.MethodGet, "/any", bearer(t, mgr, "off-1", "o@vitap.ac.in", model.RoleAdmin))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("停用账号期望 401，实际 %d", w.Code)
	}

	w = doRequest(r, http.MethodGet, "/any", bearer(t, mgr, "gone", "g@vitap.ac.in", model.RoleStudent))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("已删除账号期望 401，实际 %d", w.Code)
	}
}

func TestJWTAuth_LookupFailure(t *testing.T) {
	accounts := &stubAccounts{err: errors.New("connection refused")}
	r, mgr := setupGuardedRouter(accounts)

	w := doRequest(r, http.MethodGet, "/any", bearer(t, mgr, "stu-1", "s@vitap.ac.in", model.RoleStudent))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("账号查询失败期望 500，实际 %d", w.Code)
	}
}

func TestJWTAuth_RoleInsufficient(t *testing.T) {
	r, mgr := setupGuardedRouter(activeAccounts())

	w := doRequest(r, http.MethodPut, "/admin", bearer(t, mgr, "stu-1", "s@vitap.ac.in", model.RoleStudent))
	if w.Code != http.StatusForbidden {
		t.Errorf("非管理员期望 403，实际 %d", w.Code)
	}
}

func TestJWTAuth_Proceed(t *testing.T) {
	accounts := activeAccounts()
	r, mgr := setupGuardedRouter(accounts)

	w := doRequest(r, http.MethodPut, "/admin", bearer(t, mgr, "adm-1", "a@vitap.ac.in", model.RoleAdmin))
	if w.Code != http.StatusOK {
		t.Errorf("管理员期望 200，实际 %d", w.Code)
	}

	accounts.calls = 0
	w = doRequest(r, http.MethodGet, "/any", bearer(t, mgr, "stu-1", "s@vitap.ac.in", model.RoleStudent))
	if w.Code != http.StatusOK {
		t.Fatalf("学生访问公共路由期望 200，实际 %d", w.Code)
	}
	if accounts.calls != 1 {
		t.Errorf("每个请求应恰好查询一次账号，实际 %d 次", accounts.calls)
	}

	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["account_id"] != "stu-1" || body["role"] != model.RoleStudent {
		t.Errorf("上下文身份不符: %v", body)
	}
}

func TestJWTAuth_RoleFromStoreOverridesToken(t *testing.T) {
	r, mgr := setupGuardedRouter(activeAccounts())

	// 令牌声称 ADMIN，但账号实际为 STUDENT
	w := doRequest(r, http.MethodPut, "/admin", bearer(t, mgr, "stu-1", "s@vitap.ac.in", model.RoleAdmin))
	if w.Code != http.StatusForbidden {
		t.Errorf("期望以账号当前角色判定，返回 403，实际 %d", w.Code)
	}
}

func TestRoleAuth_WithoutIdentity(t *testing.T) {
	r := gin.New()
	r.GET("/x", RoleAuth(model.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	if w := doRequest(r, http.MethodGet, "/x", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("未注入身份期望 401，实际 %d", w.Code)
	}
}
