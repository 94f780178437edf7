package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"campus-records/internal/model"
	"campus-records/internal/repository"
	pkgerrors "campus-records/pkg/errors"
)

// ── Mock UserRepository ──

// mockUserRepo 以互斥锁模拟数据库唯一索引（邮箱、学号/工号）
type mockUserRepo struct {
	mu          sync.Mutex
	seq         int
	users       map[string]*model.User // key: user_id
	emails      map[string]string      // key: lower(email) → user_id
	identifiers map[string]bool

	// provisionErrs 按顺序注入 Provision 的返回错误
	provisionErrs []error
	provisionCall int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:       make(map[string]*model.User),
		emails:      make(map[string]string),
		identifiers: make(map[string]bool),
	}
}

func (m *mockUserRepo) Provision(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.provisionCall++
	if len(m.provisionErrs) > 0 {
		err := m.provisionErrs[0]
		m.provisionErrs = m.provisionErrs[1:]
		if err != nil {
			return err
		}
	}

	key := strings.ToLower(user.Email)
	if _, ok := m.emails[key]; ok {
		return pkgerrors.ErrDuplicateEmail
	}

	var identifier string
	switch {
	case user.Student != nil:
		identifier = user.Student.StudentNo
	case user.Faculty != nil:
		identifier = user.Faculty.EmployeeNo
	case user.Staff != nil:
		identifier = user.Staff.EmployeeNo
	}
	if identifier != "" && m.identifiers[identifier] {
		return pkgerrors.ErrDuplicateIdentifier
	}

	m.seq++
	user.ID = fmt.Sprintf("user-%d", m.seq)
	user.CreatedAt = time.Now()
	if user.Profile != nil {
		user.Profile.UserID = user.ID
	}
	if user.Student != nil {
		user.Student.ID = fmt.Sprintf("student-%d", m.seq)
		user.Student.UserID = user.ID
	}
	if user.Faculty != nil {
		user.Faculty.ID = fmt.Sprintf("faculty-%d", m.seq)
		user.Faculty.UserID = user.ID
	}
	if user.Staff != nil {
		user.Staff.ID = fmt.Sprintf("staff-%d", m.seq)
		user.Staff.UserID = user.ID
	}

	if identifier != "" {
		m.identifiers[identifier] = true
	}
	m.emails[key] = user.ID
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByIDWithRelations(ctx context.Context, id string) (*model.User, error) {
	return m.GetByID(ctx, id)
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.emails[strings.ToLower(email)]; ok {
		return m.users[id], nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.emails[strings.ToLower(email)]
	return ok, nil
}

func (m *mockUserRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *mockUserRepo) List(_ context.Context, filter repository.AccountFilter, offset, limit int) ([]model.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kw := strings.ToLower(strings.TrimSpace(filter.Keyword))
	var all []model.User
	for _, u := range m.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.IsActive != nil && u.IsActive != *filter.IsActive {
			continue
		}
		if kw != "" {
			hit := strings.Contains(strings.ToLower(u.Email), kw)
			if u.Profile != nil {
				hit = hit ||
					strings.Contains(strings.ToLower(u.Profile.FirstName), kw) ||
					strings.Contains(strings.ToLower(u.Profile.LastName), kw)
			}
			if !hit {
				continue
			}
		}
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	total := int64(len(all))
	if offset >= len(all) {
		return []model.User{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockUserRepo) SetActive(_ context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.IsActive = active
	return nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student

	// 最近一次 UpdateWithProfile 的入参
	lastStudentFields map[string]interface{}
	lastProfileFields map[string]interface{}
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

// add 写入一名学生，created 用于排序
func (m *mockStudentRepo) add(id, no, first, last string, created time.Time) *model.Student {
	st := &model.Student{
		ID:              id,
		UserID:          "user-" + id,
		StudentNo:       no,
		CurrentSemester: 1,
		User: &model.User{
			ID:    "user-" + id,
			Email: strings.ToLower(first) + "@vitap.ac.in",
			Role:  model.RoleStudent,
			Profile: &model.Profile{
				UserID:    "user-" + id,
				FirstName: first,
				LastName:  last,
			},
		},
	}
	st.CreatedAt = created
	m.students[id] = st
	return st
}

func (m *mockStudentRepo) filtered(keyword string) []model.Student {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	var all []model.Student
	for _, st := range m.students {
		if kw != "" {
			match := strings.Contains(strings.ToLower(st.StudentNo), kw)
			if st.User != nil && st.User.Profile != nil {
				p := st.User.Profile
				match = match ||
					strings.Contains(strings.ToLower(p.FirstName), kw) ||
					strings.Contains(strings.ToLower(p.LastName), kw)
			}
			if !match {
				continue
			}
		}
		all = append(all, *st)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	return all
}

func (m *mockStudentRepo) List(_ context.Context, keyword string, offset, limit int) ([]model.Student, int64, error) {
	all := m.filtered(keyword)
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockStudentRepo) ListAll(_ context.Context, keyword string) ([]model.Student, error) {
	return m.filtered(keyword), nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if st, ok := m.students[id]; ok {
		return st, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetDetail(ctx context.Context, id string) (*model.Student, error) {
	return m.GetByID(ctx, id)
}

func (m *mockStudentRepo) GetWithRecords(ctx context.Context, id string) (*model.Student, error) {
	return m.GetByID(ctx, id)
}

func (m *mockStudentRepo) UpdateWithProfile(_ context.Context, id, _ string, studentFields, profileFields map[string]interface{}) error {
	st, ok := m.students[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.lastStudentFields = studentFields
	m.lastProfileFields = profileFields

	if v, ok := studentFields["current_semester"].(int); ok {
		st.CurrentSemester = v
	}
	if v, ok := studentFields["gpa"].(float64); ok {
		st.GPA = &v
	}
	if v, ok := studentFields["is_graduated"].(bool); ok {
		st.IsGraduated = v
	}
	if v, ok := studentFields["graduation_date"].(time.Time); ok {
		st.GraduationDate = &v
	} else {
		st.GraduationDate = nil
	}
	if st.User != nil && st.User.Profile != nil {
		if v, ok := profileFields["first_name"].(string); ok {
			st.User.Profile.FirstName = v
		}
		if v, ok := profileFields["last_name"].(string); ok {
			st.User.Profile.LastName = v
		}
	}
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.students[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.students, id)
	return nil
}

// ── Mock FacultyRepository ──

type mockFacultyRepo struct {
	list []model.Faculty
}

func (m *mockFacultyRepo) List(_ context.Context, _ string, offset, limit int) ([]model.Faculty, int64, error) {
	total := int64(len(m.list))
	if offset >= len(m.list) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(m.list) {
		end = len(m.list)
	}
	return m.list[offset:end], total, nil
}

func (m *mockFacultyRepo) GetByID(_ context.Context, id string) (*model.Faculty, error) {
	for i := range m.list {
		if m.list[i].ID == id {
			return &m.list[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock StaffRepository ──

type mockStaffRepo struct {
	list []model.Staff
}

func (m *mockStaffRepo) List(_ context.Context, _ string, offset, limit int) ([]model.Staff, int64, error) {
	total := int64(len(m.list))
	if offset >= len(m.list) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(m.list) {
		end = len(m.list)
	}
	return m.list[offset:end], total, nil
}

func (m *mockStaffRepo) GetByID(_ context.Context, id string) (*model.Staff, error) {
	for i := range m.list {
		if m.list[i].ID == id {
			return &m.list[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── 测试用口令摘要 ──

// fakeHasher 明文前缀代替 bcrypt，保持单测快速
type fakeHasher struct {
	mu         sync.Mutex
	dummyCalls int
}

func (h *fakeHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (h *fakeHasher) Verify(plain, digest string) bool {
	return digest == "hashed:"+plain
}

func (h *fakeHasher) VerifyDummy(string) bool {
	h.mu.Lock()
	h.dummyCalls++
	h.mu.Unlock()
	return false
}

// ── 测试辅助 ──

type testRepos struct {
	repo    *repository.Repository
	user    *mockUserRepo
	student *mockStudentRepo
	faculty *mockFacultyRepo
	staff   *mockStaffRepo
}

func newTestRepos() *testRepos {
	r := &testRepos{
		user:    newMockUserRepo(),
		student: newMockStudentRepo(),
		faculty: &mockFacultyRepo{},
		staff:   &mockStaffRepo{},
	}
	r.repo = &repository.Repository{
		User:    r.user,
		Student: r.student,
		Faculty: r.faculty,
		Staff:   r.staff,
	}
	return r
}
