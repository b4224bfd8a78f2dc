package service

import (
	"testing"
	"time"

	"github.com/lshigami/classquiz/internal/model"
	"github.com/lshigami/classquiz/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStatus(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, f.users.TouchLastSeen(f.student.ID, now.Add(-90*time.Second)))
	require.NoError(t, f.users.TouchLastSeen(f.teacher.ID, now.Add(-3*time.Minute)))

	svc := NewUserService(f.users).(*userService)
	svc.now = func() time.Time { return now }

	status, err := svc.Status()
	require.NoError(t, err)
	require.Len(t, status, 2)
	assert.Equal(t, f.student.ID, status[0].ID)
	assert.True(t, status[0].Online)
	assert.Equal(t, f.teacher.ID, status[1].ID)
	assert.False(t, status[1].Online)
}

func TestUserRoster(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.db, "Admin", "admin@example.test", model.RoleAdmin)
	testutil.CreateUser(t, f.db, "Andi", "andi@example.test", model.RoleStudent)
	svc := NewUserService(f.users)

	all, err := svc.All()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, model.RoleStudent, all[0].Role, "siswa sorts before guru")
	assert.Equal(t, "Andi", all[0].Name)
	assert.Equal(t, model.RoleTeacher, all[2].Role)

	students, err := svc.Students()
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Andi", students[0].Name)

	teachers, err := svc.Teachers()
	require.NoError(t, err)
	require.Len(t, teachers, 1)

	shown, err := svc.Show(f.teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, f.teacher.Email, shown.Email)
}
