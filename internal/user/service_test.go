package user

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	byID   map[string]*User
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*User)}
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) Count(_ context.Context) (int, error) {
	return len(f.byID), nil
}

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	f.nextID++
	u.ID = fmt.Sprintf("usr-%d", f.nextID)
	u.CreatedAt = time.Now().UTC()
	f.byID[u.ID] = u
	return nil
}

func (f *fakeRepo) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	u, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

func (f *fakeRepo) List(_ context.Context, _ UserFilter) ([]*User, int, error) {
	var users []*User
	for _, u := range f.byID {
		users = append(users, u)
	}
	return users, len(users), nil
}

func (f *fakeRepo) Update(_ context.Context, u *User) error {
	if _, ok := f.byID[u.ID]; !ok {
		return ErrNotFound
	}
	f.byID[u.ID] = u
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	u, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.IsActive = false
	return nil
}

// plainHasher avoids bcrypt cost in unit tests.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (plainHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

func newTestService() Service {
	return NewService(newFakeRepo(), plainHasher{})
}

func TestRegisterFirstUserBecomesAdmin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Register(ctx, "boss@wonder-events.de", "supersecret", "Boss")
	require.NoError(t, err)
	assert.True(t, first.IsAdmin)
	assert.True(t, first.IsActive)

	second, err := svc.Register(ctx, "staff@wonder-events.de", "supersecret", "Staff")
	require.NoError(t, err)
	assert.False(t, second.IsAdmin)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "   ", "supersecret", "")
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = svc.Register(ctx, "a@b.de", "short", "")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "boss@wonder-events.de", "supersecret", "")
	require.NoError(t, err)

	// Email matching is case-insensitive.
	_, err = svc.Register(ctx, "BOSS@wonder-events.DE", "supersecret", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "boss@wonder-events.de", "supersecret", "Boss")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		got, err := svc.Login(ctx, "boss@wonder-events.de", "supersecret")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "boss@wonder-events.de", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@wonder-events.de", "supersecret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		inactive := false
		_, err := svc.Update(ctx, u.ID, UpdateUserRequest{IsActive: &inactive})
		require.NoError(t, err)

		_, err = svc.Login(ctx, "boss@wonder-events.de", "supersecret")
		assert.ErrorIs(t, err, ErrInactiveUser)
	})
}

func TestUpdateUser(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "staff@wonder-events.de", "supersecret", "Staff")
	require.NoError(t, err)

	promote := true
	name := "Lead Staff"
	updated, err := svc.Update(ctx, u.ID, UpdateUserRequest{DisplayName: &name, IsAdmin: &promote})
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin)
	require.NotNil(t, updated.DisplayName)
	assert.Equal(t, "Lead Staff", *updated.DisplayName)

	_, err = svc.Update(ctx, "missing", UpdateUserRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}
