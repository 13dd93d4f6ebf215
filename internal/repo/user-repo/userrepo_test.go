package userrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/vbelyaev/escrowd/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	t.Cleanup(mockDB.Close)

	return repo, mockDB
}

func TestRepository_FindByLogin(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		login     string
		mockSetup func()
		expectErr bool
		result    *domain.User
	}{
		{
			name:  "Existing login",
			login: "buyer",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "login", "password_hash", "role"}).
					AddRow(1, "buyer", "hashedPassword", domain.RoleUser)
				mock.ExpectQuery(regexp.QuoteMeta(`WHERE login = $1`)).
					WithArgs("buyer").
					WillReturnRows(rows)
			},
			result: &domain.User{ID: 1, Login: "buyer", PasswordHash: "hashedPassword", Role: domain.RoleUser},
		},
		{
			name:  "Unknown login returns nil",
			login: "nobody",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`WHERE login = $1`)).
					WithArgs("nobody").
					WillReturnRows(pgxmock.NewRows([]string{"id", "login", "password_hash", "role"}))
			},
		},
		{
			name:  "Query failure",
			login: "buyer",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`WHERE login = $1`)).
					WithArgs("buyer").
					WillReturnError(errors.New("connection refused"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			user, err := repo.FindByLogin(context.Background(), tt.login)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, user)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)

	rows := pgxmock.NewRows([]string{"id", "login", "password_hash", "role"}).
		AddRow(3, "moderator", "hashedPassword", domain.RoleModerator)
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1`)).
		WithArgs(3).
		WillReturnRows(rows)

	user, err := repo.FindByID(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleModerator, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		user      *domain.User
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Creates a user",
			user: &domain.User{Login: "buyer", PasswordHash: "hashedPassword", Role: domain.RoleUser},
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id"}).AddRow(1)
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
					WithArgs("buyer", "hashedPassword", domain.RoleUser).
					WillReturnRows(rows)
			},
		},
		{
			name: "Duplicate login fails",
			user: &domain.User{Login: "buyer", PasswordHash: "hashedPassword", Role: domain.RoleUser},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
					WithArgs("buyer", "hashedPassword", domain.RoleUser).
					WillReturnError(errors.New("duplicate key value violates unique constraint"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			user, err := repo.Create(context.Background(), tt.user)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, user.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
