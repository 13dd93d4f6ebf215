package withdrawalrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

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

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		request   *domain.WithdrawalRequest
		mockSetup func()
		expectErr bool
	}{
		{
			name:    "Creates a pending request",
			request: &domain.WithdrawalRequest{UserID: 1, Amount: 25000, IBAN: "DE89370400440532013000", Status: domain.WithdrawalPending},
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "created_at"}).AddRow(5, now)
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO withdrawal_requests`)).
					WithArgs(1, int64(25000), "DE89370400440532013000", domain.WithdrawalPending).
					WillReturnRows(rows)
			},
		},
		{
			name:    "Insert failure",
			request: &domain.WithdrawalRequest{UserID: 1, Amount: 25000, IBAN: "DE89370400440532013000", Status: domain.WithdrawalPending},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO withdrawal_requests`)).
					WithArgs(1, int64(25000), "DE89370400440532013000", domain.WithdrawalPending).
					WillReturnError(errors.New("insert failed"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			request, err := repo.Create(context.Background(), tt.request)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 5, request.ID)
				assert.Equal(t, now, request.CreatedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Review(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	reviewer := 9

	tests := []struct {
		name      string
		to        domain.WithdrawalStatus
		mockSetup func()
		expectNil bool
		expectErr bool
	}{
		{
			name: "Pending request is approved",
			to:   domain.WithdrawalApproved,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "user_id", "amount", "iban", "status", "reviewed_by", "reviewed_at", "created_at"}).
					AddRow(5, 1, int64(25000), "DE89370400440532013000", domain.WithdrawalApproved, &reviewer, &now, now)
				mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1 AND status = 'PENDING'`)).
					WithArgs(5, domain.WithdrawalApproved, 9).
					WillReturnRows(rows)
			},
		},
		{
			name: "Already reviewed request is not touched",
			to:   domain.WithdrawalRejected,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1 AND status = 'PENDING'`)).
					WithArgs(5, domain.WithdrawalRejected, 9).
					WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "amount", "iban", "status", "reviewed_by", "reviewed_at", "created_at"}))
			},
			expectNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			request, err := repo.Review(context.Background(), 5, tt.to, 9)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectNil {
				assert.Nil(t, request)
			} else if !tt.expectErr {
				assert.Equal(t, tt.to, request.Status)
				assert.Equal(t, &reviewer, request.ReviewedBy)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	t.Run("Existing request", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "user_id", "amount", "iban", "status", "reviewed_by", "reviewed_at", "created_at"}).
			AddRow(5, 1, int64(25000), "DE89370400440532013000", domain.WithdrawalPending, (*int)(nil), (*time.Time)(nil), now)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM withdrawal_requests`)).
			WithArgs(5).
			WillReturnRows(rows)

		request, err := repo.GetByID(context.Background(), 5)
		assert.NoError(t, err)
		assert.Equal(t, int64(25000), request.Amount)
		assert.Nil(t, request.ReviewedBy)
	})

	t.Run("Unknown request returns nil", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM withdrawal_requests`)).
			WithArgs(99).
			WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "amount", "iban", "status", "reviewed_by", "reviewed_at", "created_at"}))

		request, err := repo.GetByID(context.Background(), 99)
		assert.NoError(t, err)
		assert.Nil(t, request)
	})
}

func TestRepository_ListByStatus(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "user_id", "amount", "iban", "status", "reviewed_by", "reviewed_at", "created_at"}).
		AddRow(5, 1, int64(25000), "DE89370400440532013000", domain.WithdrawalPending, (*int)(nil), (*time.Time)(nil), now).
		AddRow(6, 2, int64(40000), "GB29NWBK60161331926819", domain.WithdrawalPending, (*int)(nil), (*time.Time)(nil), now)
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE status = $1`)).
		WithArgs(domain.WithdrawalPending, 50, 0).
		WillReturnRows(rows)

	requests, err := repo.ListByStatus(context.Background(), domain.WithdrawalPending, 50, 0)
	assert.NoError(t, err)
	assert.Len(t, requests, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
