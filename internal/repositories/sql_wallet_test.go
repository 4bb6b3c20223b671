package repositories

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/catatduit/go-catatduit/internal/common"
	"github.com/catatduit/go-catatduit/internal/config"
	"github.com/catatduit/go-catatduit/internal/models"
)

func TestWalletRepositoryTestSuite(t *testing.T) {
	t.Helper()
	suite.Run(t, new(walletTestSuite))
}

type walletTestSuite struct {
	suite.Suite
	t       *testing.T
	writeDB *sql.DB
	readDB  *sql.DB
	mock    sqlmock.Sqlmock
	repo    WalletRepository
}

func (suite *walletTestSuite) SetupTest() {
	var err error
	var cfg config.Config

	suite.writeDB, suite.mock, err = sqlmock.New()
	require.NoError(suite.T(), err)

	suite.readDB = suite.writeDB
	suite.t = suite.T()

	suite.repo = NewSQLRepository(suite.writeDB, suite.readDB, cfg).GetWalletRepository()
}

func (suite *walletTestSuite) TearDownTest() {
	defer suite.writeDB.Close()
}

var walletColumns = []string{"id", "user_id", "name", "balance", "color_hex", "icon", "created_at"}

func (suite *walletTestSuite) TestRepository_Create() {
	walletID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	type args struct {
		ctx        context.Context
		in         *models.CreateWalletIn
		setupMocks func()
	}

	testCases := []struct {
		name    string
		args    args
		want    *models.Wallet
		wantErr bool
	}{
		{
			name: "test success with defaults",
			args: args{
				ctx: context.Background(),
				in:  &models.CreateWalletIn{UserID: userID, Name: models.DefaultWalletName},
				setupMocks: func() {
					rows := sqlmock.NewRows(walletColumns).
						AddRow(walletID, userID, models.DefaultWalletName, "0", models.DefaultWalletColor, models.DefaultWalletIcon, now)
					suite.mock.ExpectQuery(regexp.QuoteMeta(queryWalletCreate)).
						WithArgs(userID, models.DefaultWalletName, decimal.Zero, models.DefaultWalletColor, models.DefaultWalletIcon).
						WillReturnRows(rows)
				},
			},
			want: &models.Wallet{
				ID:        walletID,
				UserID:    userID,
				Name:      models.DefaultWalletName,
				Balance:   decimal.Zero,
				ColorHex:  models.DefaultWalletColor,
				Icon:      models.DefaultWalletIcon,
				CreatedAt: now,
			},
		},
		{
			name: "test error result",
			args: args{
				ctx: context.TODO(),
				in:  &models.CreateWalletIn{UserID: userID, Name: "Tabungan"},
				setupMocks: func() {
					suite.mock.ExpectQuery(regexp.QuoteMeta(queryWalletCreate)).WillReturnError(assert.AnError)
				},
			},
			wantErr: true,
		},
	}
	for _, tt := range testCases {
		tt := tt
		suite.t.Run(tt.name, func(t *testing.T) {
			tt.args.setupMocks()

			got, err := suite.repo.Create(tt.args.ctx, tt.args.in)
			assert.Equal(t, tt.wantErr, err != nil)
			if tt.want != nil {
				require.NotNil(t, got)
				assert.Equal(t, tt.want.ID, got.ID)
				assert.True(t, tt.want.Balance.Equal(got.Balance))
				assert.Equal(t, tt.want.ColorHex, got.ColorHex)
				assert.Equal(t, tt.want.Icon, got.Icon)
			}

			if err = suite.mock.ExpectationsWereMet(); err != nil {
				t.Errorf("there were unfulfilled expectations: %s", err)
			}
		})
	}
}

func (suite *walletTestSuite) TestRepository_GetByUserAndName() {
	walletID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	type args struct {
		ctx        context.Context
		userID     uuid.UUID
		walletName string
		setupMocks func()
	}

	testCases := []struct {
		name    string
		args    args
		want    *models.Wallet
		wantErr bool
	}{
		{
			name: "test success case insensitive",
			args: args{
				ctx:        context.Background(),
				userID:     userID,
				walletName: "cash",
				setupMocks: func() {
					rows := sqlmock.NewRows(walletColumns).
						AddRow(walletID, userID, "Cash", "150000", "#16A085", "wallet", now)
					suite.mock.ExpectQuery(regexp.QuoteMeta(queryWalletGetByUserAndName)).
						WithArgs(userID, "cash").
						WillReturnRows(rows)
				},
			},
			want: &models.Wallet{
				ID:        walletID,
				UserID:    userID,
				Name:      "Cash",
				Balance:   decimal.NewFromInt(150000),
				ColorHex:  "#16A085",
				Icon:      "wallet",
				CreatedAt: now,
			},
		},
		{
			name: "test data not found",
			args: args{
				ctx:        context.Background(),
				userID:     userID,
				walletName: "Dompet Lain",
				setupMocks: func() {
					suite.mock.ExpectQuery(regexp.QuoteMeta(queryWalletGetByUserAndName)).
						WithArgs(userID, "Dompet Lain").
						WillReturnError(sql.ErrNoRows)
				},
			},
			want:    nil,
			wantErr: false,
		},
	}
	for _, tt := range testCases {
		tt := tt
		suite.t.Run(tt.name, func(t *testing.T) {
			tt.args.setupMocks()

			got, err := suite.repo.GetByUserAndName(tt.args.ctx, tt.args.userID, tt.args.walletName)
			assert.Equal(t, tt.wantErr, err != nil)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, tt.want.Name, got.Name)
				assert.True(t, tt.want.Balance.Equal(got.Balance))
			}

			if err = suite.mock.ExpectationsWereMet(); err != nil {
				t.Errorf("there were unfulfilled expectations: %s", err)
			}
		})
	}
}

func (suite *walletTestSuite) TestRepository_AddBalance() {
	walletID := uuid.New()

	type args struct {
		ctx        context.Context
		delta      decimal.Decimal
		setupMocks func()
	}

	testCases := []struct {
		name    string
		args    args
		wantErr error
	}{
		{
			name: "test success debit",
			args: args{
				ctx:   context.Background(),
				delta: decimal.NewFromInt(-15000),
				setupMocks: func() {
					suite.mock.ExpectExec(regexp.QuoteMeta(queryWalletAddBalance)).
						WithArgs(decimal.NewFromInt(-15000), walletID).
						WillReturnResult(sqlmock.NewResult(0, 1))
				},
			},
		},
		{
			name: "test wallet missing",
			args: args{
				ctx:   context.Background(),
				delta: decimal.NewFromInt(5000),
				setupMocks: func() {
					suite.mock.ExpectExec(regexp.QuoteMeta(queryWalletAddBalance)).
						WithArgs(decimal.NewFromInt(5000), walletID).
						WillReturnResult(sqlmock.NewResult(0, 0))
				},
			},
			wantErr: common.ErrNoRowsAffected,
		},
	}
	for _, tt := range testCases {
		tt := tt
		suite.t.Run(tt.name, func(t *testing.T) {
			tt.args.setupMocks()

			err := suite.repo.AddBalance(tt.args.ctx, walletID, tt.args.delta)
			assert.Equal(t, tt.wantErr, err)

			if err = suite.mock.ExpectationsWereMet(); err != nil {
				t.Errorf("there were unfulfilled expectations: %s", err)
			}
		})
	}
}
