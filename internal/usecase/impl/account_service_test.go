package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"eats/internal/domain/entity"
	"eats/internal/domain/repository"
	mockRepo "eats/internal/mocks/repository"
	mockSvc "eats/internal/mocks/service"
	"eats/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type accountServiceMocks struct {
	tx            *mockRepo.MockTransactionManager
	factory       *mockRepo.MockRepositoryFactory
	accounts      *mockRepo.MockAccountRepository
	verifications *mockRepo.MockVerificationRepository
	hasher        *mockSvc.MockPasswordHasher
	tokens        *mockSvc.MockTokenService
	codes         *mockSvc.MockVerificationCodeGenerator
	notifier      *mockSvc.MockNotifier
}

func newAccountServiceForTest(t *testing.T) (usecase.AccountUsecase, *accountServiceMocks) {
	m := &accountServiceMocks{
		tx:            mockRepo.NewMockTransactionManager(t),
		factory:       mockRepo.NewMockRepositoryFactory(t),
		accounts:      mockRepo.NewMockAccountRepository(t),
		verifications: mockRepo.NewMockVerificationRepository(t),
		hasher:        mockSvc.NewMockPasswordHasher(t),
		tokens:        mockSvc.NewMockTokenService(t),
		codes:         mockSvc.NewMockVerificationCodeGenerator(t),
		notifier:      mockSvc.NewMockNotifier(t),
	}

	service := NewAccountService(AccountServiceParams{
		TxManager:   m.tx,
		AccountRepo: m.accounts,
		Hasher:      m.hasher,
		Tokens:      m.tokens,
		Codes:       m.codes,
		Notifier:    m.notifier,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return service, m
}

// passThroughTx makes the transaction manager run the given function
// against the mock factory, as a committed transaction would.
func passThroughTx(ctx context.Context, m *accountServiceMocks) {
	m.factory.EXPECT().AccountRepo().Return(m.accounts)
	m.factory.EXPECT().VerificationRepo().Return(m.verifications)
	m.tx.EXPECT().
		Execute(ctx, mock.Anything).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(m.factory)
		})
}

// expectVerificationEmail registers the notifier expectation and returns a
// channel that closes once the email goroutine has fired.
func expectVerificationEmail(m *accountServiceMocks, email, code string) chan struct{} {
	sent := make(chan struct{})
	m.notifier.EXPECT().
		SendVerificationEmail(mock.Anything, email, code).
		Run(func(ctx context.Context, email string, code string) {
			close(sent)
		}).
		Return(nil)

	return sent
}

func waitForEmail(t *testing.T, sent chan struct{}) {
	t.Helper()
	select {
	case <-sent:
	case <-time.After(time.Second):
		t.Fatal("verification email was not dispatched")
	}
}

func TestAccountService_Register_Success(t *testing.T) {
	service, m := newAccountServiceForTest(t)

	ctx := context.Background()
	passThroughTx(ctx, m)

	m.accounts.EXPECT().
		FindByEmail(ctx, "owner@example.com").
		Return(nil, repository.ErrAccountNotFound)

	m.hasher.EXPECT().Hash("hunter22").Return("$2a$hashed", nil)

	m.accounts.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(ctx context.Context, account *entity.Account) {
			assert.Equal(t, "owner@example.com", account.Email)
			assert.Equal(t, "$2a$hashed", account.PasswordHash)
			assert.Equal(t, entity.RoleOwner, account.Role)
			assert.False(t, account.Verified)
		}).
		Return(nil)

	m.codes.EXPECT().Generate().Return("code-123")
	m.verifications.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Verification")).
		Run(func(ctx context.Context, verification *entity.Verification) {
			assert.Equal(t, "code-123", verification.Code)
		}).
		Return(nil)

	sent := expectVerificationEmail(m, "owner@example.com", "code-123")

	output := service.Register(ctx, &usecase.RegisterInput{
		Email:    "owner@example.com",
		Password: "hunter22",
		Role:     entity.RoleOwner,
	})

	require.NotNil(t, output)
	assert.True(t, output.OK)
	assert.Empty(t, output.Error)
	waitForEmail(t, sent)
}

func TestAccountService_Register_EmailTaken(t *testing.T) {
	service, m := newAccountServiceForTest(t)

	ctx := context.Background()
	passThroughTx(ctx, m)

	existing := &entity.Account{ID: uuid.New(), Email: "owner@example.com"}
	m.accounts.EXPECT().
		FindByEmail(ctx, "owner@example.com").
		Return(existing, nil)

	output := service.Register(ctx, &usecase.RegisterInput{
		Email:    "owner@example.com",
		Password: "hunter22",
		Role:     entity.RoleClient,
	})

	require.NotNil(t, output)
	assert.False(t, output.OK)
	assert.Equal(t, "The email has taken already", output.Error)
	m.notifier.AssertNotCalled(t, "SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountService_Login_Success(t *testing.T) {
	service, m := newAccountServiceForTest(t)

	ctx := context.Background()
	accountID := uuid.New()

	m.accounts.EXPECT().
		FindCredentialsByEmail(ctx, "client@example.com").
		Return(&entity.Credentials{AccountID: accountID, PasswordHash: "$2a$hashed"}, nil)

	m.hasher.EXPECT().Check("hunter22", "$2a$hashed").Return(true)
	m.tokens.EXPECT().Sign(accountID).Return("signed-token", nil)

	output := service.Login(ctx, &usecase.LoginInput{
		Email:    "client@example.com",
		Password: "hunter22",
	})

	require.NotNil(t, output)
	assert.True(t, output.OK)
	assert.Equal(t, "signed-token", output.Token)
}

func TestAccountService_Login_UnknownEmail(t *testing.T) {
	service, m := newAccountServiceForTest(t)

	ctx := context.Background()
	m.accounts.EXPECT().
		FindCredentialsByEmail(ctx, "nobody@example.com").
		Return(nil, repository.ErrAccountNotFound)

	output := service.Login(ctx, &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "hunter22",
	})

	require.NotNil(t, output)
	assert.False(t, output.OK)
	assert.Equal(t, "User not found", output.Error)
	assert.Empty(t, output.Token)
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	service, m := newAccountServiceForTest(t)

	ctx := context.Background()
	accountID := uuid.New()

	m.accounts.EXPECT().
		FindCredentialsByEmail(ctx, "client@example.com").
		Return(&entity.Credentials{AccountID: accountID, PasswordHash: "$2a$hashed"}, nil)

	m.hasher.EXPECT().Check("wrong", "$2a$hashed").Return(false)

	output := service.Login(ctx, &usecase.LoginInput{
		Email:    "client@example.com",
		Password: "wrong",
	})

	require.NotNil(t, output)
	assert.False(t, output.OK)
	assert.Equal(t, "Wrong password", output.Error)
}

func TestAccountService_GetProfile_Success(t *testing.T) {
	service, m := newAccountServiceForTest(t)

	ctx := context.Background()
	accountID := uuid.New()
	account := &entity.Account{
		ID:           accountID,
		Email:        "delivery@example.com",
		PasswordHash: "$2a$hashed",
		Role:         entity.RoleDelivery,
		Verified:     true,
	}

	m.accounts.EXPECT().FindByID(ctx, accountID).Return(account, nil)

	output := service.GetProfile(ctx, accountID)

	require.NotNil(t, output)
	assert.True(t, output.OK)
	require.NotNil(t, output.Account)
	assert.Equal(t, accountID, output.Account.ID)
	assert.Equal(t, "delivery@example.com", output.Account.Email)
	assert.Equal(t, entity.RoleDelivery, output.Account.Role)
	assert.True(t, output.Account.Verified)
}

func TestAccountService_GetProfile_NotFound(t *testing.T) {
	service, m := newAccountServiceForTest(t)

	ctx := context.Background()
	accountID := uuid.New()

	m.accounts.EXPECT().FindByID(ctx, accountID).Return(nil, repository.ErrAccountNotFound)

	output := service.GetProfile(ctx, accountID)

	require.NotNil(t, output)
	assert.False(t, output.OK)
	assert.Equal(t, "User not found", output.Error)
	assert.Nil(t, output.Account)
}

func TestAccountService_EditProfile_ChangeEmail(t *testing.T) {
	service, m := newAccountServiceForTest(t)

	ctx := context.Background()
	accountID := uuid.New()
	passThroughTx(ctx, m)

	account := &entity.Account{
		ID:       accountID,
		Email:    "old@example.com",
		Role:     entity.RoleClient,
		Verified: true,
	}

	m.accounts.EXPECT().FindByID(ctx, accountID).Return(account, nil)
	m.verifications.EXPECT().DeleteByAccountID(ctx, accountID).Return(nil)
	m.codes.EXPECT().Generate().Return("fresh-code")
	m.verifications.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Verification")).
		Run(func(ctx context.Context, verification *entity.Verification) {
			assert.Equal(t, "fresh-code", verification.Code)
			assert.Equal(t, accountID, verification.AccountID)
		}).
		Return(nil)

	m.accounts.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(ctx context.Context, updated *entity.Account) {
			assert.Equal(t, "new@example.com", updated.Email)
			assert.False(t, updated.Verified)
		}).
		Return(nil)

	sent := expectVerificationEmail(m, "new@example.com", "fresh-code")

	newEmail := "new@example.com"
	output := service.EditProfile(ctx, accountID, &usecase.EditProfileInput{Email: &newEmail})

	require.NotNil(t, output)
	assert.True(t, output.OK)
	waitForEmail(t, sent)
}

func TestAccountService_EditProfile_ChangePassword(t *testing.T) {
	service, m := newAccountServiceForTest(t)

	ctx := context.Background()
	accountID := uuid.New()
	passThroughTx(ctx, m)

	account := &entity.Account{
		ID:       accountID,
		Email:    "client@example.com",
		Role:     entity.RoleClient,
		Verified: true,
	}

	m.accounts.EXPECT().FindByID(ctx, accountID).Return(account, nil)
	m.hasher.EXPECT().Hash("new-password").Return("$2a$rehashed", nil)
	m.accounts.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(ctx context.Context, updated *entity.Account) {
			assert.Equal(t, "$2a$rehashed", updated.PasswordHash)
			// A password change must not touch verification state.
			assert.True(t, updated.Verified)
			assert.Equal(t, "client@example.com", updated.Email)
		}).
		Return(nil)

	newPassword := "new-password"
	output := service.EditProfile(ctx, accountID, &usecase.EditProfileInput{Password: &newPassword})

	require.NotNil(t, output)
	assert.True(t, output.OK)
	m.notifier.AssertNotCalled(t, "SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountService_EditProfile_SameEmailNoReset(t *testing.T) {
	service, m := newAccountServiceForTest(t)

	ctx := context.Background()
	accountID := uuid.New()
	passThroughTx(ctx, m)

	account := &entity.Account{
		ID:       accountID,
		Email:    "client@example.com",
		Role:     entity.RoleClient,
		Verified: true,
	}

	m.accounts.EXPECT().FindByID(ctx, accountID).Return(account, nil)
	m.accounts.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(ctx context.Context, updated *entity.Account) {
			assert.True(t, updated.Verified)
		}).
		Return(nil)

	sameEmail := "client@example.com"
	output := service.EditProfile(ctx, accountID, &usecase.EditProfileInput{Email: &sameEmail})

	require.NotNil(t, output)
	assert.True(t, output.OK)
	m.verifications.AssertNotCalled(t, "DeleteByAccountID", mock.Anything, mock.Anything)
	m.verifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.notifier.AssertNotCalled(t, "SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountService_VerifyEmail_Success(t *testing.T) {
	service, m := newAccountServiceForTest(t)

	ctx := context.Background()
	accountID := uuid.New()
	verificationID := uuid.New()
	passThroughTx(ctx, m)

	verification := &entity.Verification{
		ID:        verificationID,
		Code:      "code-123",
		AccountID: accountID,
		Account: &entity.Account{
			ID:       accountID,
			Email:    "owner@example.com",
			Role:     entity.RoleOwner,
			Verified: false,
		},
	}

	m.verifications.EXPECT().FindByCode(ctx, "code-123", true).Return(verification, nil)
	m.accounts.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(ctx context.Context, updated *entity.Account) {
			assert.Equal(t, accountID, updated.ID)
			assert.True(t, updated.Verified)
		}).
		Return(nil)
	m.verifications.EXPECT().DeleteByID(ctx, verificationID).Return(nil)

	output := service.VerifyEmail(ctx, "code-123")

	require.NotNil(t, output)
	assert.True(t, output.OK)
}

func TestAccountService_VerifyEmail_UnknownCode(t *testing.T) {
	service, m := newAccountServiceForTest(t)

	ctx := context.Background()
	passThroughTx(ctx, m)

	m.verifications.EXPECT().
		FindByCode(ctx, "stale-code", true).
		Return(nil, repository.ErrVerificationNotFound)

	output := service.VerifyEmail(ctx, "stale-code")

	require.NotNil(t, output)
	assert.False(t, output.OK)
	assert.Equal(t, "Verification doesn't exist", output.Error)
}
