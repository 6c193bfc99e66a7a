// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "eats/internal/delivery/context"
	"eats/internal/domain/entity"
	domainerrors "eats/internal/domain/errors"
	"eats/internal/domain/repository"
	"eats/internal/domain/service"
	"eats/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	tokens      service.TokenService
	codes       service.VerificationCodeGenerator
	notifier    service.Notifier
	logger      *slog.Logger
}

// AccountServiceParams holds dependencies for the account service, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	Tokens      service.TokenService
	Codes       service.VerificationCodeGenerator
	Notifier    service.Notifier
	Logger      *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		hasher:      params.Hasher,
		tokens:      params.Tokens,
		codes:       params.Codes,
		notifier:    params.Notifier,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new unverified account and issues its first
// verification code. Account and verification are created in one
// transaction; the email is dispatched only after the commit.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) *usecase.RegisterOutput {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email), slog.Any("role", input.Role))

	var code string
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()
		verificationRepo := repoFactory.VerificationRepo()

		_, err := accountRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			// An account was found, so the address is already in use.
			return domainerrors.ErrEmailTaken.WrapMessage("registration failed")
		}
		if !errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(err, "failed to find account by email")
		}

		hashedPassword, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return errors.Wrap(err, "failed to hash password during registration")
		}

		newAccount := &entity.Account{
			Email:        input.Email,
			PasswordHash: hashedPassword,
			Role:         input.Role,
		}
		if err := accountRepo.Create(ctx, newAccount); err != nil {
			return errors.Wrap(err, "failed to create account during registration")
		}

		verification := &entity.Verification{
			Code:      srv.codes.Generate(),
			AccountID: newAccount.ID,
		}
		if err := verificationRepo.Create(ctx, verification); err != nil {
			return errors.Wrap(err, "failed to create verification during registration")
		}
		code = verification.Code

		return nil
	})

	if err != nil {
		if errors.Is(err, domainerrors.ErrEmailTaken) {
			srv.log(ctx).Warn("Registration rejected, email in use", slog.String("email", input.Email))

			return &usecase.RegisterOutput{Result: usecase.Fail(domainerrors.ErrEmailTaken.Message())}
		}

		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("email", input.Email), slog.Any("error", err))

		return &usecase.RegisterOutput{Result: usecase.Fail(domainerrors.ErrAccountCreationFailed.Message())}
	}

	srv.dispatchVerificationEmail(ctx, input.Email, code)
	srv.log(ctx).Debug("Registration completed", slog.String("email", input.Email))

	return &usecase.RegisterOutput{Result: usecase.Succeed()}
}

// Login checks the password against the stored hash and issues a bearer
// token. Only the credentials projection is loaded; no other account
// fields are available mid-flow.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) *usecase.LoginOutput {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	creds, err := srv.accountRepo.FindCredentialsByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return &usecase.LoginOutput{Result: usecase.Fail(domainerrors.ErrAccountNotFound.Message())}
		}

		srv.log(ctx).Error("Failed to load credentials", slog.String("email", input.Email), slog.Any("error", err))

		return &usecase.LoginOutput{Result: usecase.Fail(err.Error())}
	}

	if !srv.hasher.Check(input.Password, creds.PasswordHash) {
		srv.log(ctx).Warn("Login rejected, password mismatch", slog.String("email", input.Email))

		return &usecase.LoginOutput{Result: usecase.Fail(domainerrors.ErrWrongPassword.Message())}
	}

	token, err := srv.tokens.Sign(creds.AccountID)
	if err != nil {
		srv.log(ctx).Error("Failed to sign token", slog.Any("accountID", creds.AccountID), slog.Any("error", err))

		return &usecase.LoginOutput{Result: usecase.Fail(err.Error())}
	}

	return &usecase.LoginOutput{Result: usecase.Succeed(), Token: token}
}

// GetProfile loads an account by id. Any failure, including an unknown id,
// collapses into the same user-facing message.
func (srv *accountService) GetProfile(ctx context.Context, accountID uuid.UUID) *usecase.ProfileOutput {
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Error("Failed to load profile", slog.Any("accountID", accountID), slog.Any("error", err))
		}

		return &usecase.ProfileOutput{Result: usecase.Fail(domainerrors.ErrAccountNotFound.Message())}
	}

	return &usecase.ProfileOutput{Result: usecase.Succeed(), Account: usecase.NewAccountView(account)}
}

// EditProfile applies email and/or password changes to the caller's
// account. Changing the email resets the verified flag, deletes any
// pending verification and creates a fresh one, all before the account
// save, so a concurrent read never observes verified=false without a live
// verification. The new code is mailed only after the commit.
func (srv *accountService) EditProfile(ctx context.Context, accountID uuid.UUID, input *usecase.EditProfileInput) *usecase.EditProfileOutput {
	srv.log(ctx).Info("Starting profile edit", slog.Any("accountID", accountID))

	var notifyEmail, notifyCode string
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()
		verificationRepo := repoFactory.VerificationRepo()

		account, err := accountRepo.FindByID(ctx, accountID)
		if err != nil {
			return errors.Wrap(err, "failed to load account for profile edit")
		}

		if input.Email != nil && *input.Email != "" && *input.Email != account.Email {
			account.Email = *input.Email
			account.Verified = false

			if err := verificationRepo.DeleteByAccountID(ctx, account.ID); err != nil {
				return errors.Wrap(err, "failed to delete superseded verification")
			}

			verification := &entity.Verification{
				Code:      srv.codes.Generate(),
				AccountID: account.ID,
			}
			if err := verificationRepo.Create(ctx, verification); err != nil {
				return errors.Wrap(err, "failed to create verification for new email")
			}

			notifyEmail = account.Email
			notifyCode = verification.Code
		}

		if input.Password != nil && *input.Password != "" {
			hashedPassword, err := srv.hasher.Hash(*input.Password)
			if err != nil {
				return errors.Wrap(err, "failed to hash new password")
			}
			account.PasswordHash = hashedPassword
		}

		return accountRepo.Update(ctx, account)
	})

	if err != nil {
		srv.log(ctx).Error("Failed to execute profile edit transaction", slog.Any("accountID", accountID), slog.Any("error", err))

		return &usecase.EditProfileOutput{Result: usecase.Fail(err.Error())}
	}

	if notifyCode != "" {
		srv.dispatchVerificationEmail(ctx, notifyEmail, notifyCode)
	}

	return &usecase.EditProfileOutput{Result: usecase.Succeed()}
}

// VerifyEmail redeems a one-time verification code: the owning account is
// marked verified and the record deleted in the same transaction, so the
// same code can never succeed twice.
func (srv *accountService) VerifyEmail(ctx context.Context, code string) *usecase.VerifyEmailOutput {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()
		verificationRepo := repoFactory.VerificationRepo()

		verification, err := verificationRepo.FindByCode(ctx, code, true)
		if err != nil {
			if errors.Is(err, repository.ErrVerificationNotFound) {
				return err
			}

			return errors.Wrap(err, "failed to find verification by code")
		}

		account := verification.Account
		account.Verified = true
		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to mark account verified")
		}

		return verificationRepo.DeleteByID(ctx, verification.ID)
	})

	if err != nil {
		if errors.Is(err, repository.ErrVerificationNotFound) {
			return &usecase.VerifyEmailOutput{Result: usecase.Fail(domainerrors.ErrVerificationNotFound.Message())}
		}

		srv.log(ctx).Error("Failed to execute verification transaction", slog.Any("error", err))

		return &usecase.VerifyEmailOutput{Result: usecase.Fail(err.Error())}
	}

	return &usecase.VerifyEmailOutput{Result: usecase.Succeed()}
}

// dispatchVerificationEmail sends the code on its own goroutine. Delivery
// is best-effort: a send failure is logged and never fails the operation
// that triggered it.
func (srv *accountService) dispatchVerificationEmail(ctx context.Context, email, code string) {
	logger := srv.log(ctx)
	sendCtx := context.WithoutCancel(ctx)

	go func() {
		if err := srv.notifier.SendVerificationEmail(sendCtx, email, code); err != nil {
			logger.Warn("Failed to send verification email", slog.String("email", email), slog.Any("error", err))
		}
	}()
}
