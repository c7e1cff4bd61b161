package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/certtracker/internal/domain/auth"
	"github.com/cmlabs-hris/certtracker/internal/domain/company"
	"github.com/cmlabs-hris/certtracker/internal/domain/user"
	"github.com/cmlabs-hris/certtracker/internal/pkg/database"
	"github.com/cmlabs-hris/certtracker/internal/pkg/jwt"
	"github.com/cmlabs-hris/certtracker/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx database.Transactor
	user.UserRepository
	directory company.Directory
	jwt.Service
	auth.RefreshTokenRepository
	demoEnabled bool
}

func NewAuthService(
	tx database.Transactor,
	userRepository user.UserRepository,
	directory company.Directory,
	jwtService jwt.Service,
	refreshTokenRepository auth.RefreshTokenRepository,
	demoEnabled bool,
) auth.AuthService {
	return &AuthServiceImpl{
		tx:                     tx,
		UserRepository:         userRepository,
		directory:              directory,
		Service:                jwtService,
		RefreshTokenRepository: refreshTokenRepository,
		demoEnabled:            demoEnabled,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService. Checks run in a fixed order and the
// first failure is returned. Everything happens in one transaction, so a
// late failure also discards a company registered earlier in the sequence.
func (a *AuthServiceImpl) Register(ctx context.Context, registerReq auth.RegisterRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := registerReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	var tokenResponse auth.TokenResponse
	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var (
			role        user.Role
			companyCode string
			managerCode *string
		)

		if registerReq.FoundingNewCompany {
			created, err := a.directory.RegisterCompany(ctx, registerReq.CompanyCode, registerReq.CompanyName, registerReq.Email)
			if err != nil {
				return err
			}
			role = user.RoleAdmin
			companyCode = created.Code
		} else {
			var err error
			role, companyCode, managerCode, err = a.resolveJoin(ctx, registerReq)
			if err != nil {
				return err
			}
		}

		_, err := a.UserRepository.GetByEmail(ctx, registerReq.Email)
		switch {
		case err == nil:
			return user.ErrDuplicateEmail
		case !errors.Is(err, user.ErrUserNotFound):
			return fmt.Errorf("failed to get user data by email: %w", err)
		}

		hashedPassword, err := a.hashPassword(registerReq.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		newUser, err := a.UserRepository.Create(ctx, user.User{
			Email:        registerReq.Email,
			Name:         registerReq.Name,
			PasswordHash: hashedPassword,
			Role:         role,
			CompanyCode:  companyCode,
			ManagerCode:  managerCode,
		})
		if err != nil {
			if errors.Is(err, user.ErrDuplicateEmail) {
				return err
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		tokenResponse, err = a.issueTokens(ctx, newUser.Actor(), sessionTrackReq)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	slog.Info("User registered", "user_id", tokenResponse.Actor.ID, "role", tokenResponse.Actor.Role, "company_code", tokenResponse.Actor.CompanyCode)
	return tokenResponse, nil
}

// resolveJoin validates the join path. It only reads the directory.
func (a *AuthServiceImpl) resolveJoin(ctx context.Context, req auth.RegisterRequest) (user.Role, string, *string, error) {
	if validator.IsEmpty(req.CompanyCode) {
		return "", "", nil, company.ErrInvalidCompanyCode
	}
	c, err := a.directory.LookupCompany(ctx, req.CompanyCode)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return "", "", nil, company.ErrInvalidCompanyCode
		}
		return "", "", nil, fmt.Errorf("failed to lookup company: %w", err)
	}

	role := req.RequestedRole()
	if role != user.RoleManager && role != user.RoleEmployee {
		return "", "", nil, user.ErrInvalidRole
	}

	managerCode := company.NormalizeCodePtr(req.ManagerCode)
	if managerCode == nil {
		return "", "", nil, validator.Required("manager_code")
	}

	if _, err := a.directory.LookupManagerCode(ctx, c.Code, *managerCode); err != nil {
		if errors.Is(err, company.ErrManagerCodeNotFound) {
			return "", "", nil, company.ErrInvalidManagerCode
		}
		return "", "", nil, fmt.Errorf("failed to lookup manager code: %w", err)
	}

	return role, c.Code, managerCode, nil
}

// Authenticate implements auth.AuthService.
func (a *AuthServiceImpl) Authenticate(ctx context.Context, email, password string) (user.Actor, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.Actor{}, auth.ErrInvalidCredentials
		}
		return user.Actor{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == "" {
		return user.Actor{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(password)); err != nil {
		return user.Actor{}, auth.ErrInvalidCredentials
	}

	return userData.Actor(), nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	actor, err := a.Authenticate(ctx, loginReq.Email, loginReq.Password)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	var tokenResponse auth.TokenResponse
	err = a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		tokenResponse, err = a.issueTokens(ctx, actor, sessionTrackReq)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return tokenResponse, nil
}

// Demo implements auth.AuthService. Demo sessions carry no refresh token.
func (a *AuthServiceImpl) Demo(ctx context.Context) (auth.TokenResponse, error) {
	if !a.demoEnabled {
		return auth.TokenResponse{}, auth.ErrDemoDisabled
	}

	actor := user.DemoActor()
	accessToken, expiresAt, err := a.Service.GenerateAccessToken(actor)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: expiresAt,
		Actor:                user.NewActorResponse(actor),
	}, nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	userID, err := a.Service.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	isRevoked, err := a.RefreshTokenRepository.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if isRevoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrInvalidToken
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	var resp auth.AccessTokenResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.Actor())
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return resp, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if err := a.RefreshTokenRepository.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	a.Service.RevokeToken(refreshToken)
	return nil
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, actor user.Actor, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var (
		tokenResponse auth.TokenResponse
		err           error
	)

	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(actor)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(actor.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}
	err = a.RefreshTokenRepository.CreateRefreshToken(ctx, actor.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, sessionTrackReq)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to save refresh token: %w", err)
	}
	tokenResponse.Actor = user.NewActorResponse(actor)
	return tokenResponse, nil
}
