package service

import (
	"context"
	"notestash/internal/contract"
	cognitoclient "notestash/internal/infrastructure/aws/cognito"
	"notestash/internal/utils"
	"notestash/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
)

// AuthService is a thin passthrough to the identity provider. There is no
// local user table: the Cognito sub IS the owner id, so account state lives
// entirely on the provider side.
type AuthService struct {
	Cognito  cognitoclient.CognitoInterface
	Validate *validator.Validate
}

func NewAuthService(cognito cognitoclient.CognitoInterface, validate *validator.Validate) *AuthService {
	return &AuthService{
		Cognito:  cognito,
		Validate: validate,
	}
}

func (a *AuthService) SignUp(ctx context.Context, req *contract.SignUpRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	_, err := a.Cognito.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return utils.MapCognitoError(err)
	}
	return nil
}

func (a *AuthService) Login(ctx context.Context, req *contract.LoginRequest) (*contract.LoginResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	tokens, err := a.Cognito.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, utils.MapCognitoError(err)
	}
	return &contract.LoginResponse{
		AccessToken: tokens.AccessToken,
		IDToken:     tokens.IDToken,
	}, nil
}

func (a *AuthService) ConfirmSignup(ctx context.Context, req *contract.ConfirmSignupRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	if err := a.Cognito.ConfirmAccount(ctx, req.Email, req.Code); err != nil {
		return utils.MapCognitoError(err)
	}
	return nil
}

func (a *AuthService) ResendConfirmation(ctx context.Context, req *contract.ResendConfirmRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	if err := a.Cognito.ResendConfirmation(ctx, req.Email); err != nil {
		return utils.MapCognitoError(err)
	}
	return nil
}
