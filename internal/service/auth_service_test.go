package service

import (
	"context"
	"testing"

	"notestash/internal/contract"
	cognitoclient "notestash/internal/infrastructure/aws/cognito"
	"notestash/internal/utils/apierror"
	"notestash/internal/utils/validators"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/go-playground/validator/v10"
)

type fakeCognito struct {
	signUpErr error
	signInErr error
	signUps   []string
}

func (f *fakeCognito) SignUp(_ context.Context, email, _ string) (string, error) {
	if f.signUpErr != nil {
		return "", f.signUpErr
	}
	f.signUps = append(f.signUps, email)
	return "sub-" + email, nil
}

func (f *fakeCognito) SignIn(_ context.Context, _, _ string) (*cognitoclient.AuthTokens, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return &cognitoclient.AuthTokens{IDToken: "id", AccessToken: "access"}, nil
}

func (f *fakeCognito) ConfirmAccount(_ context.Context, _, _ string) error {
	return nil
}

func (f *fakeCognito) ResendConfirmation(_ context.Context, _ string) error {
	return nil
}

func newAuthValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("hasupper", validators.HasUpper)
	_ = v.RegisterValidation("haslower", validators.HasLower)
	_ = v.RegisterValidation("hasdigit", validators.HasDigit)
	_ = v.RegisterValidation("hasspecial", validators.HasSpecial)
	_ = v.RegisterValidation("nospaces", validators.NoWhiteSpaces)
	return v
}

func TestSignUpDelegatesToProvider(t *testing.T) {
	cog := &fakeCognito{}
	svc := NewAuthService(cog, newAuthValidator())

	apierr := svc.SignUp(context.Background(), &contract.SignUpRequest{
		Email:    "user@example.com",
		Password: "Sup3rS3cret!",
	})
	if apierr != nil {
		t.Fatalf("SignUp failed: %+v", apierr)
	}
	if len(cog.signUps) != 1 || cog.signUps[0] != "user@example.com" {
		t.Fatalf("provider not called as expected: %v", cog.signUps)
	}
}

func TestSignUpRejectsWeakPasswordBeforeProvider(t *testing.T) {
	cog := &fakeCognito{}
	svc := NewAuthService(cog, newAuthValidator())

	apierr := svc.SignUp(context.Background(), &contract.SignUpRequest{
		Email:    "user@example.com",
		Password: "weak",
	})
	if apierr == nil {
		t.Fatal("expected validation failure")
	}
	if apierr.Code() != 400 {
		t.Errorf("expected status 400, got %d", apierr.Code())
	}
	if len(cog.signUps) != 0 {
		t.Error("provider must not be called on invalid input")
	}
}

func TestLoginMapsProviderErrors(t *testing.T) {
	cog := &fakeCognito{signInErr: &types.NotAuthorizedException{}}
	svc := NewAuthService(cog, newAuthValidator())

	_, apierr := svc.Login(context.Background(), &contract.LoginRequest{
		Email:    "user@example.com",
		Password: "Sup3rS3cret!",
	})
	if apierr != apierror.IDPCredentialsMismatchError {
		t.Fatalf("expected credentials mismatch, got %+v", apierr)
	}
}

func TestLoginReturnsTokens(t *testing.T) {
	svc := NewAuthService(&fakeCognito{}, newAuthValidator())

	tokens, apierr := svc.Login(context.Background(), &contract.LoginRequest{
		Email:    "user@example.com",
		Password: "Sup3rS3cret!",
	})
	if apierr != nil {
		t.Fatalf("Login failed: %+v", apierr)
	}
	if tokens.AccessToken != "access" || tokens.IDToken != "id" {
		t.Fatalf("unexpected tokens: %+v", tokens)
	}
}
