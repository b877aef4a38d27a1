package cognitoclient

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// AuthTokens represents the response of a successful Cognito sign in.
type AuthTokens struct {
	IDToken     string `json:"id_token"`
	AccessToken string `json:"access_token"`
}

type CognitoInterface interface {
	SignUp(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string) (*AuthTokens, error)
	ConfirmAccount(ctx context.Context, email, code string) error
	ResendConfirmation(ctx context.Context, email string) error
}

type cognitoClient struct {
	client      *cognito.Client
	appClientID string
}

func InitCognitoClient() (CognitoInterface, error) {
	region := os.Getenv("AWS_COGNITO_REGION")
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, err
	}

	return &cognitoClient{
		client:      cognito.NewFromConfig(cfg),
		appClientID: os.Getenv("COGNITO_APP_CLIENT_ID"),
	}, nil
}

// SignUp creates a new user row on Cognito and returns its "sub" (the UUID).
// The sub is the owner id every note of this user will be keyed by.
func (c *cognitoClient) SignUp(ctx context.Context, email, password string) (string, error) {
	out, err := c.client.SignUp(ctx, &cognito.SignUpInput{
		ClientId: aws.String(c.appClientID),
		Username: aws.String(email),
		Password: aws.String(password),
		UserAttributes: []types.AttributeType{
			{
				Name:  aws.String("email"),
				Value: aws.String(email),
			},
		},
	})
	if err != nil {
		return "", err
	}
	return *out.UserSub, nil
}

// SignIn signs the user in... pretty straightforward
func (c *cognitoClient) SignIn(ctx context.Context, email, password string) (*AuthTokens, error) {
	result, err := c.client.InitiateAuth(ctx, &cognito.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
		ClientId: aws.String(c.appClientID),
	})
	if err != nil {
		return nil, err
	}
	return &AuthTokens{
		IDToken:     *result.AuthenticationResult.IdToken,
		AccessToken: *result.AuthenticationResult.AccessToken,
	}, nil
}

// ConfirmAccount is used to verify the user's e-mail address
func (c *cognitoClient) ConfirmAccount(ctx context.Context, email, code string) error {
	_, err := c.client.ConfirmSignUp(ctx, &cognito.ConfirmSignUpInput{
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
		ClientId:         aws.String(c.appClientID),
	})
	return err
}

// ResendConfirmation resends the verification code to the provided e-mail
func (c *cognitoClient) ResendConfirmation(ctx context.Context, email string) error {
	_, err := c.client.ResendConfirmationCode(ctx, &cognito.ResendConfirmationCodeInput{
		Username: aws.String(email),
		ClientId: aws.String(c.appClientID),
	})
	return err
}
