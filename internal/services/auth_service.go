package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/clubworks/clubhub/internal/config"
	"github.com/clubworks/clubhub/internal/utils"
	authorizer "github.com/localnerve/authorizer-go"
)

var (
	authClient *authorizer.AuthorizerClient
	authOnce   sync.Once
)

// IsAuthorizerInitialized returns true if the Authorizer client is initialized
func IsAuthorizerInitialized() bool {
	return authClient != nil
}

// InitAuthorizer initializes the Authorizer client (singleton pattern)
func InitAuthorizer(cfg *config.Config, requestProtocol, requestHost string) error {
	var initErr error

	authOnce.Do(func() {
		// Ping the Authorizer service first
		if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
			initErr = fmt.Errorf("authorizer ping failed: %w", err)
			return
		}

		redirectURL := fmt.Sprintf("%s://%s", requestProtocol, requestHost)
		log.Printf("Initializing Authorizer: authorizerURL=%s, clientID=%s, redirectURL=%s",
			cfg.AuthzURL, cfg.AuthzClientID, redirectURL)

		var err error
		authClient, err = authorizer.NewAuthorizerClient(cfg.AuthzClientID, cfg.AuthzURL, redirectURL, nil)
		if err != nil {
			initErr = fmt.Errorf("failed to create authorizer client: %w", err)
			return
		}
	})

	return initErr
}

// ValidateSession validates a session cookie and returns the authenticated user id
func ValidateSession(cookie string) (string, error) {
	if authClient == nil {
		return "", fmt.Errorf("authorizer client not initialized")
	}

	res, err := authClient.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: cookie,
	})
	if err != nil {
		return "", fmt.Errorf("session validation failed: %w", err)
	}

	if res == nil || !res.IsValid || res.User == nil {
		return "", fmt.Errorf("session is not valid")
	}

	return res.User.ID, nil
}

// SignUp registers a new account with the Authorizer service and returns the
// new user's id.
func SignUp(email, password string) (string, error) {
	if authClient == nil {
		return "", fmt.Errorf("authorizer client not initialized")
	}

	res, err := authClient.SignUp(&authorizer.SignUpInput{
		Email:           &email,
		Password:        password,
		ConfirmPassword: password,
	})
	if err != nil {
		return "", fmt.Errorf("signup failed: %w", err)
	}
	if res == nil || res.User == nil {
		return "", fmt.Errorf("signup returned no user")
	}

	return res.User.ID, nil
}

// Login exchanges credentials for a session token.
func Login(email, password string) (string, error) {
	if authClient == nil {
		return "", fmt.Errorf("authorizer client not initialized")
	}

	res, err := authClient.Login(&authorizer.LoginInput{
		Email:    &email,
		Password: password,
	})
	if err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}
	if res == nil || res.AccessToken == nil {
		return "", fmt.Errorf("login returned no access token")
	}

	return *res.AccessToken, nil
}

// AdminUpdatePassword resets a user's password through the Authorizer admin
// GraphQL API. The SDK exposes no admin surface, so this goes straight to the
// endpoint with the admin secret header.
func AdminUpdatePassword(cfg *config.Config, userID, newPassword string) error {
	if cfg.AuthzAdminSecret == "" {
		return fmt.Errorf("AUTHZ_ADMIN_SECRET is not configured")
	}

	query := `mutation updateUser($params: UpdateUserInput!) {
		_update_user(params: $params) { id }
	}`

	payload := map[string]interface{}{
		"query": query,
		"variables": map[string]interface{}{
			"params": map[string]interface{}{
				"id":               userID,
				"password":         newPassword,
				"confirm_password": newPassword,
			},
		},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	graphqlURL := strings.TrimSuffix(cfg.AuthzURL, "/") + "/graphql"
	req, err := http.NewRequest(http.MethodPost, graphqlURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-authorizer-admin-secret", cfg.AuthzAdminSecret)

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("authorizer admin request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var result struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to decode authorizer response: %v, body: %s", err, string(body))
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("authorizer admin error: %s", result.Errors[0].Message)
	}

	return nil
}
