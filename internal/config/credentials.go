package config

import (
	"encoding/json"
	"fmt"
	"os"

	"study-tracker/pkg/errors"
)

var DefaultScopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive",
}

// ServiceAccount is the credential schema shared by the key file and the
// platform secret.
type ServiceAccount struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
	ClientID     string `json:"client_id"`
	TokenURI     string `json:"token_uri"`
}

type Credentials struct {
	Account ServiceAccount
	JSON    []byte
	Source  string
	Scopes  []string
}

// ResolveCredentials reads the service account from the configured file and
// falls back to the secret held in the configured environment variable.
func (c *Config) ResolveCredentials() (*Credentials, error) {
	var (
		data   []byte
		source string
	)

	raw, err := os.ReadFile(c.Credentials.File)
	switch {
	case err == nil:
		data, source = raw, "file:"+c.Credentials.File
	case os.IsNotExist(err):
		if secret := os.Getenv(c.Credentials.Env); secret != "" {
			data, source = []byte(secret), "env:"+c.Credentials.Env
		}
	default:
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	if data == nil {
		return nil, fmt.Errorf("%w: no file at %s and %s is empty",
			errors.ErrCredentialsMissing, c.Credentials.File, c.Credentials.Env)
	}

	var account ServiceAccount
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errors.ErrInvalidCredentials, source, err)
	}
	if account.ClientEmail == "" {
		return nil, fmt.Errorf("%w: %s: client_email is required", errors.ErrInvalidCredentials, source)
	}
	if account.PrivateKey == "" {
		return nil, fmt.Errorf("%w: %s: private_key is required", errors.ErrInvalidCredentials, source)
	}

	return &Credentials{
		Account: account,
		JSON:    data,
		Source:  source,
		Scopes:  c.Credentials.Scopes,
	}, nil
}
