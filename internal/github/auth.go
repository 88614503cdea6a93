package github

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bradleyfalzon/ghinstallation/v2"
)

// AppCredentials identify a GitHub App installation.
type AppCredentials struct {
	AppID          int64
	InstallationID int64
	PrivateKeyPath string
}

// NewInstallationClient creates a client that authenticates as a GitHub App
// installation. Installation tokens are minted and refreshed by the transport.
func NewInstallationClient(creds AppCredentials, apiURL string, timeout time.Duration, logger *slog.Logger) (Client, error) {
	logger.Info("creating GitHub installation client", "app_id", creds.AppID, "installation_id", creds.InstallationID)

	itr, err := ghinstallation.NewKeyFromFile(http.DefaultTransport, creds.AppID, creds.InstallationID, creds.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create installation transport from %s: %w", creds.PrivateKeyPath, err)
	}
	if apiURL != "" {
		itr.BaseURL = strings.TrimSuffix(apiURL, "/")
	}

	client, err := newRESTClient(&http.Client{Transport: itr, Timeout: timeout}, apiURL)
	if err != nil {
		return nil, err
	}
	return NewGitHubClient(client, logger), nil
}
