package downstreams

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"mutual/loanlifecycle/internal/pkg/consts"
	"mutual/loanlifecycle/internal/pkg/models"
)

// AssociatesClient checks membership against the association's member
// service before a loan request is accepted.
type AssociatesClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAssociatesClient(baseURL string, timeout time.Duration) *AssociatesClient {
	return &AssociatesClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *AssociatesClient) CheckAssociate(ctx context.Context, associateID string) error {
	endpoint := fmt.Sprintf("%s/api/associates/%s", c.baseURL, url.PathEscape(associateID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.NewServerError(consts.MsgUnexpected)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.NewConnectivityError(consts.MsgConnectivity)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return models.NewNotFoundError(consts.MsgAssociateNotFound)
	case resp.StatusCode == http.StatusUnauthorized:
		return models.NewAuthorizationError(consts.MsgRoleNotAllowed)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if msg := ExtractRemoteMessage(body); msg != "" {
			return models.NewServerError(msg)
		}
		return models.NewServerError(consts.MsgUnexpected)
	}
}
