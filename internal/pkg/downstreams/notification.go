package downstreams

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"mutual/loanlifecycle/internal/pkg/consts"
	"mutual/loanlifecycle/internal/pkg/logger"
	"mutual/loanlifecycle/internal/pkg/models"
)

// NotificationClient posts lifecycle decisions to the notification service.
// Callers fire it after the decision is committed; a delivery failure never
// rolls a decision back.
type NotificationClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewNotificationClient(baseURL string, timeout time.Duration) *NotificationClient {
	return &NotificationClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type decisionNotification struct {
	AssociateID string `json:"associateId"`
	LoanID      string `json:"loanId"`
	Status      string `json:"status"`
	Motive      string `json:"motive,omitempty"`
}

func (c *NotificationClient) NotifyDecision(
	ctx context.Context,
	associateID, loanID string,
	status consts.LoanStatus,
	motive string,
) error {
	payload, err := json.Marshal(decisionNotification{
		AssociateID: associateID,
		LoanID:      loanID,
		Status:      string(status),
		Motive:      motive,
	})
	if err != nil {
		return models.NewServerError(consts.MsgUnexpected)
	}

	url := fmt.Sprintf("%s/api/notifications/loan-decision", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return models.NewServerError(consts.MsgUnexpected)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response at all: the service is unreachable, not rejecting us.
		return models.NewConnectivityError(consts.MsgConnectivity)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	remoteMsg := ExtractRemoteMessage(body)
	logger.CtxWarn(ctx, "Notification service rejected decision notification",
		slog.Int("status", resp.StatusCode),
		slog.String("loanId", loanID),
		slog.String("remoteMessage", remoteMsg))

	if remoteMsg == "" {
		remoteMsg = consts.MsgUnexpected
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return models.NewAuthorizationError(remoteMsg)
	default:
		return models.NewServerError(remoteMsg)
	}
}
