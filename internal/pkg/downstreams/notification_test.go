package downstreams

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mutual/loanlifecycle/internal/pkg/consts"
	"mutual/loanlifecycle/internal/pkg/models"
)

func TestNotifyDecision(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		var gotPath string
		var gotBody map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &gotBody)
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		client := NewNotificationClient(server.URL, 2*time.Second)
		err := client.NotifyDecision(ctx, "A-1001", "loan-1", consts.LoanStatusAprobado, "")

		require.NoError(t, err)
		assert.Equal(t, "/api/notifications/loan-decision", gotPath)
		assert.Equal(t, "A-1001", gotBody["associateId"])
		assert.Equal(t, "loan-1", gotBody["loanId"])
		assert.Equal(t, string(consts.LoanStatusAprobado), gotBody["status"])
		_, hasMotive := gotBody["motive"]
		assert.False(t, hasMotive)
	})

	t.Run("Rejection carries the motive", func(t *testing.T) {
		var gotBody map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &gotBody)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewNotificationClient(server.URL, 2*time.Second)
		err := client.NotifyDecision(ctx, "A-1001", "loan-1", consts.LoanStatusRechazado, "Ingresos no verificables")

		require.NoError(t, err)
		assert.Equal(t, "Ingresos no verificables", gotBody["motive"])
	})

	t.Run("Unreachable service", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewNotificationClient(server.URL, 2*time.Second)
		err := client.NotifyDecision(ctx, "A-1001", "loan-1", consts.LoanStatusAprobado, "")

		var de *models.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, consts.CodeConnectivity, de.Code)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := NewNotificationClient(server.URL, 2*time.Second)
		err := client.NotifyDecision(ctx, "A-1001", "loan-1", consts.LoanStatusAprobado, "")

		var de *models.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, models.KindAuthorization, de.Kind)
	})

	t.Run("Remote message is surfaced", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"mensaje":"Canal de correo no disponible"}`))
		}))
		defer server.Close()

		client := NewNotificationClient(server.URL, 2*time.Second)
		err := client.NotifyDecision(ctx, "A-1001", "loan-1", consts.LoanStatusAprobado, "")

		var de *models.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, models.KindServer, de.Kind)
		assert.Equal(t, "Canal de correo no disponible", de.Message)
	})
}
