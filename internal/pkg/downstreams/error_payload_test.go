package downstreams

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestExtractRemoteMessage(t *testing.T) {
	t.Run("Message field wins over the rest", func(t *testing.T) {
		body := []byte(`{"message":"Saldo insuficiente","mensaje":"otro","errorDetails":"detalle"}`)
		assert.Equal(t, "Saldo insuficiente", ExtractRemoteMessage(body))
	})

	t.Run("Mensaje is used when message is absent", func(t *testing.T) {
		body := []byte(`{"mensaje":"Asociado inhabilitado"}`)
		assert.Equal(t, "Asociado inhabilitado", ExtractRemoteMessage(body))
	})

	t.Run("ErrorDetails is used when the message fields are empty", func(t *testing.T) {
		body := []byte(`{"message":"  ","errorDetails":"timeout en la base"}`)
		assert.Equal(t, "timeout en la base", ExtractRemoteMessage(body))
	})

	t.Run("InnerExceptionDetails is the last resort", func(t *testing.T) {
		body := []byte(`{"innerExceptionDetails":"stack inner"}`)
		assert.Equal(t, "stack inner", ExtractRemoteMessage(body))
	})

	t.Run("Long messages are truncated", func(t *testing.T) {
		long := strings.Repeat("x", 500)
		body := []byte(fmt.Sprintf(`{"message":%q}`, long))
		got := ExtractRemoteMessage(body)
		assert.Len(t, got, maxRemoteMessageLength)
		assert.Equal(t, long[:maxRemoteMessageLength], got)
	})

	t.Run("Truncation never splits an accented character", func(t *testing.T) {
		long := strings.Repeat("ñ", 500)
		body := []byte(fmt.Sprintf(`{"message":%q}`, long))
		got := ExtractRemoteMessage(body)
		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, maxRemoteMessageLength, utf8.RuneCountInString(got))
		assert.Equal(t, strings.Repeat("ñ", maxRemoteMessageLength), got)
	})

	t.Run("Non-JSON body yields nothing", func(t *testing.T) {
		assert.Empty(t, ExtractRemoteMessage([]byte("<html>502 Bad Gateway</html>")))
	})

	t.Run("Empty body yields nothing", func(t *testing.T) {
		assert.Empty(t, ExtractRemoteMessage(nil))
		assert.Empty(t, ExtractRemoteMessage([]byte{}))
	})

	t.Run("JSON without known fields yields nothing", func(t *testing.T) {
		assert.Empty(t, ExtractRemoteMessage([]byte(`{"detail":"algo"}`)))
	})
}
