package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"oceanoscuba-admin/internal/handlers"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hubOnce sync.Once

func startHub() {
	hubOnce.Do(func() { go handlers.GlobalHub.Run() })
}

func TestContractSignedEventReachesCompanyFeed(t *testing.T) {
	startHub()
	r, token := setupAuthed(t)
	body := createContract(t, r, token, nil)

	server := httptest.NewServer(r)
	defer server.Close()

	wsURL := strings.Replace(server.URL, "http", "ws", 1) + "/api/v1/events/ws"
	header := http.Header{"Authorization": {"Bearer " + token}}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer conn.Close()

	// Margen para que el hub procese el registro antes de la firma.
	time.Sleep(50 * time.Millisecond)

	w := doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/v1/contracts/%.0f/sign", body["id"].(float64)), token, M{
			"fields": M{"signer_name": "Ana Pérez", "email": "ana@example.com"},
		})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var event handlers.ContractEvent
	require.NoError(t, json.Unmarshal(message, &event))
	assert.Equal(t, "contract.signed", event.Type)
	assert.Equal(t, body["code"], event.Code)
	assert.Equal(t, "SIGNED", event.Status)
}

func TestEventFeedRequiresToken(t *testing.T) {
	startHub()
	r, _ := setupAuthed(t)

	server := httptest.NewServer(r)
	defer server.Close()

	wsURL := strings.Replace(server.URL, "http", "ws", 1) + "/api/v1/events/ws"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
