package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/infrastructure/logging"
)

func newTestServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.ServeWS(w, r, r.URL.Query().Get("user"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, user string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?user=" + user
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("falha ao conectar: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condição não satisfeita a tempo")
}

func readEvent(t *testing.T, conn *websocket.Conn) ports.Event {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("falha ao ler evento: %v", err)
	}
	var event ports.Event
	if err := json.Unmarshal(data, &event); err != nil {
		t.Fatalf("evento inválido: %v", err)
	}
	return event
}

func TestHubNotify(t *testing.T) {
	hub := NewHub(HubConfig{PingInterval: time.Second}, logging.NewNopLogger())
	defer hub.Close()
	srv := newTestServer(t, hub)

	conn := dial(t, srv, "1")
	waitFor(t, func() bool { return hub.Connected("1") })

	t.Run("entrega para o usuário conectado", func(t *testing.T) {
		ok := hub.Notify(context.Background(), ports.NewEvent("teste", map[string]string{"a": "b"}), "1")
		if !ok {
			t.Fatal("esperava entrega")
		}
		if event := readEvent(t, conn); event.Type != "teste" {
			t.Errorf("tipo inesperado: %s", event.Type)
		}
	})

	t.Run("usuário desconectado não recebe", func(t *testing.T) {
		if hub.Notify(context.Background(), ports.NewEvent("teste", nil), "2") {
			t.Error("não esperava entrega")
		}
	})

	t.Run("sem ids envia para todos", func(t *testing.T) {
		if !hub.Notify(context.Background(), ports.NewEvent("todos", nil)) {
			t.Fatal("esperava entrega")
		}
		if event := readEvent(t, conn); event.Type != "todos" {
			t.Errorf("tipo inesperado: %s", event.Type)
		}
	})
}

func TestHubNotifySurvivesBrokenConnection(t *testing.T) {
	var logs bytes.Buffer
	hub := NewHub(HubConfig{PingInterval: time.Second}, logging.NewSlogLoggerWithWriter(&logs, "warn"))
	defer hub.Close()
	srv := newTestServer(t, hub)

	dial(t, srv, "1")
	healthy := dial(t, srv, "2")
	waitFor(t, func() bool { return hub.Connected("1") && hub.Connected("2") })

	// Fecha só o lado de escrita do servidor: a leitura segue viva e o cliente continua registrado
	hub.mu.RLock()
	broken := hub.clients["1"]
	hub.mu.RUnlock()
	tcp, ok := broken.conn.UnderlyingConn().(interface{ CloseWrite() error })
	if !ok {
		t.Fatal("conexão subjacente sem CloseWrite")
	}
	if err := tcp.CloseWrite(); err != nil {
		t.Fatalf("falha ao fechar escrita: %v", err)
	}

	if !hub.Notify(context.Background(), ports.NewEvent("parcial", nil), "1", "2") {
		t.Fatal("esperava entrega para a conexão saudável")
	}
	if event := readEvent(t, healthy); event.Type != "parcial" {
		t.Errorf("tipo inesperado: %s", event.Type)
	}

	if hub.Connected("1") {
		t.Error("esperava a conexão quebrada removida")
	}
	if !hub.Connected("2") {
		t.Error("esperava a conexão saudável mantida")
	}
	if !strings.Contains(logs.String(), "failed to deliver event") {
		t.Errorf("esperava log da falha de entrega, obteve: %s", logs.String())
	}
}

func TestHubReplacesOlderConnection(t *testing.T) {
	hub := NewHub(HubConfig{PingInterval: time.Second}, logging.NewNopLogger())
	defer hub.Close()
	srv := newTestServer(t, hub)

	first := dial(t, srv, "7")
	waitFor(t, func() bool { return hub.Connected("7") })

	second := dial(t, srv, "7")

	// A conexão antiga é fechada pelo servidor
	_ = first.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := first.ReadMessage(); err == nil {
		t.Fatal("esperava a conexão antiga encerrada")
	}

	if hub.Count() != 1 {
		t.Fatalf("esperava 1 conexão, obteve %d", hub.Count())
	}
	if !hub.Notify(context.Background(), ports.NewEvent("novo", nil), "7") {
		t.Fatal("esperava entrega")
	}
	if event := readEvent(t, second); event.Type != "novo" {
		t.Errorf("tipo inesperado: %s", event.Type)
	}
}

func TestHubDropsSilentConnections(t *testing.T) {
	hub := NewHub(HubConfig{
		PingInterval: 20 * time.Millisecond,
		PongTimeout:  60 * time.Millisecond,
	}, logging.NewNopLogger())
	defer hub.Close()
	srv := newTestServer(t, hub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	// Sem leitura no cliente nenhum pong é enviado
	dial(t, srv, "3")
	waitFor(t, func() bool { return hub.Connected("3") })
	waitFor(t, func() bool { return !hub.Connected("3") })
}

func TestHubClose(t *testing.T) {
	hub := NewHub(HubConfig{}, logging.NewNopLogger())
	srv := newTestServer(t, hub)

	dial(t, srv, "1")
	waitFor(t, func() bool { return hub.Connected("1") })

	hub.Close()

	if hub.Count() != 0 {
		t.Errorf("esperava 0 conexões, obteve %d", hub.Count())
	}
	if hub.Notify(context.Background(), ports.NewEvent("teste", nil)) {
		t.Error("não esperava entrega após Close")
	}
}
