package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/picklecatch/internal/config"
	"github.com/vovakirdan/picklecatch/internal/core"
	"github.com/vovakirdan/picklecatch/internal/games/picklecatch"
	"github.com/vovakirdan/picklecatch/internal/storage"
)

// ---------- helpers ----------

func startTestServer(t *testing.T, store *storage.Store) (*Server, *httptest.Server, string) {
	t.Helper()

	s := NewServer(ServerConfig{
		Game:     config.Default(),
		TickRate: 120,
		Seed:     99,
		Record:   true,
		Store:    store,
		Logger:   log.New(io.Discard),
	})
	srv := httptest.NewServer(s.SetupRoutes())
	t.Cleanup(func() {
		srv.Close()
		s.Close()
	})

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	return s, srv, wsURL
}

func dialWS(t *testing.T, wsURL string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial WS: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) InEnvelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read WS: %v", err)
	}
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return env
}

// readUntil reads messages until one matches, failing after limit messages.
func readUntil(t *testing.T, conn *websocket.Conn, limit int, match func(InEnvelope) bool) InEnvelope {
	t.Helper()
	for range limit {
		env := readEnvelope(t, conn)
		if match(env) {
			return env
		}
	}
	t.Fatalf("no matching message within %d messages", limit)
	return InEnvelope{}
}

func sendMsg(t *testing.T, conn *websocket.Conn, msgType string, data any) {
	t.Helper()
	raw, _ := json.Marshal(Envelope{T: msgType, Data: data})
	if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
		t.Fatalf("write WS: %v", err)
	}
}

func sceneOf(t *testing.T, env InEnvelope) picklecatch.Scene {
	t.Helper()
	var sc picklecatch.Scene
	if err := json.Unmarshal(env.D, &sc); err != nil {
		t.Fatalf("scene unmarshal: %v", err)
	}
	return sc
}

func isScene(state picklecatch.State) func(InEnvelope) bool {
	return func(env InEnvelope) bool {
		if env.T != MsgScene {
			return false
		}
		var sc picklecatch.Scene
		return json.Unmarshal(env.D, &sc) == nil && sc.State == state
	}
}

// ---------- tests ----------

func TestHelloThenWelcomeScene(t *testing.T) {
	s, _, wsURL := startTestServer(t, nil)
	conn := dialWS(t, wsURL)

	hello := readEnvelope(t, conn)
	if hello.T != MsgHello {
		t.Fatalf("first message = %s, want hello", hello.T)
	}
	var h HelloMsg
	if err := json.Unmarshal(hello.D, &h); err != nil || len(h.Session) != 36 || h.TickRate != 120 {
		t.Errorf("hello = %+v, %v", h, err)
	}

	sc := sceneOf(t, readUntil(t, conn, 5, isScene(picklecatch.StateWelcome)))
	if sc.Overlay == nil || sc.Overlay.Title != "PickleCatch!" {
		t.Errorf("welcome overlay = %+v", sc.Overlay)
	}
	if sc.Width != 600 || sc.Height != 600 {
		t.Errorf("default canvas = %vx%v", sc.Width, sc.Height)
	}
	if s.Sessions() != 1 {
		t.Errorf("Sessions() = %d, want 1", s.Sessions())
	}
}

func TestTapStartsRunAndRequestsCapture(t *testing.T) {
	_, _, wsURL := startTestServer(t, nil)
	conn := dialWS(t, wsURL)
	readUntil(t, conn, 5, isScene(picklecatch.StateWelcome))

	sendMsg(t, conn, MsgTap, nil)

	capture := readUntil(t, conn, 50, func(env InEnvelope) bool { return env.T == MsgCapture })
	var c CaptureMsg
	if err := json.Unmarshal(capture.D, &c); err != nil || !c.On {
		t.Errorf("capture = %+v, %v", c, err)
	}
	readUntil(t, conn, 5, isScene(picklecatch.StatePlaying))
}

func TestResizeAndInput(t *testing.T) {
	_, _, wsURL := startTestServer(t, nil)
	conn := dialWS(t, wsURL)
	readUntil(t, conn, 5, isScene(picklecatch.StateWelcome))

	sendMsg(t, conn, MsgResize, ResizeMsg{W: 400, H: 300})
	sendMsg(t, conn, MsgTap, nil)
	readUntil(t, conn, 50, isScene(picklecatch.StatePlaying))

	sendMsg(t, conn, MsgInput, ClientInput{X: 100, HasX: true})
	env := readUntil(t, conn, 50, func(env InEnvelope) bool {
		if env.T != MsgScene {
			return false
		}
		sc := sceneOf(t, env)
		return len(sc.Catchers) == 1 && sc.Catchers[0].X+sc.Catchers[0].W/2 == 100
	})
	sc := sceneOf(t, env)
	if sc.Width != 400 || sc.Height != 300 {
		t.Errorf("canvas = %vx%v, want 400x300", sc.Width, sc.Height)
	}
}

func TestRunEndSendsReplay(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	_, _, wsURL := startTestServer(t, store)
	conn := dialWS(t, wsURL)
	readUntil(t, conn, 5, isScene(picklecatch.StateWelcome))

	// A tiny, fast canvas ends the run quickly: park the catcher left.
	sendMsg(t, conn, MsgResize, ResizeMsg{W: 200, H: 60})
	sendMsg(t, conn, MsgTap, nil)
	sendMsg(t, conn, MsgInput, ClientInput{X: 0, HasX: true})

	var env InEnvelope
	deadline := time.Now().Add(20 * time.Second)
	for time.Now().Before(deadline) {
		env = readEnvelope(t, conn)
		if env.T == MsgReplay {
			break
		}
		if env.T == MsgScene {
			// Keep the catcher parked on every frame.
			sendMsg(t, conn, MsgInput, ClientInput{X: 0, HasX: true})
		}
	}
	if env.T != MsgReplay {
		t.Fatal("no replay message before deadline")
	}

	var rm ReplayMsg
	if err := json.Unmarshal(env.D, &rm); err != nil {
		t.Fatal(err)
	}
	if !rm.Saved {
		t.Error("replay should be saved with a store")
	}
	if _, err := store.Replay(rm.ID); err != nil {
		t.Errorf("stored replay: %v", err)
	}
}

func TestCrossOriginRejected(t *testing.T) {
	_, _, wsURL := startTestServer(t, nil)

	header := http.Header{}
	header.Set("Origin", "http://evil.example")
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err == nil {
		t.Fatal("cross-origin dial should fail")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("response = %v, want 403", resp)
	}
}

func TestStaticAndHealth(t *testing.T) {
	_, srv, _ := startTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "<canvas") {
		t.Error("index should contain the game canvas")
	}
	if resp.Header.Get("Cache-Control") != "no-cache" {
		t.Errorf("Cache-Control = %q", resp.Header.Get("Cache-Control"))
	}

	resp, err = http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	var health map[string]int
	json.NewDecoder(resp.Body).Decode(&health)
	resp.Body.Close()
	if health["sessions"] != 0 {
		t.Errorf("health = %v", health)
	}

	resp, err = http.Get(srv.URL + "/api/replays")
	if err != nil {
		t.Fatal(err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if strings.TrimSpace(string(body)) != "[]" {
		t.Errorf("replays without store = %s", body)
	}
}

func TestTapTrigger(t *testing.T) {
	if tapTrigger(picklecatch.StateWelcome) != core.TriggerStart {
		t.Error("welcome tap should start")
	}
	if tapTrigger(picklecatch.StatePlaying) != core.TriggerNone {
		t.Error("playing tap should do nothing")
	}
	if tapTrigger(picklecatch.StateGameOver) != core.TriggerRestart {
		t.Error("game over tap should restart")
	}
}

func TestEventsWaitForRoomWhileFramesDrop(t *testing.T) {
	c := &Client{
		send:   make(chan []byte, 1),
		done:   make(chan struct{}),
		logger: log.New(io.Discard),
	}
	c.SendJSON(MsgScene, map[string]int{"n": 1})
	c.SendJSON(MsgScene, map[string]int{"n": 2})
	if len(c.send) != 1 {
		t.Fatalf("queue holds %d frames, want 1", len(c.send))
	}

	go func() {
		time.Sleep(20 * time.Millisecond)
		<-c.send
	}()
	browserHost{c}.ReleaseExclusiveInput()

	var env InEnvelope
	select {
	case raw := <-c.send:
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
	default:
		t.Fatal("capture release was dropped behind a full queue")
	}
	if env.T != MsgCapture || strings.TrimSpace(string(env.D)) != `{"on":false}` {
		t.Errorf("queued %s %s, want capture off", env.T, env.D)
	}

	// A closed client does not block event sends.
	close(c.done)
	c.send <- []byte("full")
	browserHost{c}.PlaySound(picklecatch.SoundPop)
}

func TestJoinURL(t *testing.T) {
	if got := JoinURL("127.0.0.1:9000"); got != "http://127.0.0.1:9000/" {
		t.Errorf("JoinURL = %q", got)
	}
	got := JoinURL(":8080")
	if !strings.HasPrefix(got, "http://") || !strings.HasSuffix(got, ":8080/") {
		t.Errorf("JoinURL(:8080) = %q", got)
	}
}
