package inspect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frameState struct {
	Frame int    `json:"frame"`
	Tool  string `json:"tool"`
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(10 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	s := NewServer("", NewHub(0), nil)
	rec := get(t, s.Handler(), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestDebugState(t *testing.T) {
	hub := NewHub(0)
	s := NewServer("", hub, nil)

	rec := get(t, s.Handler(), "/debug/state")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	require.NoError(t, hub.Publish(frameState{Frame: 3, Tool: "pen"}))
	rec = get(t, s.Handler(), "/debug/state")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"frame":3,"tool":"pen"}`, rec.Body.String())
}

func TestMetricsRoute(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("sketchpad_frames_total 1\n"))
	})
	s := NewServer("", NewHub(0), metrics)
	rec := get(t, s.Handler(), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sketchpad_frames_total")

	rec = get(t, NewServer("", NewHub(0), nil).Handler(), "/metrics")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec := get(t, h, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPublish(t *testing.T) {
	hub := NewHub(0)
	_, seq := hub.Latest()
	assert.Zero(t, seq)

	require.NoError(t, hub.Publish(frameState{Frame: 1}))
	require.NoError(t, hub.Publish(frameState{Frame: 2}))
	data, seq := hub.Latest()
	assert.Equal(t, int64(2), seq)
	assert.JSONEq(t, `{"frame":2,"tool":""}`, string(data))

	assert.Error(t, hub.Publish(make(chan int)))
	_, seq = hub.Latest()
	assert.Equal(t, int64(2), seq)
}

func readMessage(t *testing.T, ctx context.Context, conn *websocket.Conn, typ string) Message {
	t.Helper()
	for {
		var msg Message
		require.NoError(t, wsjson.Read(ctx, conn, &msg))
		if msg.Type == typ {
			return msg
		}
	}
}

func TestStream(t *testing.T) {
	hub := startHub(t)
	ts := httptest.NewServer(NewServer("", hub, nil).Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/inspect"
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	welcome := readMessage(t, ctx, conn, TypeWelcome)
	var wp WelcomePayload
	require.NoError(t, json.Unmarshal(welcome.Payload, &wp))
	assert.NotEmpty(t, wp.ClientID)
	assert.Equal(t, "10ms", wp.Interval)
	assert.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.Publish(frameState{Frame: 7, Tool: "line"}))
	snap := readMessage(t, ctx, conn, TypeSnapshot)
	assert.Equal(t, int64(1), snap.Seq)
	assert.JSONEq(t, `{"frame":7,"tool":"line"}`, string(snap.Payload))

	require.NoError(t, wsjson.Write(ctx, conn, Message{Type: TypeSnapshotRequest}))
	again := readMessage(t, ctx, conn, TypeSnapshot)
	assert.Equal(t, int64(1), again.Seq)

	require.NoError(t, wsjson.Write(ctx, conn, Message{Type: "draw"}))
	errMsg := readMessage(t, ctx, conn, TypeError)
	assert.Contains(t, string(errMsg.Payload), "unknown message type draw")

	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte("{not json")))
	errMsg = readMessage(t, ctx, conn, TypeError)
	assert.Contains(t, string(errMsg.Payload), "malformed request")

	conn.Close(websocket.StatusNormalClosure, "")
	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 5*time.Millisecond)
}

func queued(t *testing.T, c *Client) []Message {
	t.Helper()
	var out []Message
	for {
		select {
		case data := <-c.send:
			var msg Message
			require.NoError(t, json.Unmarshal(data, &msg))
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestClientSkipsSnapshotsItAlreadyHas(t *testing.T) {
	hub := NewHub(0)
	c := NewClient(hub, nil, "c1", "")

	c.deliver(1, json.RawMessage(`{}`), false)
	c.deliver(1, json.RawMessage(`{}`), false)
	c.deliver(2, json.RawMessage(`{}`), false)
	msgs := queued(t, c)
	require.Len(t, msgs, 2)
	assert.Equal(t, int64(1), msgs[0].Seq)
	assert.Equal(t, int64(2), msgs[1].Seq)

	c.deliver(2, json.RawMessage(`{}`), true)
	assert.Len(t, queued(t, c), 1, "explicit requests always answer")
}

func TestClientPauseAndResume(t *testing.T) {
	hub := NewHub(0)
	c := NewClient(hub, nil, "c1", "")

	c.handle(Message{Type: TypePause})
	require.True(t, c.Paused())
	require.NoError(t, hub.Publish(frameState{Frame: 1}))
	data, seq := hub.Latest()
	c.deliver(seq, data, false)
	assert.Empty(t, queued(t, c))

	c.handle(Message{Type: TypeSnapshotRequest})
	msgs := queued(t, c)
	require.Len(t, msgs, 1)
	assert.Equal(t, TypeSnapshot, msgs[0].Type)

	require.NoError(t, hub.Publish(frameState{Frame: 2}))
	c.handle(Message{Type: TypeResume})
	assert.False(t, c.Paused())
	msgs = queued(t, c)
	require.Len(t, msgs, 1)
	assert.Equal(t, int64(2), msgs[0].Seq)
	assert.JSONEq(t, `{"frame":2,"tool":""}`, string(msgs[0].Payload))
}

func TestClosedClientDropsMessages(t *testing.T) {
	c := NewClient(NewHub(0), nil, "c1", "")
	c.close()
	assert.NotPanics(t, func() {
		c.Send(&Message{Type: TypeWelcome})
		c.deliver(1, json.RawMessage(`{}`), true)
		c.close()
	})
}

func TestRegisterAfterStop(t *testing.T) {
	hub := NewHub(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	assert.False(t, hub.Register(NewClient(hub, nil, "late", "")))
	assert.NotPanics(t, func() { hub.Unregister(NewClient(hub, nil, "late", "")) })
}
