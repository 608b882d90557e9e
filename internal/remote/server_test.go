package remote

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gbcore/internal/gameboy"
)

type message struct {
	Event string    `json:"event"`
	Data  StateData `json:"data"`
	Error string    `json:"error"`
}

func newTestServer(t *testing.T) *websocket.Conn {
	t.Helper()

	rom := make([]byte, 0x8000) // NOPs
	gb, err := gameboy.NewGameBoy(rom)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	r := gameboy.NewRunner(gb, true, false)
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	s := NewServer(r, nil)
	go s.forwardEvents(ctx)
	srv := httptest.NewServer(s.Handler())

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		ws.Close()
		srv.Close()
		cancel()
		<-done
	})
	return ws
}

func request(t *testing.T, ws *websocket.Conn, req Request) message {
	t.Helper()
	require.NoError(t, ws.WriteJSON(req))
	return read(t, ws)
}

func read(t *testing.T, ws *websocket.Conn) message {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	var m message
	require.NoError(t, ws.ReadJSON(&m))
	return m
}

func TestServer_InitialState(t *testing.T) {
	ws := newTestServer(t)

	m := read(t, ws)
	assert.Equal(t, "state", m.Event)
	assert.True(t, m.Data.Paused)

	want := RegisterData{AF: "01B0", BC: "0013", DE: "00D8", HL: "014D", SP: "FFFE", PC: "0100"}
	if diff := cmp.Diff(want, m.Data.Registers); diff != "" {
		t.Errorf("registers mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "NOP", m.Data.Disassembly)
}

func TestServer_StepAndBreak(t *testing.T) {
	ws := newTestServer(t)
	read(t, ws)

	m := request(t, ws, Request{Event: "step"})
	assert.Equal(t, "state", m.Event)
	assert.Equal(t, "0101", m.Data.Registers.PC)

	m = request(t, ws, Request{Event: "breakpoint", Data: []byte(`{"address": 512, "enabled": true}`)})
	assert.Equal(t, uint16(0x0200), m.Data.Breakpoint.Address)
	assert.True(t, m.Data.Breakpoint.Enabled)

	// the break event may overtake the reply to resume
	require.NoError(t, ws.WriteJSON(Request{Event: "resume"}))
	got := map[string]message{}
	for i := 0; i < 2; i++ {
		m := read(t, ws)
		got[m.Event] = m
	}
	require.Contains(t, got, "state")
	require.Contains(t, got, "break")

	m = got["break"]
	assert.Equal(t, "0200", m.Data.Registers.PC)
	assert.True(t, m.Data.Paused)
	assert.False(t, m.Data.Breakpoint.Enabled)
}

func TestServer_Errors(t *testing.T) {
	ws := newTestServer(t)
	read(t, ws)

	m := request(t, ws, Request{Event: "reset"})
	assert.Equal(t, "error", m.Event)
	assert.Contains(t, m.Error, "unknown event")

	m = request(t, ws, Request{Event: "breakpoint", Data: []byte(`"nope"`)})
	assert.Equal(t, "error", m.Event)

	m = request(t, ws, Request{Event: "state"})
	assert.Equal(t, "state", m.Event)
}
