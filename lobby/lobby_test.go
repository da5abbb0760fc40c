package lobby

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/warden/common"
)

type fakeNet struct {
	calls      []string
	connectErr error
	spawnedAt  common.Vec3
}

func (n *fakeNet) Connect() error {
	n.calls = append(n.calls, "connect")
	return n.connectErr
}

func (n *fakeNet) JoinLobby() error {
	n.calls = append(n.calls, "join_lobby")
	return nil
}

func (n *fakeNet) JoinOrCreateRoom(name string, opts RoomOptions) error {
	n.calls = append(n.calls, "join_room:"+name)
	if opts.MaxPlayers != 20 {
		return errors.New("unexpected max players")
	}
	return nil
}

func (n *fakeNet) Instantiate(prefab string, at common.Vec3) error {
	n.calls = append(n.calls, "spawn:"+prefab)
	n.spawnedAt = at
	return nil
}

func (n *fakeNet) LocalNickname() string { return "ada" }

func newManager(t *testing.T, net *fakeNet, mutate func(*Config)) *Manager {
	t.Helper()
	cfg := DefaultConfig()
	cfg.PlayerPrefab = "player"
	cfg.SpawnPoint = &common.Vec3{X: 1, Z: 2}
	if mutate != nil {
		mutate(&cfg)
	}
	m, err := New(cfg, net, nil)
	require.NoError(t, err)
	return m
}

func TestHappyPath(t *testing.T) {
	net := &fakeNet{}
	m := newManager(t, net, nil)

	m.Start()
	assert.Equal(t, Connecting, m.Phase())
	assert.True(t, m.PanelVisible)
	assert.Equal(t, "Connecting...", m.ConnectionText)

	m.OnConnectedToMaster()
	assert.Equal(t, "Connected to Server", m.ConnectionText)
	m.OnJoinedLobby()
	assert.Equal(t, "Joined Lobby", m.ConnectionText)
	m.OnJoinedRoom()

	assert.Equal(t, InRoom, m.Phase())
	assert.False(t, m.PanelVisible)
	assert.Equal(t, common.Vec3{X: 1, Z: 2}, net.spawnedAt)
	assert.True(t, m.Join.Visible)
	assert.Equal(t, "ada joined the game", m.Join.Text)

	want := []string{"connect", "join_lobby", "join_room:test", "spawn:player"}
	if diff := cmp.Diff(want, net.calls); diff != "" {
		t.Fatalf("network calls mismatch (-want +got):\n%s", diff)
	}
}

func TestRetriesAreCapped(t *testing.T) {
	net := &fakeNet{}
	m := newManager(t, net, nil)
	m.Start()

	for i := 1; i <= 3; i++ {
		m.OnDisconnected("timeout")
		assert.Equal(t, i, m.Retries())
		assert.Equal(t, Connecting, m.Phase())
	}
	m.OnDisconnected("timeout")
	assert.Equal(t, Failed, m.Phase())
	assert.Equal(t, "Failed to connect after 3 attempts.", m.ConnectionText)
	assert.Len(t, net.calls, 4, "one initial attempt plus three retries")
}

func TestRetryCounterResetsOnConnect(t *testing.T) {
	net := &fakeNet{}
	m := newManager(t, net, nil)
	m.Start()
	m.OnDisconnected("a")
	m.OnDisconnected("b")
	require.Equal(t, 2, m.Retries())

	m.OnConnectedToMaster()
	assert.Zero(t, m.Retries())
	m.OnDisconnected("c")
	assert.Equal(t, 1, m.Retries())
	assert.Equal(t, Connecting, m.Phase())
}

func TestConnectErrorCountsAsDisconnect(t *testing.T) {
	net := &fakeNet{connectErr: errors.New("no route")}
	m := newManager(t, net, func(c *Config) { c.MaxRetries = 2 })
	m.Start()
	assert.Equal(t, Failed, m.Phase())
	assert.Equal(t, 2, m.Retries())
	assert.Len(t, net.calls, 3)
}

func TestMissingSpawnSkipsInstantiate(t *testing.T) {
	net := &fakeNet{}
	m := newManager(t, net, func(c *Config) { c.SpawnPoint = nil })
	m.OnJoinedRoom()
	assert.NotContains(t, net.calls, "spawn:player")
	assert.True(t, m.Join.Visible)
}

func TestBannersHideAfterDuration(t *testing.T) {
	m := newManager(t, &fakeNet{}, nil)

	m.OnPlayerEnteredRoom("bob")
	m.OnPlayerLeftRoom("cy")
	m.Tick(1500 * time.Millisecond)
	assert.True(t, m.Join.Visible)
	assert.True(t, m.Leave.Visible)
	assert.Equal(t, "cy left the game", m.Leave.Text)

	m.OnPlayerEnteredRoom("dee")
	m.Tick(600 * time.Millisecond)
	assert.True(t, m.Join.Visible, "a new message restarts the timer")
	assert.False(t, m.Leave.Visible)

	m.Tick(1400 * time.Millisecond)
	assert.False(t, m.Join.Visible)
	assert.Equal(t, "dee joined the game", m.Join.Text)
}

func TestNewValidates(t *testing.T) {
	_, err := New(DefaultConfig(), nil, nil)
	assert.ErrorIs(t, err, ErrMissingNetwork)

	cfg := DefaultConfig()
	cfg.MaxPlayers = 0
	_, err = New(cfg, &fakeNet{}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, "room", InRoom.String())
}
