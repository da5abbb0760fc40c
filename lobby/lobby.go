// Package lobby drives the connect, lobby and room join flow of a multiplayer
// session over an injected Network. It keeps the connection status and the
// join/leave banners as plain state for a UI layer to present.
package lobby

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/warden/common"
)

var (
	ErrMissingNetwork = errors.New("lobby: missing network")
	ErrInvalidConfig  = errors.New("lobby: invalid config")
)

// Phase is the position in the connection flow.
type Phase int

const (
	Disconnected Phase = iota
	Connecting
	ConnectedToMaster
	InLobby
	InRoom
	Failed
)

func (p Phase) String() string {
	switch p {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case ConnectedToMaster:
		return "connected"
	case InLobby:
		return "lobby"
	case InRoom:
		return "room"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

type RoomOptions struct {
	MaxPlayers int
}

// Network is the session SDK boundary. Calls start asynchronous operations;
// results arrive through the Manager's On* callbacks.
type Network interface {
	Connect() error
	JoinLobby() error
	JoinOrCreateRoom(name string, opts RoomOptions) error
	Instantiate(prefab string, at common.Vec3) error
	LocalNickname() string
}

type Config struct {
	RoomName        string
	MaxPlayers      int
	MaxRetries      int
	MessageDuration time.Duration
	PlayerPrefab    string
	SpawnPoint      *common.Vec3
}

func DefaultConfig() Config {
	return Config{
		RoomName:        "test",
		MaxPlayers:      20,
		MaxRetries:      3,
		MessageDuration: 2 * time.Second,
	}
}

func (c Config) Validate() error {
	if c.RoomName == "" {
		return fmt.Errorf("%w: empty room name", ErrInvalidConfig)
	}
	if c.MaxPlayers <= 0 {
		return fmt.Errorf("%w: max players %d", ErrInvalidConfig, c.MaxPlayers)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries %d", ErrInvalidConfig, c.MaxRetries)
	}
	return nil
}

// Banner is a transient message shown for a fixed duration.
type Banner struct {
	Text    string
	Visible bool
	left    time.Duration
}

func (b *Banner) show(text string, d time.Duration) {
	b.Text = text
	b.Visible = true
	b.left = d
}

func (b *Banner) tick(elapsed time.Duration) {
	if !b.Visible {
		return
	}
	b.left -= elapsed
	if b.left <= 0 {
		b.Visible = false
		b.left = 0
	}
}

type Manager struct {
	cfg Config
	net Network
	log *zap.Logger

	phase   Phase
	retries int

	PanelVisible   bool
	ConnectionText string
	Join           Banner
	Leave          Banner
}

func New(cfg Config, net Network, log *zap.Logger) (*Manager, error) {
	if net == nil {
		return nil, ErrMissingNetwork
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{cfg: cfg, net: net, log: log}, nil
}

func (m *Manager) Phase() Phase { return m.phase }
func (m *Manager) Retries() int { return m.retries }

// Start begins the first connection attempt.
func (m *Manager) Start() {
	m.connect()
}

func (m *Manager) connect() {
	m.log.Info("lobby: connecting")
	m.phase = Connecting
	m.PanelVisible = true
	m.ConnectionText = "Connecting..."
	if err := m.net.Connect(); err != nil {
		m.OnDisconnected(err.Error())
	}
}

func (m *Manager) OnConnectedToMaster() {
	m.log.Info("lobby: connected to server")
	m.phase = ConnectedToMaster
	m.ConnectionText = "Connected to Server"
	m.retries = 0
	if err := m.net.JoinLobby(); err != nil {
		m.log.Error("lobby: join lobby", zap.Error(err))
		m.ConnectionText = "Join lobby failed: " + err.Error()
	}
}

// OnDisconnected retries the connection until MaxRetries consecutive
// failures, then gives up.
func (m *Manager) OnDisconnected(cause string) {
	m.log.Error("lobby: disconnected from server", zap.String("cause", cause))
	m.phase = Disconnected
	m.PanelVisible = true
	m.ConnectionText = "Disconnected: " + cause

	if m.retries < m.cfg.MaxRetries {
		m.retries++
		m.log.Info("lobby: retrying connection", zap.Int("attempt", m.retries))
		m.connect()
		return
	}
	m.phase = Failed
	m.ConnectionText = fmt.Sprintf("Failed to connect after %d attempts.", m.cfg.MaxRetries)
}

func (m *Manager) OnJoinedLobby() {
	m.log.Info("lobby: joined lobby")
	m.phase = InLobby
	m.ConnectionText = "Joined Lobby"
	opts := RoomOptions{MaxPlayers: m.cfg.MaxPlayers}
	if err := m.net.JoinOrCreateRoom(m.cfg.RoomName, opts); err != nil {
		m.log.Error("lobby: join room", zap.String("room", m.cfg.RoomName), zap.Error(err))
		m.ConnectionText = "Join room failed: " + err.Error()
	}
}

func (m *Manager) OnJoinedRoom() {
	m.log.Info("lobby: joined room", zap.String("room", m.cfg.RoomName))
	m.phase = InRoom
	m.PanelVisible = false

	nick := m.net.LocalNickname()
	switch {
	case m.cfg.PlayerPrefab == "" || m.cfg.SpawnPoint == nil:
		m.log.Error("lobby: player prefab or spawn point is not assigned")
	default:
		if err := m.net.Instantiate(m.cfg.PlayerPrefab, *m.cfg.SpawnPoint); err != nil {
			m.log.Error("lobby: instantiate player", zap.String("prefab", m.cfg.PlayerPrefab), zap.Error(err))
		} else {
			m.log.Info("lobby: player instantiated", zap.String("nickname", nick))
		}
	}

	m.Join.show(nick+" joined the game", m.cfg.MessageDuration)
}

func (m *Manager) OnPlayerEnteredRoom(nickname string) {
	m.log.Info("lobby: player joined", zap.String("nickname", nickname))
	m.Join.show(nickname+" joined the game", m.cfg.MessageDuration)
}

func (m *Manager) OnPlayerLeftRoom(nickname string) {
	m.log.Info("lobby: player left", zap.String("nickname", nickname))
	m.Leave.show(nickname+" left the game", m.cfg.MessageDuration)
}

// Tick ages the banners. A banner shown again restarts its timer.
func (m *Manager) Tick(elapsed time.Duration) {
	m.Join.tick(elapsed)
	m.Leave.tick(elapsed)
}
