package lobby

import (
	"fmt"

	"github.com/milk9111/warden/common"
)

// Loopback is an in-process Network for local play. Every request succeeds
// unless FailConnects is set, and its callback is queued until Pump delivers
// it on the caller's loop.
type Loopback struct {
	Nickname string
	// Spawn receives Instantiate calls.
	Spawn func(prefab string, at common.Vec3) error
	// FailConnects drops this many Connect attempts before accepting one.
	FailConnects int

	queue []func(*Manager)
}

func (l *Loopback) Connect() error {
	if l.FailConnects > 0 {
		l.FailConnects--
		l.push(func(m *Manager) { m.OnDisconnected("loopback: connection refused") })
		return nil
	}
	l.push((*Manager).OnConnectedToMaster)
	return nil
}

func (l *Loopback) JoinLobby() error {
	l.push((*Manager).OnJoinedLobby)
	return nil
}

func (l *Loopback) JoinOrCreateRoom(name string, opts RoomOptions) error {
	if opts.MaxPlayers <= 0 {
		return fmt.Errorf("loopback: room %q: max players %d", name, opts.MaxPlayers)
	}
	l.push((*Manager).OnJoinedRoom)
	return nil
}

func (l *Loopback) Instantiate(prefab string, at common.Vec3) error {
	if l.Spawn == nil {
		return nil
	}
	return l.Spawn(prefab, at)
}

func (l *Loopback) LocalNickname() string {
	if l.Nickname == "" {
		return "local"
	}
	return l.Nickname
}

// Pump delivers queued callbacks, including ones queued while pumping, and
// returns how many ran.
func (l *Loopback) Pump(m *Manager) int {
	n := 0
	for len(l.queue) > 0 {
		fn := l.queue[0]
		l.queue = l.queue[1:]
		fn(m)
		n++
	}
	return n
}

func (l *Loopback) push(fn func(*Manager)) {
	l.queue = append(l.queue, fn)
}
