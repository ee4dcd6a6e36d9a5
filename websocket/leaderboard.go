package websocket

import (
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"stridehub/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// LeaderboardUpdate is pushed to subscribers of a challenge after every
// committed score ledger write.
type LeaderboardUpdate struct {
	ChallengeID int64              `json:"challengeId"`
	TopUsers    []models.UserRank  `json:"topUsers"`
	TopTeams    []models.TeamScore `json:"topTeams"`
	Timestamp   time.Time          `json:"timestamp"`
}

// LeaderboardClient represents a client subscribed to one challenge's
// leaderboard updates
type LeaderboardClient struct {
	Conn        *websocket.Conn
	ChallengeID int64
	writeMu     sync.Mutex
}

// SafeWriteJSON safely writes JSON data to the client's WebSocket connection
func (lc *LeaderboardClient) SafeWriteJSON(v interface{}) error {
	lc.writeMu.Lock()
	defer lc.writeMu.Unlock()
	return lc.Conn.WriteJSON(v)
}

var (
	leaderboardClients = make(map[*LeaderboardClient]bool)
	leaderboardMutex   sync.RWMutex
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// RegisterLeaderboardClient registers a client for leaderboard updates
func RegisterLeaderboardClient(client *LeaderboardClient) {
	leaderboardMutex.Lock()
	defer leaderboardMutex.Unlock()
	leaderboardClients[client] = true
	log.Printf("Leaderboard client registered for challenge %d. Total clients: %d", client.ChallengeID, len(leaderboardClients))
}

// UnregisterLeaderboardClient removes a client and closes its connection
func UnregisterLeaderboardClient(client *LeaderboardClient) {
	leaderboardMutex.Lock()
	defer leaderboardMutex.Unlock()
	if _, ok := leaderboardClients[client]; !ok {
		return
	}
	delete(leaderboardClients, client)
	client.Conn.Close()
	log.Printf("Leaderboard client unregistered. Total clients: %d", len(leaderboardClients))
}

// BroadcastLeaderboardUpdate pushes an update to every client subscribed to
// the affected challenge
func BroadcastLeaderboardUpdate(update LeaderboardUpdate) {
	leaderboardMutex.RLock()
	defer leaderboardMutex.RUnlock()

	for client := range leaderboardClients {
		if client.ChallengeID != update.ChallengeID {
			continue
		}
		if err := client.SafeWriteJSON(update); err != nil {
			log.Printf("Error broadcasting leaderboard update: %v", err)
			// Remove client if write fails
			go UnregisterLeaderboardClient(client)
		}
	}
}

// LeaderboardWebsocketHandler upgrades the connection and subscribes the
// caller to one challenge's leaderboard updates until the socket closes.
func LeaderboardWebsocketHandler(c *gin.Context) {
	challengeID, err := strconv.ParseInt(c.Param("challengeId"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid challenge id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade websocket: %v", err)
		return
	}

	client := &LeaderboardClient{Conn: conn, ChallengeID: challengeID}
	RegisterLeaderboardClient(client)

	// Read loop only detects disconnects; clients never send payloads.
	go func() {
		defer UnregisterLeaderboardClient(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
