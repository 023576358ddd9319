package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"LockOnArena/internal/arena"
	"LockOnArena/internal/targeting"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type joinDTO struct {
	Name string `json:"name"`
}

type switchDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type cameraMoveDTO struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
}

func parseFloatOverride(values url.Values, key string) (*float64, bool) {
	raw := values.Get(key)
	if raw == "" {
		return nil, false
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false
	}
	return &val, true
}

// parseTargetingOverrides reads per-room tuning from the connection query, so
// a room can be opened with experimental weights without restarting.
func parseTargetingOverrides(values url.Values) (ParamOverrides, bool) {
	var overrides ParamOverrides
	var found bool

	if v, ok := parseFloatOverride(values, "distanceWeight"); ok {
		overrides.DistanceWeight = v
		found = true
	}
	if v, ok := parseFloatOverride(values, "angleWeightFinding"); ok {
		overrides.AngleWeightFinding = v
		found = true
	}
	if v, ok := parseFloatOverride(values, "angleWeightSwitching"); ok {
		overrides.AngleWeightSwitching = v
		found = true
	}
	if v, ok := parseFloatOverride(values, "inputWeight"); ok {
		overrides.PlayerInputWeight = v
		found = true
	}
	if v, ok := parseFloatOverride(values, "captureAngle"); ok {
		overrides.CaptureAngle = v
		found = true
	}
	if v, ok := parseFloatOverride(values, "angleRange"); ok {
		overrides.AngleRange = v
		found = true
	}
	if v, ok := parseFloatOverride(values, "lostDelay"); ok {
		overrides.LostTargetDelay = v
		found = true
	}
	if v, ok := parseFloatOverride(values, "radiusMult"); ok {
		overrides.CaptureRadiusMultiplier = v
		found = true
	}
	return overrides, found
}

type liveConn struct {
	conn     *websocket.Conn
	sendTick *time.Ticker
}

func serveWS(h *arena.Hub, w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	roomID := query.Get("room")
	if roomID == "" {
		roomID = "default"
	}
	overrides, hasOverrides := parseTargetingOverrides(query)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}
	lc := &liveConn{
		conn:     conn,
		sendTick: time.NewTicker(time.Duration(1000.0/arena.UpdateRateHz) * time.Millisecond),
	}

	room := h.GetRoom(roomID)
	room.StartLoop()
	playerID := uuid.NewString()

	room.Mu.Lock()
	// Overrides only apply while the room is fresh, so mid-game joins cannot
	// silently retune everyone's controllers.
	if hasOverrides && len(room.Players) == 0 {
		room.Params = overrides.apply(room.Params)
		log.Printf("room %s targeting overrides: distance %.2f lost delay %.1fs",
			room.ID, room.Params.DistanceWeight, room.Params.LostTargetDelay)
	}
	player := room.AddPlayer(playerID, "Anon")
	room.Mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		defer cancel()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var inbound inboundMessage
			if err := json.Unmarshal(data, &inbound); err != nil {
				log.Printf("invalid JSON message: %v", err)
				continue
			}
			switch inbound.Type {
			case "join":
				var payload joinDTO
				if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
					continue
				}
				room.Mu.Lock()
				if payload.Name != "" {
					player.Name = payload.Name
				}
				room.Mu.Unlock()
			case "lock":
				room.Mu.Lock()
				player.ToggleLock()
				room.Mu.Unlock()
			case "switch":
				var payload switchDTO
				if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
					continue
				}
				room.Mu.Lock()
				player.QueueSwitch(targeting.Vec2{X: payload.X, Y: payload.Y})
				room.Mu.Unlock()
			case "camera":
				var payload cameraMoveDTO
				if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
					continue
				}
				room.Mu.Lock()
				player.Camera.Pos = targeting.Vec3{X: payload.X, Y: payload.Y, Z: payload.Z}
				player.Camera.YawDeg = payload.Yaw
				player.Camera.PitchDeg = payload.Pitch
				room.Mu.Unlock()
			default:
				log.Printf("unknown message type: %s", inbound.Type)
			}
		}
	}()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-lc.sendTick.C:
				room.Mu.Lock()
				state := buildState(room, player)
				room.Mu.Unlock()
				if err := conn.WriteJSON(state); err != nil {
					log.Printf("send error: %v", err)
					cancel()
					return
				}
			}
		}
	}()

	<-ctx.Done()
	lc.sendTick.Stop()
	conn.Close()

	room.Mu.Lock()
	room.RemovePlayer(playerID)
	room.Mu.Unlock()
}
