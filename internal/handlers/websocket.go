package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"craps-sim-backend/internal/config"
	"craps-sim-backend/internal/craps"
	"craps-sim-backend/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamHandler runs single trials over a WebSocket, pushing the engine
// state after every roll.
type StreamHandler struct {
	cfg *config.Config
	log *zap.SugaredLogger
}

type inMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type outMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

func NewStreamHandler(cfg *config.Config, log *zap.SugaredLogger) *StreamHandler {
	return &StreamHandler{
		cfg: cfg,
		log: log,
	}
}

func (h *StreamHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warnf("failed to upgrade to WebSocket: %v", err)
		return
	}
	defer conn.Close()

	for {
		var msg inMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warnf("websocket error: %v", err)
			}
			return
		}

		switch msg.Type {
		case "PING":
			if err := conn.WriteJSON(outMessage{
				Type: "PONG",
				Data: gin.H{"timestamp": time.Now().Unix()},
			}); err != nil {
				h.log.Warnf("websocket write failed: %v", err)
				return
			}
		case "RUN_TRIAL":
			h.streamTrial(conn, msg.Data)
		default:
			if err := conn.WriteJSON(outMessage{
				Type: "ERROR",
				Data: gin.H{"error": "unknown message type: " + msg.Type},
			}); err != nil {
				h.log.Warnf("websocket write failed: %v", err)
				return
			}
		}
	}
}

func (h *StreamHandler) streamTrial(conn *websocket.Conn, raw json.RawMessage) {
	cfg := h.cfg.Defaults
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &cfg); err != nil {
			conn.WriteJSON(outMessage{
				Type: "ERROR",
				Data: gin.H{"error": "invalid trial config: " + err.Error()},
			})
			return
		}
	}

	// Streaming runs are single trials and never touch server files.
	cfg.Trials = 1
	cfg.RollScript = ""
	cfg.RollLog = ""
	cfg.CSVPath = ""
	cfg.CSVLabel = ""

	if err := cfg.Validate(); err != nil {
		conn.WriteJSON(outMessage{
			Type: "ERROR",
			Data: gin.H{"error": err.Error()},
		})
		return
	}

	var dice craps.Roller
	if cfg.Seed != 0 {
		dice = craps.NewSeededRoller(cfg.Seed)
	} else {
		dice = craps.NewRandomRoller()
	}

	engine := craps.NewEngine(cfg.Rules(), h.log)
	rolls := 0
	for {
		rolls++
		roll := dice.Next()
		engine.Step(roll)

		update := models.RollUpdate{
			Roll:     rolls,
			Dice:     roll,
			Sum:      roll.Sum(),
			Point:    engine.Point(),
			Bankroll: engine.Bankroll(),
			Peak:     engine.Peak(),
			Wagers:   models.WagerStates(engine.Wagers()),
		}
		if err := conn.WriteJSON(outMessage{Type: "ROLL", Data: update}); err != nil {
			return
		}

		if engine.Busted() {
			break
		}
		if cfg.MaxRolls > 0 && rolls >= cfg.MaxRolls {
			break
		}
	}

	conn.WriteJSON(outMessage{
		Type: "TRIAL_END",
		Data: models.TrialResult{Rolls: rolls, MaxBankroll: engine.Peak()},
	})
}
