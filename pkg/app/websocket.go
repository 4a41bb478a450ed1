package app

import (
	"strings"
	"sync"
	"time"

	"github.com/haierkeys/clipboard-history-service/pkg/code"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lxzan/gws"
	"go.uber.org/zap"
)

const (
	WebSocketServerPingInterval = 25
	WebSocketServerPingWait     = 40
)

// WebSocketMessage 客户端消息，格式为 "type|payload"
type WebSocketMessage struct {
	Type string `json:"type"` // 操作类型，例如 "Subscribe", "Ping"
	Data []byte `json:"data"` // 消息内容
}

type WebsocketServerConfig struct {
	GWSOption    gws.ServerOption
	PingInterval time.Duration
	PingWait     time.Duration
}

// WebsocketClient 存储每个 WebSocket 连接及其相关状态
type WebsocketClient struct {
	// ID 会话唯一标识
	ID   string
	conn *gws.Conn
	done chan struct{}
	Ctx  *gin.Context

	server *WebsocketServer
}

type ResResult struct {
	Code   int    `json:"code"`
	Status bool   `json:"status"`
	Msg    string `json:"msg"`
	Data   any    `json:"data,omitempty"`
}

type ResDetailsResult struct {
	Code    int    `json:"code"`
	Status  bool   `json:"status"`
	Msg     string `json:"msg"`
	Data    any    `json:"data,omitempty"`
	Details string `json:"details,omitempty"`
}

// BindAndValid 解析并验证 WebSocket 消息参数
func (c *WebsocketClient) BindAndValid(data []byte, obj any, validate *validator.Validate) (bool, ValidErrors) {
	var errs ValidErrors

	if err := sonic.Unmarshal(data, obj); err != nil {
		errs = append(errs, &ValidError{
			Key:     "body",
			Message: "Invalid message format",
		})
		return false, errs
	}

	if validate == nil {
		return true, nil
	}

	if err := validate.Struct(obj); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, validationErr := range validationErrors {
				errs = append(errs, &ValidError{
					Key:     validationErr.Field(),
					Message: validationErr.Error(),
				})
			}
		}
		return false, errs
	}
	return true, nil
}

// PingLoop 定期发送 Ping 消息
func (c *WebsocketClient) PingLoop(pingInterval time.Duration) {
	ticker := time.NewTicker(pingInterval * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			c.server.logger.Info("WebsocketServer Client Close Ping", zap.String("sessionId", c.ID))
			return
		case <-ticker.C:
			if c.conn == nil {
				return
			}
			if err := c.conn.WritePing(nil); err != nil {
				c.server.logger.Error("WebsocketServer Client Ping err", zap.Error(err))
				return
			}
		}
	}
}

// ToResponse 将结果转换为 JSON 格式并发送给客户端
func (c *WebsocketClient) ToResponse(codeObj *code.Code, action ...string) {

	var actionType string
	if len(action) > 0 {
		actionType = action[0]
	}
	if codeObj.HaveDetails() {
		details := strings.Join(codeObj.Details(), ",")
		c.send(actionType, ResDetailsResult{
			Code:    codeObj.Code(),
			Status:  codeObj.Status(),
			Msg:     codeObj.Lang.GetMessage(),
			Data:    codeObj.Data(),
			Details: details,
		})
	} else {
		c.send(actionType, ResResult{
			Code:   codeObj.Code(),
			Status: codeObj.Status(),
			Msg:    codeObj.Lang.GetMessage(),
			Data:   codeObj.Data(),
		})
	}
	codeObj.Reset()
}

func (c *WebsocketClient) send(actionType string, content any) {
	responseBytes, _ := sonic.Marshal(content)
	if actionType != "" {
		responseBytes = append([]byte(actionType+"|"), responseBytes...)
	}
	c.conn.WriteMessage(gws.OpcodeText, responseBytes)
}

// ------------------------------------> WebsocketServer

type ConnStorage = map[*gws.Conn]*WebsocketClient

// WebsocketServer 事件推送服务
// 本地 GUI / 托盘客户端连接后可实时收到历史变更事件
type WebsocketServer struct {
	handlers map[string]func(*WebsocketClient, *WebSocketMessage)
	clients  ConnStorage
	mu       sync.Mutex
	up       *gws.Upgrader
	config   *WebsocketServerConfig
	logger   *zap.Logger
}

func NewWebsocketServer(c WebsocketServerConfig, logger *zap.Logger) *WebsocketServer {
	if c.PingInterval == 0 {
		c.PingInterval = WebSocketServerPingInterval
	}
	if c.PingWait == 0 {
		c.PingWait = WebSocketServerPingWait
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	wss := WebsocketServer{
		handlers: make(map[string]func(*WebsocketClient, *WebSocketMessage)),
		clients:  make(ConnStorage),
		config:   &c,
		logger:   logger,
	}
	return &wss
}

func (w *WebsocketServer) Upgrade() {
	w.up = gws.NewUpgrader(w, &w.config.GWSOption)
}

func (w *WebsocketServer) Run() gin.HandlerFunc {

	return func(c *gin.Context) {

		w.Upgrade()
		socket, err := w.up.Upgrade(c.Writer, c.Request)
		if err != nil {
			w.logger.Error("WebsocketServer Start err", zap.Error(err))
			return
		}
		client := &WebsocketClient{
			ID:     uuid.New().String(),
			conn:   socket,
			done:   make(chan struct{}),
			Ctx:    c,
			server: w,
		}
		w.AddClient(client)
		w.logger.Info("WebsocketServer Start", zap.String("sessionId", client.ID))
		go client.PingLoop(w.config.PingInterval)
		go socket.ReadLoop()
	}
}

func (w *WebsocketServer) Use(action string, handler func(*WebsocketClient, *WebSocketMessage)) {
	w.handlers[action] = handler
}

// Broadcast 将事件广播给所有已连接的客户端
func (w *WebsocketServer) Broadcast(actionType string, codeObj *code.Code) {
	var content any
	if codeObj.HaveDetails() {
		content = ResDetailsResult{
			Code:    codeObj.Code(),
			Status:  codeObj.Status(),
			Msg:     codeObj.Lang.GetMessage(),
			Data:    codeObj.Data(),
			Details: strings.Join(codeObj.Details(), ","),
		}
	} else {
		content = ResResult{
			Code:   codeObj.Code(),
			Status: codeObj.Status(),
			Msg:    codeObj.Lang.GetMessage(),
			Data:   codeObj.Data(),
		}
	}
	codeObj.Reset()

	payload, _ := sonic.Marshal(content)
	if actionType != "" {
		payload = append([]byte(actionType+"|"), payload...)
	}

	b := gws.NewBroadcaster(gws.OpcodeText, payload)
	defer b.Close()

	w.mu.Lock()
	defer w.mu.Unlock()
	for conn := range w.clients {
		_ = b.Broadcast(conn)
	}
}

// ClientCount 返回当前连接数
func (w *WebsocketServer) ClientCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.clients)
}

func (w *WebsocketServer) GetClient(conn *gws.Conn) *WebsocketClient {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.clients[conn]
}

func (w *WebsocketServer) AddClient(c *WebsocketClient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clients[c.conn] = c
}

func (w *WebsocketServer) RemoveClient(conn *gws.Conn) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.clients, conn)
}

func (w *WebsocketServer) OnOpen(conn *gws.Conn) {
	w.logger.Info("WebsocketServer Client Connect", zap.Int("Count", w.ClientCount()))
	_ = conn.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
}

func (w *WebsocketServer) OnClose(conn *gws.Conn, err error) {

	c := w.GetClient(conn)

	w.RemoveClient(conn)

	if c != nil {
		close(c.done)
		w.logger.Info("WebsocketServer Client Leave",
			zap.String("sessionId", c.ID),
			zap.Int("Count", w.ClientCount()))
	}
}

func (w *WebsocketServer) OnPing(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
	_ = socket.WritePong(nil)
}

func (w *WebsocketServer) OnPong(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
}

func (w *WebsocketServer) OnMessage(conn *gws.Conn, message *gws.Message) {
	defer message.Close()
	if message.Opcode != gws.OpcodeText {
		return
	}
	if message.Data.String() == "close" {
		conn.WriteClose(1000, []byte("ClientClose"))
		return
	}

	c := w.GetClient(conn)
	if c == nil {
		return
	}

	messageStr := message.Data.String()
	index := strings.Index(messageStr, "|")

	var msg WebSocketMessage
	if index != -1 {
		msg.Type = messageStr[:index]
		msg.Data = []byte(messageStr[index+1:])
	} else {
		msg.Type = messageStr
	}

	if handler, ok := w.handlers[msg.Type]; ok {
		handler(c, &msg)
		return
	}

	w.logger.Warn("WebsocketServer OnMessage unknown type",
		zap.String("type", msg.Type),
		zap.String("sessionId", c.ID))
}
