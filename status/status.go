package status

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Extraction progress pushed to browser clients. The last message is
// replayed to freshly connected clients so the UI can show the state of a
// run already underway.

const (
	INFO = iota
	ERROR
	PROGRESS
)

type message struct {
	Dump     string
	Message  string
	Time     time.Time
	Type     int
	Progress float32
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func (c *client) writePump() {
	ticker := time.NewTicker(time.Second * 30)
	defer func() {
		ticker.Stop()
		unregisterClient(c)
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(40 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("[status] ws write msg error: %v", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(40 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[status] ws write ping error: %v", err)
				return
			}
		}
	}
}

func NewClient(conn *websocket.Conn) *client {
	c := &client{conn: conn, send: make(chan []byte, 32)}
	globalLock.Lock()
	defer globalLock.Unlock()
	broadcastList[c] = true
	if lastMessage != nil {
		c.send <- lastMessage
	}
	go c.writePump()
	return c
}

var broadcastList = make(map[*client]bool)
var globalLock sync.Mutex
var lastMessage []byte

func unregisterClient(c *client) {
	globalLock.Lock()
	defer globalLock.Unlock()
	delete(broadcastList, c)
}

func broadcast(m *message) {
	data, err := json.Marshal(m)
	if err != nil {
		log.Printf("[status] marshal error: %v", err)
		return
	}

	globalLock.Lock()
	defer globalLock.Unlock()
	lastMessage = data
	for c := range broadcastList {
		select {
		case c.send <- data:
		default: // slow client, drop the update
		}
	}
}

func Status(dump string, msg string, _type int, progress float32) {
	if math.IsNaN(float64(progress)) || math.IsInf(float64(progress), 0) {
		progress = 0
	}
	broadcast(&message{
		Dump:     dump,
		Message:  msg,
		Time:     time.Now(),
		Type:     _type,
		Progress: progress})
}

func Info(dump string, format string, a ...interface{}) {
	Status(dump, fmt.Sprintf(format, a...), INFO, 0.0)
}

func Error(dump string, format string, a ...interface{}) {
	Status(dump, fmt.Sprintf(format, a...), ERROR, 0.0)
}

func Progress(dump string, progress float32, format string, a ...interface{}) {
	Status(dump, fmt.Sprintf(format, a...), PROGRESS, progress)
}
