package plugin

import (
	"fmt"

	"github.com/gorilla/websocket"
)

// SendMessage opens a client connection to destination, sends message as a
// single text frame, and closes the connection. Every invocation gets its
// own connection; nothing is pooled, reused or retried, and a failure is
// simply returned to the caller.
func SendMessage(destination, message string) error {
	conn, _, err := websocket.DefaultDialer.Dial(destination, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", destination, err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(message)); err != nil {
		return fmt.Errorf("failed to send message to %s: %w", destination, err)
	}

	// Politely tell the peer we're done before dropping the connection.
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return nil
}
