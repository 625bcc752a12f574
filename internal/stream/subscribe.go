// ABOUTME: Client-side subscription to the stream endpoint.
// ABOUTME: Dials the WebSocket and delivers decoded notices on a channel.

package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/gorilla/websocket"
)

// Subscribe dials the stream endpoint and returns a channel of notices. The
// channel closes when the context is cancelled or the connection drops.
func Subscribe(ctx context.Context, url string) (<-chan Notice, error) {
	wsURL := strings.Replace(strings.Replace(url, "https://", "wss://", 1), "http://", "ws://", 1)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial stream: %w", err)
	}

	notices := make(chan Notice, 16)

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	go func() {
		defer close(notices)
		defer conn.Close()
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() == nil {
					log.Printf("stream: read failed: %v", err)
				}
				return
			}
			var n Notice
			if err := json.Unmarshal(msg, &n); err != nil {
				log.Printf("stream: bad notice: %v", err)
				continue
			}
			select {
			case notices <- n:
			case <-ctx.Done():
				return
			}
		}
	}()

	return notices, nil
}
