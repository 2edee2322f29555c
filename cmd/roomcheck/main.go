package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/kapu/chess-rooms-go/internal/apiclient"
	"github.com/kapu/chess-rooms-go/pkg/roomdto"
)

// roomcheck probes a running room server: health endpoint, access gate,
// then a websocket round-trip creating a throwaway room.
func main() {
	baseURL := os.Getenv("ROOMS_BASE_URL")
	wsURL := os.Getenv("ROOMS_WS_URL")
	password := os.Getenv("ROOM_PASSWORD")

	if baseURL == "" {
		log.Fatal("ROOMS_BASE_URL is required")
	}

	client := apiclient.NewClient(baseURL, apiclient.WithTimeout(8*time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Health(ctx); err != nil {
		log.Printf("/healthz error: %v", err)
	} else {
		log.Println("/healthz ok")
	}

	if password != "" {
		valid, err := client.CheckPassword(ctx, password)
		if err != nil {
			log.Printf("password check error: %v", err)
		} else {
			log.Printf("password check: valid=%v", valid)
		}
	} else {
		log.Println("ROOM_PASSWORD not set; skipping gate check")
	}

	if wsURL == "" {
		log.Println("ROOMS_WS_URL not set; skipping WS check")
		return
	}

	cctx, ccancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer ccancel()
	conn, _, err := websocket.Dial(cctx, wsURL, nil)
	if err != nil {
		log.Printf("WS connect error: %v", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	name, _ := json.Marshal("roomcheck")
	if err := wsjson.Write(cctx, conn, roomdto.Event{Name: roomdto.EvtCreateRoom, Data: name}); err != nil {
		log.Printf("WS write error: %v", err)
		return
	}

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		var ev roomdto.Event
		if err := wsjson.Read(cctx, conn, &ev); err != nil {
			log.Printf("WS read error: %v", err)
			return
		}
		log.Printf("WS event: %s data=%s", ev.Name, string(ev.Data))
		if ev.Name == roomdto.EvtRoomCreated {
			return
		}
	}
	log.Println("room-created not received before deadline")
}
