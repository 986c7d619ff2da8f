package volfeed

import (
	"sync"
	"testing"
	"time"
)

func newTestClient() *Client {
	return New("wss://example.invalid/ws", []string{"BTCUSDT"}, time.Second, time.Second).(*Client)
}

func TestIngestStoresQuoteVolume(t *testing.T) {
	c := newTestClient()

	c.ingest([]byte(`{"s":"BTCUSDT","q":"1234567.89"}`))
	v, ok := c.Volume24h("btcusdt")
	if !ok {
		t.Fatal("expected volume for BTCUSDT")
	}
	if v != 1234567.89 {
		t.Fatalf("got %v", v)
	}
}

func TestIngestIgnoresNonTickerFrames(t *testing.T) {
	c := newTestClient()

	c.ingest([]byte(`{"result":null,"id":1}`)) // subscribe ack
	c.ingest([]byte(`not json`))
	c.ingest([]byte(`{"s":"ETHUSDT","q":"-5"}`))
	c.ingest([]byte(`{"s":"ETHUSDT","q":"bogus"}`))

	if _, ok := c.Volume24h("ETHUSDT"); ok {
		t.Fatal("invalid frames must not populate the table")
	}
}

func TestVolume24hMiss(t *testing.T) {
	c := newTestClient()
	if _, ok := c.Volume24h("UNLISTED"); ok {
		t.Fatal("expected miss")
	}
}

// Exercises concurrent readers of connection state and the volume table
// against Close and ingest; meaningful under the race detector.
func TestConcurrentStateAccess(t *testing.T) {
	c := newTestClient()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.ingest([]byte(`{"s":"BTCUSDT","q":"100.5"}`))
				c.Volume24h("BTCUSDT")
				c.IsConnected()
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 50; j++ {
			_ = c.Close()
		}
	}()
	wg.Wait()

	if c.IsConnected() {
		t.Fatal("client must report disconnected after Close")
	}
}
