// Command consumer tails the load_events topic and prints each lifecycle
// event. It is an operational tool for verifying that the outbox drains.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/dthlogistics/release-portal/internal/repository"
)

const groupID = "load-event-consumer-group"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		brokers = "localhost:9092"
	}
	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = "load_events"
	}

	log.Println("Starting load event consumer...")

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        strings.Split(brokers, ","),
		GroupID:        groupID,
		Topic:          topic,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})
	defer func() {
		log.Println("Closing Kafka reader...")
		if err := r.Close(); err != nil {
			log.Printf("Error closing Kafka reader: %v", err)
		}
	}()

	log.Printf("Consumer connected to topic '%s' on brokers %s", topic, brokers)

	for {
		select {
		case <-ctx.Done():
			log.Println("Shutdown signal received, stopping consumer.")
			return
		default:
			m, err := r.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					log.Println("Context cancelled, exiting message loop.")
					return
				}
				log.Printf("Error reading message: %v", err)
				time.Sleep(5 * time.Second)
				continue
			}

			printEvent(m)
		}
	}
}

func printEvent(m kafka.Message) {
	fmt.Printf("\n--- LOAD EVENT ---\n")
	fmt.Printf("Partition: %d\n", m.Partition)
	fmt.Printf("Offset:    %d\n", m.Offset)
	fmt.Printf("Key:       %s\n", string(m.Key))

	var event repository.LoadEventPayload
	if err := json.Unmarshal(m.Value, &event); err != nil {
		fmt.Printf("Value:     %s\n", string(m.Value))
		fmt.Println("--- END EVENT ---")
		return
	}

	fmt.Printf("Timestamp: %s\n", event.Timestamp.Format(time.RFC3339))
	fmt.Printf("Action:    %s\n", event.Action)
	fmt.Printf("Load:      %s (row %d)\n", event.LoadID, event.LoadRawID)
	fmt.Printf("Status:    %s\n", event.Status)
	if event.ConfirmedBy != "" {
		fmt.Printf("Confirmed: %s\n", event.ConfirmedBy)
	}
	fmt.Println("--- END EVENT ---")
}
