package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-hub/internal/notifier"
	"github.com/mauv0809/league-hub/internal/processor"
	"github.com/mauv0809/league-hub/internal/pubsub"
)

// pushRequest is the envelope of a Pub/Sub push delivery.
type pushRequest struct {
	Subscription string `json:"subscription"`
	Message      struct {
		ID   string `json:"messageId"`
		Data string `json:"data"` // base64-encoded MessagePack payload
	} `json:"message"`
}

// NotificationPushHandler delivers notification events pushed by Pub/Sub. Every decoded
// event is acknowledged, delivered or not: a redelivery would resend it on every channel.
// Channel failures are logged and counted by the channels themselves.
func NotificationPushHandler(p *processor.Processor, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.FromContext(r.Context()).Debug("Received notification message", "body", string(bodyBytes))

		var msg pushRequest
		if err := json.Unmarshal(bodyBytes, &msg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		rawData, err := base64.StdEncoding.DecodeString(msg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		var event notifier.Event
		if pubsubClient != nil {
			err = pubsubClient.ProcessMessage(rawData, &event)
		} else {
			err = pubsub.Decode(rawData, &event)
		}
		if err != nil {
			log.Error("Failed to decode notification event", "error", err, "messageID", msg.Message.ID)
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		if notifier.DryRunFromContext(r.Context()) {
			event.DryRun = true
		}

		err = p.Deliver(r.Context(), event)
		switch {
		case errors.Is(err, notifier.ErrUnknownEvent):
			log.Warn("Dropping unknown notification event", "error", err, "messageID", msg.Message.ID)
		case err != nil:
			log.Error("Failed to deliver notification", "error", err, "type", event.Type, "messageID", msg.Message.ID)
		}
		w.Write([]byte("OK"))
	}
}
