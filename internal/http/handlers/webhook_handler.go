package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "bizledger/internal/log"
	"bizledger/internal/messaging"
	"bizledger/internal/services"
	"bizledger/internal/validate"
)

type WebhookHandler struct {
	Bot    *services.BotService
	Sender messaging.Sender
}

type inboundMessage struct {
	From string `json:"from"`
	Text string `json:"text"`
	Name string `json:"name"`
}

// POST /webhook
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	var in inboundMessage
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid message body"})
	}
	from, ok := validate.Channel(in.From)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing or invalid sender"})
	}
	c.Locals(applog.ChannelKey, from)

	ctx := c.UserContext()
	reply, err := h.Bot.Handle(ctx, services.Inbound{From: from, Text: in.Text, Name: in.Name})
	fields := map[string]any{"command": reply.Command, "business_id": reply.BusinessID}
	if err != nil {
		applog.Error(c, "message.store.fail", err, fields)
	} else {
		applog.Audit(c, "message.handled", fields)
	}

	if h.Sender != nil {
		if serr := h.Sender.SendText(ctx, from, reply.Text); serr != nil {
			applog.Error(c, "reply.send.fail", serr, fields)
		}
	}
	return c.JSON(fiber.Map{"to": from, "reply": reply.Text, "command": reply.Command})
}
