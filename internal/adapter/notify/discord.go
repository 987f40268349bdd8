// Package notify delivers admin alerts to external channels. The in-app
// notification row is the source of truth; forwarders here are best-effort
// mirrors of it.
package notify

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/kamaljewellers/reserveops-backend/internal/domain"
)

// DiscordForwarder posts reserve alerts into the shop's admin channel.
// It only sends messages over the REST API, so no gateway session is opened.
type DiscordForwarder struct {
	session   *discordgo.Session
	channelID string
}

// NewDiscordForwarder creates a forwarder for the given bot token and channel
func NewDiscordForwarder(botToken, channelID string) (*DiscordForwarder, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return &DiscordForwarder{session: session, channelID: channelID}, nil
}

// Forward posts the alert message to the admin channel
func (f *DiscordForwarder) Forward(ctx context.Context, event *domain.NotificationEvent) error {
	msg := fmt.Sprintf("⚠️ %s\n%s", event.Message, event.Link)
	if _, err := f.session.ChannelMessageSend(f.channelID, msg, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send discord message: %w", err)
	}
	return nil
}

// Close releases the underlying session
func (f *DiscordForwarder) Close() error {
	return f.session.Close()
}
