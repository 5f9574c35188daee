package announcer

import (
	"context"
	"fmt"
	"github.com/bwmarrin/discordgo"
	"github.com/lordralex/ballot/api"
	"github.com/lordralex/ballot/api/env"
	"github.com/lordralex/ballot/api/logger"
	"github.com/lordralex/ballot/chain"
	"github.com/lordralex/ballot/client"
	"github.com/lordralex/ballot/ledger"
	"github.com/pkg/errors"
	"strings"
	"time"
)

const (
	colorCreated = 0x2ecc71
	colorCast    = 0x3498db
	colorClosed  = 0xe74c3c
)

type Module struct {
	session *discordgo.Session
}

func (*Module) Name() string {
	return "announcer"
}

func (m *Module) Load(ctx context.Context, node *chain.Node) error {
	token := env.Get("discord.token")
	if token == "" {
		return errors.New("DISCORD_TOKEN must be set to announce votes")
	}
	channel := env.Get("announcer.channel")
	if channel == "" {
		return errors.New("ANNOUNCER_CHANNEL must be set to announce votes")
	}

	if !strings.HasPrefix(token, "Bot ") {
		token = "Bot " + token
	}

	var err error
	m.session, err = discordgo.New(token)
	if err != nil {
		return errors.Wrap(err, "creating discord session")
	}

	send := func(embed *discordgo.MessageEmbed) error {
		_, err := m.session.ChannelMessageSendEmbed(channel, embed)
		return err
	}

	go api.Follow(ctx, node, env.GetIntOr("announcer.buffer", 64), announce(send))
	return nil
}

func announce(send func(*discordgo.MessageEmbed) error) func(ledger.Event) {
	return func(ev ledger.Event) {
		if err := send(buildEmbed(ev)); err != nil {
			logger.Err().Printf("Failed to announce event %d: %s\n", ev.Seq, err)
		}
	}
}

func buildEmbed(ev ledger.Event) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Timestamp: time.Unix(ev.Time, 0).UTC().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Event #%d", ev.Seq)},
	}

	switch ev.Type {
	case ledger.EventVoteCreated:
		embed.Title = "New vote: " + ev.Title
		embed.Description = fmt.Sprintf("Vote #%d was opened by %s", ev.VoteID, client.FormatAddress(ev.Creator))
		embed.Color = colorCreated
	case ledger.EventVoteCast:
		embed.Title = fmt.Sprintf("Ballot cast on vote #%d", ev.VoteID)
		embed.Description = fmt.Sprintf("%s chose option %d", client.FormatAddress(ev.Voter), ev.OptionIndex+1)
		embed.Color = colorCast
	case ledger.EventVoteClosed:
		embed.Title = fmt.Sprintf("Vote #%d closed", ev.VoteID)
		embed.Description = "No more ballots will be accepted."
		embed.Color = colorClosed
	default:
		embed.Title = string(ev.Type)
	}
	return embed
}
