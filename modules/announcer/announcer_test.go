package announcer

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/lordralex/ballot/ledger"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestBuildEmbed(t *testing.T) {
	created := buildEmbed(ledger.Event{
		Seq: 1, Type: ledger.EventVoteCreated, VoteID: 0, Title: "Lunch",
		Creator: "0x1111111111111111111111111111111111111111", Time: 1700000000,
	})
	assert.Equal(t, "New vote: Lunch", created.Title)
	assert.Equal(t, "Vote #0 was opened by 0x1111...1111", created.Description)
	assert.Equal(t, colorCreated, created.Color)
	assert.Equal(t, "2023-11-14T22:13:20Z", created.Timestamp)
	assert.Equal(t, "Event #1", created.Footer.Text)

	cast := buildEmbed(ledger.Event{Seq: 2, Type: ledger.EventVoteCast, VoteID: 3, OptionIndex: 0, Voter: "0xab"})
	assert.Equal(t, "Ballot cast on vote #3", cast.Title)
	assert.Equal(t, "0xab chose option 1", cast.Description)

	closed := buildEmbed(ledger.Event{Seq: 3, Type: ledger.EventVoteClosed, VoteID: 3})
	assert.Equal(t, "Vote #3 closed", closed.Title)
	assert.Equal(t, colorClosed, closed.Color)
}

func TestAnnounceKeepsGoingOnError(t *testing.T) {
	var sent []string
	handle := announce(func(embed *discordgo.MessageEmbed) error {
		sent = append(sent, embed.Title)
		if len(sent) == 1 {
			return errors.New("discord is down")
		}
		return nil
	})

	handle(ledger.Event{Seq: 1, Type: ledger.EventVoteClosed, VoteID: 1})
	handle(ledger.Event{Seq: 2, Type: ledger.EventVoteClosed, VoteID: 2})
	assert.Equal(t, []string{"Vote #1 closed", "Vote #2 closed"}, sent)
}
