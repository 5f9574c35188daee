package client

import (
	"github.com/dustin/go-humanize"
	"github.com/lordralex/ballot/ledger"
	"math"
	"time"
)

type OptionView struct {
	Index      int     `json:"id"`
	Text       string  `json:"text"`
	Votes      uint64  `json:"votes"`
	Percentage float64 `json:"percentage"`
}

type VoteView struct {
	ID                uint64        `json:"id"`
	Title             string        `json:"title"`
	Description       string        `json:"description"`
	Creator           string        `json:"creator"`
	CreatorShort      string        `json:"creatorShort"`
	StartDate         time.Time     `json:"startDate"`
	EndDate           time.Time     `json:"endDate"`
	Status            ledger.Status `json:"status"`
	Participants      uint64        `json:"participants"`
	ParticipantsLabel string        `json:"participantsLabel"`
	TimeLeft          string        `json:"timeLeft"`
	HasVoted          bool          `json:"hasVoted"`
	Options           []OptionView  `json:"options"`
}

// Percentage is count's share of total, rounded to two decimals; 0 when nobody voted.
func Percentage(count, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)*100*100/float64(total)) / 100
}

// FormatAddress shortens long addresses to 0x1234...abcd.
func FormatAddress(address string) string {
	if len(address) < 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

func TimeLeft(now, end time.Time) string {
	if now.After(end) {
		return "Voting ended"
	}
	return humanize.RelTime(now, end, "left", "ago")
}

// buildView takes the total from the options it was given; details and options are read
// separately and a ballot may land in between.
func buildView(id uint64, details *ledger.VoteDetails, options []ledger.VoteOption, now time.Time) *VoteView {
	var total uint64
	for _, v := range options {
		total += v.VoteCount
	}

	view := &VoteView{
		ID:                id,
		Title:             details.Title,
		Description:       details.Description,
		Creator:           details.Creator,
		CreatorShort:      FormatAddress(details.Creator),
		StartDate:         time.Unix(details.StartTime, 0).UTC(),
		EndDate:           time.Unix(details.EndTime, 0).UTC(),
		Status:            ledger.DeriveStatus(details.IsActive, details.StartTime, details.EndTime, now.Unix()),
		Participants:      total,
		ParticipantsLabel: humanize.Comma(int64(total)),
		Options:           make([]OptionView, len(options)),
	}

	if view.Status == ledger.StatusCompleted {
		view.TimeLeft = "Voting ended"
	} else {
		view.TimeLeft = TimeLeft(now, view.EndDate)
	}

	for k, v := range options {
		view.Options[k] = OptionView{
			Index:      k,
			Text:       v.Text,
			Votes:      v.VoteCount,
			Percentage: Percentage(v.VoteCount, total),
		}
	}
	return view
}
